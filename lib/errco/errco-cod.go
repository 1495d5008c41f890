package errco

/*
0xxxxxfxxx: error

0x0000xxxx: codec package
0x0001xxxx: chat package
0x0002xxxx: ping package
0x0003xxxx: query package
0x0004xxxx: raknet package
0x0005xxxx: lan package
0x0006xxxx: status package (dispatch)
0x0007xxxx: errco package
*/

// -------------------- log -------------------- //

const (
	// log levels

	LVL_0 LogLvl = 0 // NONE: no log
	LVL_1 LogLvl = 1 // BASE: basic log
	LVL_2 LogLvl = 2 // CALL: one log per dialect call
	LVL_3 LogLvl = 3 // DEVE: developement log
	LVL_4 LogLvl = 4 // BYTE: connection bytes log

	// log types

	TYPE_INF LogTyp = "info"
	TYPE_SER LogTyp = "serv"
	TYPE_BYT LogTyp = "byte"
	TYPE_WAR LogTyp = "warn"
	TYPE_ERR LogTyp = "error"
)

// ------------------- errors ------------------ //

const (
	ERROR_NIL LogCod = 0xffffffff // no error

	// codec package

	ERROR_NETWORK_IO        LogCod = 0x0000f000 // underlying socket error
	ERROR_NETWORK_TIMEOUT   LogCod = 0x0000f001 // read/write deadline expired
	ERROR_UNEXPECTED_EOF    LogCod = 0x0000f002 // socket closed mid frame
	ERROR_PROTOCOL_MISMATCH LogCod = 0x0000f003 // magic/framing assumption violated
	ERROR_VARINT_TOO_LARGE  LogCod = 0x0000f004 // varint exceeded 5 bytes
	ERROR_INVALID_UTF8      LogCod = 0x0000f005 // utf8/utf16be decode failure

	// chat package

	ERROR_CHAT_COMPONENT_INVALID LogCod = 0x0001f000 // chat JSON did not match the component shape

	// ping package

	ERROR_PING_DIAL  LogCod = 0x0002f000 // error dialing java server
	ERROR_PING_WRITE LogCod = 0x0002f001 // error writing ping request
	ERROR_PING_READ  LogCod = 0x0002f002 // error reading ping response

	// query package

	ERROR_QUERY_DIAL      LogCod = 0x0003f000 // error dialing query server
	ERROR_QUERY_HANDSHAKE LogCod = 0x0003f001 // error during challenge handshake
	ERROR_QUERY_STAT      LogCod = 0x0003f002 // error during basic/full stat exchange
	ERROR_INVALID_NUMBER  LogCod = 0x0003f003 // expected decimal ascii failed to parse

	// raknet package

	ERROR_RAKNET_DIAL LogCod = 0x0004f000 // error dialing bedrock server
	ERROR_RAKNET_PING LogCod = 0x0004f001 // error during unconnected ping exchange

	// lan package

	ERROR_LAN_LISTEN LogCod = 0x0005f000 // error joining the multicast group
	ERROR_LAN_READ   LogCod = 0x0005f001 // error reading a multicast datagram

	// status package

	ERROR_INVALID_ADDRESS LogCod = 0x0006f000 // host resolution failure

	// errco package

	ERROR_COLOR_ENABLE LogCod = 0x0007f000 // error while trying to enable colors on terminal
)
