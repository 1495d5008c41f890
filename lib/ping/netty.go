package ping

import (
	"strings"

	"mcstatus/lib/codec"
	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

// nettyMagic is the fixed prefix 0xFE 0x01 0xFA followed by the u16 BE
// character count and the literal string "MC|PingHost" in UTF-16BE.
var nettyMagic = func() []byte {
	b := []byte{0xFE, 0x01, 0xFA}
	b = codec.PutU16BE(b, 11) // character count of "MC|PingHost"
	encoded, err := codec.EncodeUTF16BE("MC|PingHost")
	if err != nil {
		panic(err) // "MC|PingHost" is pure ASCII, cannot fail
	}
	return append(b, encoded...)
}()

const nettyProtocolVersion byte = 74 // 1.6.x

// Netty speaks the 1.6 Server List Ping protocol over TCP.
func Netty(host string, port uint16, opts Options) (*LegacyServer, error) {
	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "pinging %s:%d (netty)", host, port)

	conn, err := dialTCP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := setDeadlines(conn, opts); err != nil {
		return nil, err
	}

	hostBytes, err := codec.EncodeUTF16BE(host)
	if err != nil {
		return nil, err
	}

	request := append([]byte{}, nettyMagic...)
	request = codec.PutU16BE(request, uint16(7+len(hostBytes)))
	request = append(request, nettyProtocolVersion)
	request = codec.PutU16BE(request, uint16(len(host)))
	request = append(request, hostBytes...)
	request = codec.PutI32BE(request, int32(port))

	if _, err := conn.Write(request); err != nil {
		return nil, wrapWriteErr(err)
	}

	text, err := readLegacyResponseText(conn)
	if err != nil {
		return nil, err
	}

	return parseNettyLegacyResponse(text)
}

// parseNettyLegacyResponse parses the shared §1-prefixed schema used by
// both the Netty and Legacy dialects:
// §1\0<protocol>\0<version>\0<motd>\0<online>\0<max>
func parseNettyLegacyResponse(text string) (*LegacyServer, error) {
	parts := strings.Split(text, "\x00")
	if len(parts) < 6 || parts[0] != "§1" {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "missing §1 marker in legacy ping response")
	}

	protocol, err := parseNonNegativeInt(parts[1])
	if err != nil {
		return nil, err
	}
	online, err := parseNonNegativeInt(parts[4])
	if err != nil {
		return nil, err
	}
	max, err := parseNonNegativeInt(parts[5])
	if err != nil {
		return nil, err
	}

	return &LegacyServer{
		Protocol: protocol,
		Version:  parts[2],
		MOTD:     parts[3],
		Online:   online,
		Max:      max,
	}, nil
}
