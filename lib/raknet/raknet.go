// Package raknet implements the RakNet Unconnected Ping/Pong exchange
// Bedrock Edition servers answer, a one-shot UDP request/response with no
// handshake.
package raknet

import (
	"net"
	"strconv"
	"strings"
	"time"

	"mcstatus/lib/codec"
	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

// magic is the fixed 16-byte RakNet offline message identifier.
var magic = []byte{0x00, 0xFF, 0xFF, 0x00, 0xFE, 0xFE, 0xFE, 0xFE, 0xFD, 0xFD, 0xFD, 0xFD, 0x12, 0x34, 0x56, 0x78}

const unconnectedPingID byte = 0x01
const unconnectedPongID byte = 0x1C

// Server is the decoded Unconnected Pong payload.
type Server struct {
	Edition         string
	MOTDLine1       string
	ProtocolVersion int32
	VersionName     string
	PlayersOnline   int32
	PlayersMax      int32
	ServerUID       string
	MOTDLine2       string
	GameMode        string
	GameModeNumeric int32
	PortV4          int32
	PortV6          int32
}

// Options carries per-call socket tuning.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Ping sends a single Unconnected Ping and parses the Unconnected Pong.
func Ping(host string, port uint16, opts Options) (*Server, error) {
	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "pinging %s:%d (raknet)", host, port)

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := net.Dial("udp", addr)
	if err != nil {
		if dnsErr, ok := err.(*net.DNSError); ok && !dnsErr.IsTimeout {
			return nil, mcerr.Wrap(mcerr.InvalidAddress, err)
		}
		return nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}
	defer conn.Close()

	if opts.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
	}
	if opts.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
	}

	timestamp := time.Now().UnixMilli()
	clientGUID := int64(0x02) // any value; this process does not persist one

	req := []byte{unconnectedPingID}
	req = codec.PutI64BE(req, timestamp)
	req = append(req, magic...)
	req = codec.PutI64BE(req, clientGUID)

	if _, err := conn.Write(req); err != nil {
		return nil, wrapWriteErr(err)
	}

	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
			return nil, mcerr.Wrap(mcerr.NetworkTimeout, err)
		}
		return nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}

	return parsePong(buf[:n])
}

func wrapWriteErr(err error) error {
	if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
		return mcerr.Wrap(mcerr.NetworkTimeout, err)
	}
	return mcerr.Wrap(mcerr.NetworkIO, err)
}

func parsePong(resp []byte) (*Server, error) {
	const headerLen = 1 + 8 + 8 + 16 // id + echoed timestamp + server guid + magic
	if len(resp) < headerLen+2 {
		return nil, mcerr.New(mcerr.UnexpectedEof, "unconnected pong shorter than its fixed header")
	}
	if resp[0] != unconnectedPongID {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "unexpected unconnected pong id")
	}

	length := int(resp[headerLen])<<8 | int(resp[headerLen+1])
	payloadStart := headerLen + 2
	if len(resp) < payloadStart+length {
		return nil, mcerr.New(mcerr.UnexpectedEof, "unconnected pong payload shorter than advertised length")
	}

	payload := string(resp[payloadStart : payloadStart+length])
	fields := strings.Split(payload, ";")
	if len(fields) < 6 {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "unconnected pong payload has fewer than 6 fields")
	}

	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	parseInt := func(s string) int32 {
		v, _ := strconv.ParseInt(s, 10, 32)
		return int32(v)
	}

	return &Server{
		Edition:         field(0),
		MOTDLine1:       field(1),
		ProtocolVersion: parseInt(field(2)),
		VersionName:     field(3),
		PlayersOnline:   parseInt(field(4)),
		PlayersMax:      parseInt(field(5)),
		ServerUID:       field(6),
		MOTDLine2:       field(7),
		GameMode:        field(8),
		GameModeNumeric: parseInt(field(9)),
		PortV4:          parseInt(field(10)),
		PortV6:          parseInt(field(11)),
	}, nil
}
