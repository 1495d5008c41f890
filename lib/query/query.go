package query

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"

	"mcstatus/lib/codec"
	"mcstatus/lib/mcerr"
)

var (
	queryMagic = []byte{0xFE, 0xFD}

	// fullStatPadding is the four zero bytes appended after the token in a
	// full-stat request (see DESIGN.md for why this differs from some
	// other GS4 clients' 0xFF 0xFF 0xFF 0x01).
	fullStatPadding = []byte{0x00, 0x00, 0x00, 0x00}

	kvSectionPadding     = []byte("splitnum\x00\x80\x00")
	playerSectionPadding = []byte("\x01player_\x00\x00")
)

const (
	typeHandshake byte = 0x09
	typeStat      byte = 0x00

	// sessionID is fixed for every request this client makes. The protocol
	// only requires its high nibbles be zero; servers do not require
	// variety within a process.
	sessionID int32 = 0x01

	tokenTTL = 25 * time.Second
)

var tokenCache = cache.New(tokenTTL, time.Minute)

// Options carries per-call socket tuning.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func cacheKey(host string, port uint16) string {
	return fmt.Sprintf("%s:%d", host, port)
}

func dialUDP(host string, port uint16, opts Options) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := net.Dial("udp", addr)
	if err != nil {
		if dnsErr, ok := err.(*net.DNSError); ok && !dnsErr.IsTimeout {
			return nil, mcerr.Wrap(mcerr.InvalidAddress, err)
		}
		return nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}
	if opts.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout))
	}
	if opts.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
	}
	return conn, nil
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
		return mcerr.Wrap(mcerr.NetworkTimeout, err)
	}
	return mcerr.Wrap(mcerr.NetworkIO, err)
}

func readDatagram(conn net.Conn) ([]byte, error) {
	buf := make([]byte, 16384)
	n, err := conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
			return nil, mcerr.Wrap(mcerr.NetworkTimeout, err)
		}
		return nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}
	return buf[:n], nil
}

// handshake performs the challenge-token exchange and returns the token.
func handshake(conn net.Conn) (int32, error) {
	req := append([]byte{}, queryMagic...)
	req = append(req, typeHandshake)
	req = codec.PutI32BE(req, sessionID)

	if _, err := conn.Write(req); err != nil {
		return 0, writeErr(err)
	}

	resp, err := readDatagram(conn)
	if err != nil {
		return 0, err
	}

	r := bufio.NewReader(bytes.NewReader(resp))
	gotType, err := r.ReadByte()
	if err != nil || gotType != typeHandshake {
		return 0, mcerr.New(mcerr.ProtocolMismatch, "unexpected handshake response type")
	}
	gotSession, err := codec.ReadI32BE(r)
	if err != nil || gotSession != sessionID {
		return 0, mcerr.New(mcerr.ProtocolMismatch, "unexpected handshake session id")
	}

	tokenStr, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return 0, err
	}
	token, err := strconv.ParseInt(tokenStr, 10, 32)
	if err != nil {
		return 0, mcerr.New(mcerr.InvalidNumber, "challenge token is not a valid decimal integer")
	}
	return int32(token), nil
}

func getToken(host string, port uint16, opts Options) (int32, error) {
	key := cacheKey(host, port)
	if cached, ok := tokenCache.Get(key); ok {
		return cached.(int32), nil
	}

	conn, err := dialUDP(host, port, opts)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	token, err := handshake(conn)
	if err != nil {
		return 0, err
	}
	tokenCache.SetDefault(key, token)
	return token, nil
}

// invalidateToken drops a cached token after a stat request fails,
// forcing the next call to rerun the handshake.
func invalidateToken(host string, port uint16) {
	tokenCache.Delete(cacheKey(host, port))
}
