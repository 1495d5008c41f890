package query

import (
	"bufio"
	"bytes"

	"mcstatus/lib/codec"
	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

// Basic performs the Query basic-stat request, running the challenge
// handshake first if no cached token is available (or retrying it once if
// a cached token turns out to be stale).
func Basic(host string, port uint16, opts Options) (*BasicStatus, error) {
	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "querying %s:%d (basic stat)", host, port)

	_, cached := tokenCache.Get(cacheKey(host, port))
	status, err := basicOnce(host, port, opts)
	if err != nil && cached && isStaleTokenErr(err) {
		invalidateToken(host, port)
		return basicOnce(host, port, opts)
	}
	return status, err
}

func isStaleTokenErr(err error) bool {
	kind, ok := mcerr.KindOf(err)
	return ok && kind == mcerr.ProtocolMismatch
}

func basicOnce(host string, port uint16, opts Options) (*BasicStatus, error) {
	token, err := getToken(host, port, opts)
	if err != nil {
		return nil, err
	}

	conn, err := dialUDP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := append([]byte{}, queryMagic...)
	req = append(req, typeStat)
	req = codec.PutI32BE(req, sessionID)
	req = codec.PutI32BE(req, token)

	if _, err := conn.Write(req); err != nil {
		return nil, writeErr(err)
	}

	resp, err := readDatagram(conn)
	if err != nil {
		return nil, err
	}

	return parseBasicResponse(resp)
}

func parseBasicResponse(resp []byte) (*BasicStatus, error) {
	r := bufio.NewReader(bytes.NewReader(resp))

	gotType, err := r.ReadByte()
	if err != nil || gotType != typeStat {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "unexpected basic stat response type")
	}
	if _, err := codec.ReadI32BE(r); err != nil { // echoed session id, unchecked value
		return nil, err
	}

	motd, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}
	gameType, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}
	mapName, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}
	onlineStr, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}
	maxStr, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}

	online, err := parseDecimal(onlineStr)
	if err != nil {
		return nil, err
	}
	max, err := parseDecimal(maxStr)
	if err != nil {
		return nil, err
	}

	// port is little-endian here, unlike every other 16-bit field in the
	// protocol family.
	port, err := codec.ReadU16LE(r)
	if err != nil {
		return nil, err
	}
	hostIP, err := codec.ReadNullTerminatedASCII(r)
	if err != nil {
		return nil, err
	}

	return &BasicStatus{
		MOTD:     motd,
		GameType: gameType,
		Map:      mapName,
		Online:   online,
		Max:      max,
		HostPort: port,
		HostIP:   hostIP,
	}, nil
}
