package ping

import "strings"

// Legacy speaks the 1.4-1.5 Server List Ping protocol. Some servers in
// this version range answer the probe with a Beta-style payload instead
// of the §1-prefixed schema; on that mismatch this falls back to Beta
// Legacy parsing rather than failing outright.
func Legacy(host string, port uint16, opts Options) (*LegacyServer, error) {
	conn, err := dialTCP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := setDeadlines(conn, opts); err != nil {
		return nil, err
	}

	if _, err := conn.Write([]byte{0xFE, 0x01}); err != nil {
		return nil, wrapWriteErr(err)
	}

	text, err := readLegacyResponseText(conn)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(text, "§1\x00") {
		beta, err := parseBetaLegacyResponse(text)
		if err != nil {
			return nil, err
		}
		return &LegacyServer{MOTD: beta.MOTD, Online: beta.Online, Max: beta.Max}, nil
	}

	return parseNettyLegacyResponse(text)
}
