package ping

import (
	"strings"

	"mcstatus/lib/mcerr"
)

// BetaLegacy speaks the pre-1.4 (Beta 1.8-1.3) Server List Ping protocol:
// a bare 0xFE probe, answered with a §-delimited three-field payload.
func BetaLegacy(host string, port uint16, opts Options) (*BetaLegacyServer, error) {
	conn, err := dialTCP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := setDeadlines(conn, opts); err != nil {
		return nil, err
	}

	if _, err := conn.Write([]byte{0xFE}); err != nil {
		return nil, wrapWriteErr(err)
	}

	text, err := readLegacyResponseText(conn)
	if err != nil {
		return nil, err
	}

	return parseBetaLegacyResponse(text)
}

// parseBetaLegacyResponse splits text on §. Only the last two parts are
// required to be non-negative integers; everything before them is
// rejoined as the MOTD, since a literal § inside the MOTD cannot be
// distinguished from a field separator in this protocol.
func parseBetaLegacyResponse(text string) (*BetaLegacyServer, error) {
	parts := strings.Split(text, "§")
	if len(parts) < 3 {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "beta legacy response has fewer than 3 §-delimited fields")
	}

	online, err := parseNonNegativeInt(parts[len(parts)-2])
	if err != nil {
		return nil, err
	}
	max, err := parseNonNegativeInt(parts[len(parts)-1])
	if err != nil {
		return nil, err
	}
	motd := strings.Join(parts[:len(parts)-2], "§")

	return &BetaLegacyServer{MOTD: motd, Online: online, Max: max}, nil
}
