package ping

import (
	"io"
	"strconv"
	"strings"

	"mcstatus/lib/codec"
	"mcstatus/lib/mcerr"
)

// readLegacyResponseText reads the 0xFF-prefixed, u16-BE-character-count,
// UTF-16BE response frame shared by the Netty, Legacy, and Beta Legacy
// dialects.
func readLegacyResponseText(r io.Reader) (string, error) {
	if err := codec.ExpectBytes(r, []byte{0xFF}); err != nil {
		return "", err
	}
	return codec.ReadStringUTF16BEU16(r)
}

func parseNonNegativeInt(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, mcerr.New(mcerr.InvalidNumber, "expected decimal integer, got "+strconv.Quote(s))
	}
	if v < 0 {
		return 0, mcerr.New(mcerr.InvalidNumber, "expected non-negative integer, got "+strconv.Quote(s))
	}
	return int32(v), nil
}
