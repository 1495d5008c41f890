package query

import (
	"strconv"

	"mcstatus/lib/mcerr"
)

func parseDecimal(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, mcerr.New(mcerr.InvalidNumber, "expected decimal integer, got "+strconv.Quote(s))
	}
	return int32(v), nil
}
