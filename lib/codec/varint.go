package codec

import (
	"io"

	"mcstatus/lib/mcerr"
)

const (
	segmentBits  = 0x7F
	continueBit  = 0x80
	maxVarIntLen = 5
)

// WriteVarInt appends the 7-bit continuation encoding of v to dst and
// returns the extended slice. The encoding treats v as an unsigned 32-bit
// value, matching the modern Minecraft protocol's VarInt.
func WriteVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		if u&^uint32(segmentBits) == 0 {
			return append(dst, byte(u))
		}
		dst = append(dst, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
}

// ReadVarInt reads a 7-bit continuation encoded integer from r. It fails
// with mcerr.VarIntTooLarge once a 6th byte would be required, and with
// mcerr.UnexpectedEof if the stream ends mid-sequence.
func ReadVarInt(r io.Reader) (int32, error) {
	var result uint32
	var position uint
	buf := make([]byte, 1)

	for {
		if position/7 >= maxVarIntLen {
			return 0, mcerr.New(mcerr.VarIntTooLarge, "varint exceeds 5 bytes")
		}

		n, err := io.ReadFull(r, buf)
		if n == 0 && err != nil {
			return 0, mcerr.New(mcerr.UnexpectedEof, "eof while reading varint")
		}
		if err != nil {
			return 0, mcerr.Wrap(mcerr.NetworkIO, err)
		}

		b := buf[0]
		result |= uint32(b&segmentBits) << position
		if b&continueBit == 0 {
			break
		}
		position += 7
	}

	return int32(result), nil
}
