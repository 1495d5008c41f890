package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"mcstatus/lib/mcerr"
)

// Fixtures below are the literal encode_varint() cases from the reference
// crate's varint test table.
func TestWriteVarInt_Fixtures(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, WriteVarInt(nil, c.v))
	}
}

func TestVarInt_RoundTrip(t *testing.T) {
	values := []int32{0, 1, 127, 128, 255, 25565, 2097151, 2147483647, -1, -2147483648, -25565, 300}
	for _, v := range values {
		encoded := WriteVarInt(nil, v)
		require.GreaterOrEqual(t, len(encoded), 1)
		require.LessOrEqual(t, len(encoded), 5)
		got, err := ReadVarInt(bytes.NewReader(encoded))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarInt_WidthOneByteForSmallValues(t *testing.T) {
	for v := int32(0); v <= 127; v++ {
		require.Len(t, WriteVarInt(nil, v), 1)
	}
}

func TestReadVarInt_TooLarge(t *testing.T) {
	// six bytes, continuation bit set on all but the last
	in := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}
	_, err := ReadVarInt(bytes.NewReader(in))
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.VarIntTooLarge, kind)
}

func TestReadVarInt_UnexpectedEOF(t *testing.T) {
	in := []byte{0x80, 0x80} // continuation bit set, stream ends
	_, err := ReadVarInt(bytes.NewReader(in))
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.UnexpectedEof, kind)
}
