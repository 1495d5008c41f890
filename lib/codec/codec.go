// Package codec implements the byte-level primitives shared by every
// Minecraft status dialect: fixed-width integer reads, the modern
// protocol's VarInt, UTF-8/UTF-16BE strings, and magic-byte framing.
package codec

import (
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"mcstatus/lib/mcerr"
)

var utf16BEDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
var utf16BEEncoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()

func readFull(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err == nil {
		return buf, nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		if read > 0 {
			return nil, mcerr.New(mcerr.UnexpectedEof, "socket closed with a partial frame")
		}
		return nil, mcerr.New(mcerr.UnexpectedEof, "socket closed before any data arrived")
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, mcerr.Wrap(mcerr.NetworkTimeout, err)
	}
	return nil, mcerr.Wrap(mcerr.NetworkIO, err)
}

// ReadU8 reads a single unsigned byte.
func ReadU8(r io.Reader) (byte, error) {
	b, err := readFull(r, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16BE reads a big-endian unsigned 16-bit integer.
func ReadU16BE(r io.Reader) (uint16, error) {
	b, err := readFull(r, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadU16LE reads a little-endian unsigned 16-bit integer. Used only by
// the Query basic-stat response, whose port field breaks with every other
// 16-bit field in the protocol family by being little-endian.
func ReadU16LE(r io.Reader) (uint16, error) {
	b, err := readFull(r, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI32BE reads a big-endian signed 32-bit integer.
func ReadI32BE(r io.Reader) (int32, error) {
	b, err := readFull(r, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadI64BE reads a big-endian signed 64-bit integer.
func ReadI64BE(r io.Reader) (int64, error) {
	b, err := readFull(r, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadI64LE reads a little-endian signed 64-bit integer.
func ReadI64LE(r io.Reader) (int64, error) {
	b, err := readFull(r, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// PutU16BE appends a big-endian unsigned 16-bit integer to dst.
func PutU16BE(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// PutI32BE appends a big-endian signed 32-bit integer to dst.
func PutI32BE(dst []byte, v int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return append(dst, b[:]...)
}

// PutI64BE appends a big-endian signed 64-bit integer to dst.
func PutI64BE(dst []byte, v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return append(dst, b[:]...)
}

// ReadStringUTF8VarInt reads a VarInt length n followed by n UTF-8 bytes,
// as the modern dialect's handshake host field and status JSON payload do.
func ReadStringUTF8VarInt(r io.Reader) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", mcerr.New(mcerr.ProtocolMismatch, "negative string length")
	}
	b, err := readFull(r, int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", mcerr.New(mcerr.InvalidUtf8, "string payload is not valid utf-8")
	}
	return string(b), nil
}

// WriteStringUTF8VarInt appends a VarInt length followed by the UTF-8
// bytes of s.
func WriteStringUTF8VarInt(dst []byte, s string) []byte {
	dst = WriteVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// ReadStringUTF16BEU16 reads a big-endian 16-bit character count n
// followed by 2n bytes of UTF-16BE text, as the Netty and Legacy response
// frames do.
func ReadStringUTF16BEU16(r io.Reader) (string, error) {
	n, err := ReadU16BE(r)
	if err != nil {
		return "", err
	}
	raw, err := readFull(r, int(n)*2)
	if err != nil {
		return "", err
	}
	decoded, err := utf16BEDecoder.Bytes(raw)
	if err != nil {
		return "", mcerr.New(mcerr.InvalidUtf8, "invalid utf-16be text: "+err.Error())
	}
	return string(decoded), nil
}

// EncodeUTF16BE encodes s as UTF-16BE bytes, for building the outgoing
// Netty request.
func EncodeUTF16BE(s string) ([]byte, error) {
	encoded, err := utf16BEEncoder.Bytes([]byte(s))
	if err != nil {
		return nil, mcerr.New(mcerr.InvalidUtf8, "cannot encode string as utf-16be: "+err.Error())
	}
	return encoded, nil
}

// DecodeUTF16BE decodes raw big-endian UTF-16 bytes to a Go string.
func DecodeUTF16BE(raw []byte) (string, error) {
	decoded, err := utf16BEDecoder.Bytes(raw)
	if err != nil {
		return "", mcerr.New(mcerr.InvalidUtf8, "invalid utf-16be text: "+err.Error())
	}
	return string(decoded), nil
}

// ReadNullTerminatedASCII reads bytes up to and including the first 0x00,
// returning the bytes preceding it.
func ReadNullTerminatedASCII(r io.ByteReader) (string, error) {
	var out []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", mcerr.New(mcerr.UnexpectedEof, "eof before null terminator")
			}
			return "", mcerr.Wrap(mcerr.NetworkIO, err)
		}
		if b == 0x00 {
			return string(out), nil
		}
		out = append(out, b)
	}
}

// ExpectBytes reads exactly len(magic) bytes and compares them against
// magic, failing with mcerr.ProtocolMismatch on any difference.
func ExpectBytes(r io.Reader, magic []byte) error {
	got, err := readFull(r, len(magic))
	if err != nil {
		return err
	}
	for i := range magic {
		if got[i] != magic[i] {
			return mcerr.New(mcerr.ProtocolMismatch, "magic byte mismatch")
		}
	}
	return nil
}
