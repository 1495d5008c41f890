package status

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcstatus/lib/codec"
	"mcstatus/lib/mcerr"
)

func TestNewConfFromString_WithoutPortDefaultsTo25565(t *testing.T) {
	conf, err := NewConfFromString("example.com")
	require.NoError(t, err)
	require.Equal(t, "example.com", conf.Host())
	require.EqualValues(t, 25565, conf.Port())
}

func TestNewConfFromString_WithPort(t *testing.T) {
	conf, err := NewConfFromString("example.com:19132")
	require.NoError(t, err)
	require.Equal(t, "example.com", conf.Host())
	require.EqualValues(t, 19132, conf.Port())
}

func TestNewConfFromString_BadPortIsInvalidAddress(t *testing.T) {
	_, err := NewConfFromString("example.com:not-a-port")
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.InvalidAddress, kind)
}

func TestNewConfBedrock_DefaultsPort(t *testing.T) {
	conf := NewConfBedrock("example.com")
	require.EqualValues(t, 19132, conf.Port())
}

func TestGetBetaLegacyServerStatus_DispatchesToPing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := uint16(ln.Addr().(*net.TCPAddr).Port)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 1)
		conn.Read(buf) // consume the bare 0xFE probe

		text := "A Beta Server§5§20"
		payload, err := codec.EncodeUTF16BE(text)
		if err != nil {
			return
		}

		resp := []byte{0xFF}
		resp = codec.PutU16BE(resp, uint16(len(payload)/2))
		resp = append(resp, payload...)
		conn.Write(resp)
	}()

	conf := NewConfWithPort("127.0.0.1", port)
	srv, err := conf.GetBetaLegacyServerStatus(SocketConf{ReadTimeout: 2 * time.Second, WriteTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "A Beta Server", srv.MOTD)
	require.EqualValues(t, 5, srv.Online)
	require.EqualValues(t, 20, srv.Max)
}
