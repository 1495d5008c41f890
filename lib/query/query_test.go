package query

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcstatus/lib/codec"
	"mcstatus/lib/mcerr"
)

// fakeQueryServer answers exactly one handshake and one stat request with
// canned bytes, then stops.
func fakeQueryServer(t *testing.T, handshakeToken int32, statResponder func(req []byte) []byte) (net.PacketConn, uint16) {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(pc.LocalAddr().(*net.UDPAddr).Port)

	go func() {
		buf := make([]byte, 2048)
		for i := 0; i < 2; i++ {
			n, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			req := append([]byte{}, buf[:n]...)
			if req[2] == typeHandshake {
				resp := append([]byte{}, typeHandshake)
				resp = codec.PutI32BE(resp, sessionID)
				resp = append(resp, []byte(itoa(handshakeToken))...)
				resp = append(resp, 0x00)
				pc.WriteTo(resp, addr)
			} else {
				pc.WriteTo(statResponder(req), addr)
			}
		}
	}()

	return pc, port
}

func itoa(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

func TestBasic_HappyPath(t *testing.T) {
	tokenCache.Flush()
	pc, port := fakeQueryServer(t, 9513307, func(req []byte) []byte {
		resp := append([]byte{}, typeStat)
		resp = codec.PutI32BE(resp, sessionID)
		resp = append(resp, "A Minecraft Server\x00"...)
		resp = append(resp, "SMP\x00"...)
		resp = append(resp, "world\x00"...)
		resp = append(resp, "2\x00"...)
		resp = append(resp, "20\x00"...)
		resp = append(resp, 0xDD, 0x63) // 25565 little-endian
		resp = append(resp, "10.0.0.5\x00"...)
		return resp
	})
	defer pc.Close()

	status, err := Basic("127.0.0.1", port, Options{ReadTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "A Minecraft Server", status.MOTD)
	require.Equal(t, "SMP", status.GameType)
	require.Equal(t, "world", status.Map)
	require.EqualValues(t, 2, status.Online)
	require.EqualValues(t, 20, status.Max)
	require.EqualValues(t, 25565, status.HostPort)
	require.Equal(t, "10.0.0.5", status.HostIP)
}

func TestFull_HappyPath(t *testing.T) {
	tokenCache.Flush()
	pc, port := fakeQueryServer(t, 9513307, func(req []byte) []byte {
		resp := append([]byte{}, typeStat)
		resp = codec.PutI32BE(resp, sessionID)
		resp = append(resp, kvSectionPadding...)
		kv := map[string]string{
			"hostname":   "MySrv",
			"gametype":   "SMP",
			"game_id":    "MINECRAFT",
			"version":    "1.19.4",
			"plugins":    "",
			"map":        "world",
			"numplayers": "2",
			"maxplayers": "20",
			"hostport":   "25565",
			"hostip":     "10.0.0.5",
		}
		for _, k := range []string{"hostname", "gametype", "game_id", "version", "plugins", "map", "numplayers", "maxplayers", "hostport", "hostip"} {
			resp = append(resp, k+"\x00"+kv[k]+"\x00"...)
		}
		resp = append(resp, 0x00) // empty key terminates kv section
		resp = append(resp, playerSectionPadding...)
		resp = append(resp, "alice\x00bob\x00\x00"...)
		return resp
	})
	defer pc.Close()

	status, err := Full("127.0.0.1", port, Options{ReadTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "MySrv", status.Hostname)
	require.Equal(t, "SMP", status.GameType)
	require.Equal(t, "MINECRAFT", status.GameID)
	require.Equal(t, "1.19.4", status.Version)
	require.Equal(t, "world", status.Map)
	require.EqualValues(t, 2, status.Online)
	require.EqualValues(t, 20, status.Max)
	require.EqualValues(t, 25565, status.HostPort)
	require.Equal(t, "10.0.0.5", status.HostIP)
	require.Equal(t, []string{"alice", "bob"}, status.Players)
}

func TestHandshake_TokenFromPayload(t *testing.T) {
	tokenCache.Flush()
	pc, port := fakeQueryServer(t, 9513307, func(req []byte) []byte { return nil })
	defer pc.Close()

	token, err := getToken("127.0.0.1", port, Options{ReadTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.EqualValues(t, 9513307, token)
}

func TestFull_BadPaddingFailsProtocolMismatch(t *testing.T) {
	tokenCache.Flush()
	pc, port := fakeQueryServer(t, 1, func(req []byte) []byte {
		resp := append([]byte{}, typeStat)
		resp = codec.PutI32BE(resp, sessionID)
		resp = append(resp, "not-the-right-padding"...)
		return resp
	})
	defer pc.Close()

	_, err := Full("127.0.0.1", port, Options{ReadTimeout: 200 * time.Millisecond})
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.ProtocolMismatch, kind)
}

func TestInvalidNumberKind(t *testing.T) {
	_, err := parseDecimal("not-a-number")
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.InvalidNumber, kind)
}
