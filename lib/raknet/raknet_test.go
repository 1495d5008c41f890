package raknet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mcstatus/lib/codec"
)

func TestPing_BedrockFixture(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()
	port := uint16(pc.LocalAddr().(*net.UDPAddr).Port)

	payload := "MCPE;Dedicated;560;1.19.0;0;10;13253860892328930865;Bedrock;Survival;1;19132;19133"

	go func() {
		buf := make([]byte, 64)
		_, addr, err := pc.ReadFrom(buf)
		if err != nil {
			return
		}

		resp := []byte{unconnectedPongID}
		resp = codec.PutI64BE(resp, 0) // echoed timestamp, unchecked by the client
		resp = codec.PutI64BE(resp, 0xABCD)
		resp = append(resp, magic...)
		resp = codec.PutU16BE(resp, uint16(len(payload)))
		resp = append(resp, payload...)

		pc.WriteTo(resp, addr)
	}()

	server, err := Ping("127.0.0.1", port, Options{ReadTimeout: 2 * time.Second})
	require.NoError(t, err)
	require.Equal(t, "MCPE", server.Edition)
	require.Equal(t, "Dedicated", server.MOTDLine1)
	require.EqualValues(t, 560, server.ProtocolVersion)
	require.Equal(t, "1.19.0", server.VersionName)
	require.EqualValues(t, 0, server.PlayersOnline)
	require.EqualValues(t, 10, server.PlayersMax)
	require.Equal(t, "13253860892328930865", server.ServerUID)
	require.Equal(t, "Bedrock", server.MOTDLine2)
	require.Equal(t, "Survival", server.GameMode)
	require.EqualValues(t, 1, server.GameModeNumeric)
	require.EqualValues(t, 19132, server.PortV4)
	require.EqualValues(t, 19133, server.PortV6)
}

func TestParsePong_FewerThanSixFieldsFails(t *testing.T) {
	resp := []byte{unconnectedPongID}
	resp = codec.PutI64BE(resp, 0)
	resp = codec.PutI64BE(resp, 0)
	resp = append(resp, magic...)
	resp = codec.PutU16BE(resp, 5)
	resp = append(resp, "a;b;c"...)

	_, err := parsePong(resp)
	require.Error(t, err)
}
