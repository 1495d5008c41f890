package lan

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeAddr string

func (f fakeAddr) Network() string { return "udp" }
func (f fakeAddr) String() string  { return string(f) }

func TestParseAdvertisement(t *testing.T) {
	payload := []byte("[MOTD]LanSrv[/MOTD][AD]25565[/AD]")
	server, ok := parseAdvertisement(payload, fakeAddr("192.168.1.10:54321"))
	require.True(t, ok)
	require.Equal(t, "LanSrv", server.MOTD)
	require.Equal(t, "192.168.1.10:25565", server.Address)
}

func TestParseAdvertisement_MissingMarkersRejected(t *testing.T) {
	_, ok := parseAdvertisement([]byte("not an advertisement"), fakeAddr("192.168.1.10:1"))
	require.False(t, ok)
}

func TestDedupeCache_WithinWindowIsSuppressed(t *testing.T) {
	d := newDedupeCache()
	defer d.stop()

	require.True(t, d.shouldEmit("192.168.1.10:25565"))
	require.False(t, d.shouldEmit("192.168.1.10:25565")) // immediate repeat, still within the 1s window
}

func TestDedupeCache_DifferentAddressesIndependent(t *testing.T) {
	d := newDedupeCache()
	defer d.stop()

	require.True(t, d.shouldEmit("192.168.1.10:25565"))
	require.True(t, d.shouldEmit("192.168.1.11:25565"))
}

func TestDiscover_ReceivesAndCancels(t *testing.T) {
	handle, out, err := Discover(Options{ChannelBufferSize: 4})
	require.NoError(t, err)

	sender, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: MulticastPort})
	if err != nil {
		t.Skipf("multicast not available in this environment: %v", err)
	}
	defer sender.Close()

	payload := []byte("[MOTD]LanSrv[/MOTD][AD]25565[/AD]")
	sender.Write(payload)
	time.Sleep(100 * time.Millisecond)
	sender.Write(payload) // duplicate within the dedupe window, must not double-emit

	select {
	case server := <-out:
		require.Equal(t, "LanSrv", server.MOTD)
	case <-time.After(2 * time.Second):
		t.Skip("no multicast datagram observed in this environment")
	}

	handle.Cancel()

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after Cancel")
	}
}
