// Package lan implements the LAN discovery receiver: a background task
// that joins the Minecraft LAN multicast group, decodes advertisements,
// de-duplicates them, and streams them to a bounded channel until
// cancelled.
package lan

import (
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

const (
	// MulticastAddr is the IPv4 multicast group Minecraft LAN worlds
	// advertise on.
	MulticastAddr = "224.0.2.60"
	// MulticastPort is the UDP port paired with MulticastAddr.
	MulticastPort = 4445

	dedupeWindow = 1 * time.Second
	dedupeExpiry = 10 * time.Second

	defaultChannelBuffer = 16
)

// Server is one decoded LAN advertisement.
type Server struct {
	MOTD    string
	Address string // "<sender_ip>:<port>"
}

// Options tunes the discovery receiver.
type Options struct {
	// ChannelBufferSize sets the bound on the output channel; defaults to
	// 16 when zero.
	ChannelBufferSize int
}

// Handle lets the caller cancel a running discovery receiver from any
// goroutine.
type Handle struct {
	conn net.PacketConn
	once sync.Once
}

// Cancel closes the receiver's socket, causing its background goroutine
// to exit and close the output channel. Safe to call more than once and
// from any goroutine.
func (h *Handle) Cancel() {
	h.once.Do(func() {
		h.conn.Close()
	})
}

// Discover joins the LAN multicast group and returns a cancellation
// handle plus a channel of newly observed servers. The channel is closed
// when the receiver stops, whether by cancellation or a socket error.
func Discover(opts Options) (*Handle, <-chan Server, error) {
	bufSize := opts.ChannelBufferSize
	if bufSize <= 0 {
		bufSize = defaultChannelBuffer
	}

	addr := &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: MulticastPort}
	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return nil, nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}

	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "joined LAN discovery multicast group %s:%d", MulticastAddr, MulticastPort)

	handle := &Handle{conn: conn}
	out := make(chan Server, bufSize)

	go receiveLoop(conn, out)

	return handle, out, nil
}

func receiveLoop(conn net.PacketConn, out chan Server) {
	defer close(out)

	dedupe := newDedupeCache()
	defer dedupe.stop()

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return
		}

		server, ok := parseAdvertisement(buf[:n], addr)
		if !ok {
			continue // malformed datagram, silently discarded
		}
		if !dedupe.shouldEmit(server.Address) {
			continue
		}

		errco.NewLogln(errco.TYPE_BYT, errco.LVL_4, errco.ERROR_NIL, "%sLAN advertisement%s: %s (%s)", errco.COLOR_PURPLE, errco.COLOR_RESET, server.Address, server.MOTD)
		sendDropOldest(out, server)
	}
}

func sendDropOldest(out chan Server, server Server) {
	select {
	case out <- server:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- server:
	default:
	}
}

// parseAdvertisement scans for [MOTD]...[/MOTD][AD]...[/AD], returning
// false if the four markers are not found in order.
func parseAdvertisement(payload []byte, addr net.Addr) (Server, bool) {
	text := string(payload)

	motd, ok := between(text, "[MOTD]", "[/MOTD]")
	if !ok {
		return Server{}, false
	}
	portStr, ok := between(text, "[AD]", "[/AD]")
	if !ok {
		return Server{}, false
	}
	if _, err := strconv.ParseUint(portStr, 10, 16); err != nil {
		return Server{}, false
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		host = addr.String()
	}

	return Server{MOTD: motd, Address: net.JoinHostPort(host, portStr)}, true
}

func between(text, open, shut string) (string, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(text[start:], shut)
	if end < 0 {
		return "", false
	}
	return text[start : start+end], true
}

// dedupeCache tracks the last emission time per address, enforcing a
// sliding window: at most one emission per address per second, with
// entries expiring after 10 seconds of inactivity.
type dedupeCache struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	stopCh   chan struct{}
}

func newDedupeCache() *dedupeCache {
	d := &dedupeCache{
		lastSeen: map[string]time.Time{},
		stopCh:   make(chan struct{}),
	}
	go d.cleanupLoop()
	return d
}

func (d *dedupeCache) shouldEmit(address string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if last, ok := d.lastSeen[address]; ok && now.Sub(last) < dedupeWindow {
		return false
	}
	d.lastSeen[address] = now
	return true
}

func (d *dedupeCache) cleanupLoop() {
	ticker := time.NewTicker(dedupeExpiry)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.mu.Lock()
			now := time.Now()
			for addr, last := range d.lastSeen {
				if now.Sub(last) > dedupeExpiry {
					delete(d.lastSeen, addr)
				}
			}
			d.mu.Unlock()
		case <-d.stopCh:
			return
		}
	}
}

func (d *dedupeCache) stop() {
	close(d.stopCh)
}
