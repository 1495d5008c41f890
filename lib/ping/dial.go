package ping

import (
	"fmt"
	"net"
	"time"

	"mcstatus/lib/mcerr"
)

// Options carries per-call socket tuning, mirroring SocketConf: a nil
// Dialer and zero timeouts mean platform defaults.
type Options struct {
	Dialer       *net.Dialer
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func dialTCP(host string, port uint16, opts Options) (net.Conn, error) {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		if dnsErr, ok := err.(*net.DNSError); ok && !dnsErr.IsTimeout {
			return nil, mcerr.Wrap(mcerr.InvalidAddress, err)
		}
		return nil, mcerr.Wrap(mcerr.NetworkIO, err)
	}
	return conn, nil
}

func setDeadlines(conn net.Conn, opts Options) error {
	if opts.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(opts.WriteTimeout)); err != nil {
			return mcerr.Wrap(mcerr.NetworkIO, err)
		}
	}
	if opts.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout)); err != nil {
			return mcerr.Wrap(mcerr.NetworkIO, err)
		}
	}
	return nil
}

func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr interface{ Timeout() bool }
	if as, ok := err.(interface{ Timeout() bool }); ok {
		netErr = as
	}
	if netErr != nil && netErr.Timeout() {
		return mcerr.Wrap(mcerr.NetworkTimeout, err)
	}
	return mcerr.Wrap(mcerr.NetworkIO, err)
}
