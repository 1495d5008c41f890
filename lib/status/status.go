// Package status is the public entry point: Conf/SocketConf construction
// and the dispatch methods selecting a dialect for a given host and port.
// Each method delegates to the matching lib/ping, lib/query, or
// lib/raknet implementation and returns that dialect's own record type:
// each dialect is its own method rather than a single method switching
// on a runtime dialect argument.
package status

import (
	"strconv"
	"strings"
	"time"

	"mcstatus/lib/mcerr"
	"mcstatus/lib/ping"
	"mcstatus/lib/query"
	"mcstatus/lib/raknet"
)

const (
	defaultJavaPort    uint16 = 25565
	defaultBedrockPort uint16 = 19132
)

// Conf is immutable connection configuration: a host and port.
type Conf struct {
	host string
	port uint16
}

// SocketConf tunes the socket used by a single dialect call. Zero values
// mean platform-default timeouts.
type SocketConf struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConf builds a Conf for a Java Edition server, defaulting the port to
// 25565.
func NewConf(host string) *Conf {
	return &Conf{host: host, port: defaultJavaPort}
}

// NewConfBedrock builds a Conf for a Bedrock Edition server, defaulting
// the port to 19132.
func NewConfBedrock(host string) *Conf {
	return &Conf{host: host, port: defaultBedrockPort}
}

// NewConfWithPort builds a Conf for an explicit host and port.
func NewConfWithPort(host string, port uint16) *Conf {
	return &Conf{host: host, port: port}
}

// NewConfFromString parses "host" or "host:port", defaulting the port to
// 25565 when absent.
func NewConfFromString(s string) (*Conf, error) {
	if !strings.Contains(s, ":") {
		return NewConf(s), nil
	}
	host, portStr, err := splitHostPort(s)
	if err != nil {
		return nil, mcerr.Wrap(mcerr.InvalidAddress, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, mcerr.New(mcerr.InvalidAddress, "port is not a valid 16-bit integer: "+portStr)
	}
	return &Conf{host: host, port: uint16(port)}, nil
}

func splitHostPort(s string) (string, string, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return "", "", mcerr.ErrInvalidAddress
	}
	return s[:idx], s[idx+1:], nil
}

func (c *Conf) Host() string { return c.host }
func (c *Conf) Port() uint16 { return c.port }

func pingOptions(sc SocketConf) ping.Options {
	return ping.Options{ReadTimeout: sc.ReadTimeout, WriteTimeout: sc.WriteTimeout}
}

func queryOptions(sc SocketConf) query.Options {
	return query.Options{ReadTimeout: sc.ReadTimeout, WriteTimeout: sc.WriteTimeout}
}

func raknetOptions(sc SocketConf) raknet.Options {
	return raknet.Options{ReadTimeout: sc.ReadTimeout, WriteTimeout: sc.WriteTimeout}
}

// GetServerStatus speaks the modern (1.7+) Server List Ping protocol.
func (c *Conf) GetServerStatus(sc SocketConf) (*ping.Server, error) {
	return ping.Modern(c.host, c.port, pingOptions(sc))
}

// GetNettyServerStatus speaks the 1.6 Server List Ping protocol.
func (c *Conf) GetNettyServerStatus(sc SocketConf) (*ping.LegacyServer, error) {
	return ping.Netty(c.host, c.port, pingOptions(sc))
}

// GetLegacyServerStatus speaks the 1.4-1.5 Server List Ping protocol,
// falling back to Beta Legacy parsing on mismatch.
func (c *Conf) GetLegacyServerStatus(sc SocketConf) (*ping.LegacyServer, error) {
	return ping.Legacy(c.host, c.port, pingOptions(sc))
}

// GetBetaLegacyServerStatus speaks the pre-1.4 Server List Ping protocol.
func (c *Conf) GetBetaLegacyServerStatus(sc SocketConf) (*ping.BetaLegacyServer, error) {
	return ping.BetaLegacy(c.host, c.port, pingOptions(sc))
}

// GetServerPing measures the modern dialect's round-trip latency over a
// fresh connection.
func (c *Conf) GetServerPing(sc SocketConf) (time.Duration, error) {
	return ping.Ping(c.host, c.port, pingOptions(sc))
}

// QueryBasic performs a Query (GS4) basic stat request.
func (c *Conf) QueryBasic(sc SocketConf) (*query.BasicStatus, error) {
	return query.Basic(c.host, c.port, queryOptions(sc))
}

// QueryFull performs a Query (GS4) full stat request.
func (c *Conf) QueryFull(sc SocketConf) (*query.FullStatus, error) {
	return query.Full(c.host, c.port, queryOptions(sc))
}

// GetBedrockRaknetStatus performs a RakNet Unconnected Ping against a
// Bedrock Edition server.
func (c *Conf) GetBedrockRaknetStatus(sc SocketConf) (*raknet.Server, error) {
	return raknet.Ping(c.host, c.port, raknetOptions(sc))
}
