package query

import (
	"bufio"
	"bytes"
	"strings"

	"mcstatus/lib/codec"
	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

// Full performs the Query full-stat request, with the same token-retry
// behavior as Basic.
func Full(host string, port uint16, opts Options) (*FullStatus, error) {
	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "querying %s:%d (full stat)", host, port)

	_, cached := tokenCache.Get(cacheKey(host, port))
	status, err := fullOnce(host, port, opts)
	if err != nil && cached && isStaleTokenErr(err) {
		invalidateToken(host, port)
		return fullOnce(host, port, opts)
	}
	return status, err
}

func fullOnce(host string, port uint16, opts Options) (*FullStatus, error) {
	token, err := getToken(host, port, opts)
	if err != nil {
		return nil, err
	}

	conn, err := dialUDP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := append([]byte{}, queryMagic...)
	req = append(req, typeStat)
	req = codec.PutI32BE(req, sessionID)
	req = codec.PutI32BE(req, token)
	req = append(req, fullStatPadding...)

	if _, err := conn.Write(req); err != nil {
		return nil, writeErr(err)
	}

	resp, err := readDatagram(conn)
	if err != nil {
		return nil, err
	}

	return parseFullResponse(resp)
}

func parseFullResponse(resp []byte) (*FullStatus, error) {
	r := bufio.NewReader(bytes.NewReader(resp))

	gotType, err := r.ReadByte()
	if err != nil || gotType != typeStat {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "unexpected full stat response type")
	}
	if _, err := codec.ReadI32BE(r); err != nil { // echoed session id, unchecked value
		return nil, err
	}

	if err := expectPadding(r, kvSectionPadding); err != nil {
		return nil, err
	}

	fields, err := readKVSection(r)
	if err != nil {
		return nil, err
	}

	if err := expectPadding(r, playerSectionPadding); err != nil {
		return nil, err
	}

	players, err := readPlayerSection(r)
	if err != nil {
		return nil, err
	}

	status := &FullStatus{
		Players: players,
		Extra:   map[string]string{},
	}

	for k, v := range fields {
		switch k {
		case "hostname":
			status.Hostname = v
		case "gametype":
			status.GameType = v
		case "game_id":
			status.GameID = v
		case "version":
			status.Version = v
		case "plugins":
			status.Plugins = v
			status.PluginList = parsePluginList(v)
		case "map":
			status.Map = v
		case "numplayers":
			n, err := parseDecimal(v)
			if err != nil {
				return nil, err
			}
			status.Online = n
		case "maxplayers":
			n, err := parseDecimal(v)
			if err != nil {
				return nil, err
			}
			status.Max = n
		case "hostport":
			n, err := parseDecimal(v)
			if err != nil {
				return nil, err
			}
			status.HostPort = uint16(n)
		case "hostip":
			status.HostIP = v
		default:
			status.Extra[k] = v
		}
	}

	return status, nil
}

func expectPadding(r *bufio.Reader, want []byte) error {
	got := make([]byte, len(want))
	n, err := r.Read(got)
	if err != nil || n != len(want) {
		return mcerr.New(mcerr.UnexpectedEof, "socket closed while reading fixed padding")
	}
	if !bytes.Equal(got, want) {
		return mcerr.New(mcerr.ProtocolMismatch, "unexpected full stat padding bytes")
	}
	return nil
}

func readKVSection(r *bufio.Reader) (map[string]string, error) {
	fields := map[string]string{}
	for {
		key, err := codec.ReadNullTerminatedASCII(r)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return fields, nil
		}
		value, err := codec.ReadNullTerminatedASCII(r)
		if err != nil {
			return nil, err
		}
		fields[key] = value
	}
}

func readPlayerSection(r *bufio.Reader) ([]string, error) {
	var players []string
	for {
		name, err := codec.ReadNullTerminatedASCII(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return players, nil
		}
		players = append(players, name)
	}
}

// parsePluginList splits the raw "plugins" value, of the form
// "ServerBrand: Plugin1 1.0; Plugin2 2.0", into structured entries.
func parsePluginList(raw string) []PluginEntry {
	if raw == "" {
		return nil
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return nil
	}
	var out []PluginEntry
	for _, entry := range strings.Split(parts[1], ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.SplitN(entry, " ", 2)
		plugin := PluginEntry{Name: fields[0]}
		if len(fields) == 2 {
			plugin.Version = fields[1]
		}
		out = append(out, plugin)
	}
	return out
}
