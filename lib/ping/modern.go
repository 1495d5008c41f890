package ping

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"mcstatus/lib/chat"
	"mcstatus/lib/codec"
	"mcstatus/lib/errco"
	"mcstatus/lib/mcerr"
)

// modernProtocolVersion is sent in every handshake regardless of the
// target server's actual version. Servers reply to status requests
// without validating it.
const modernProtocolVersion int32 = 47

const modernNextStateStatus int32 = 1

// Modern speaks the 1.7+ Server List Ping protocol: a VarInt-framed
// handshake followed by a status request, and returns the decoded status
// JSON as a Server.
func Modern(host string, port uint16, opts Options) (*Server, error) {
	errco.NewLogln(errco.TYPE_INF, errco.LVL_2, errco.ERROR_NIL, "pinging %s:%d (modern)", host, port)

	conn, err := dialTCP(host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := setDeadlines(conn, opts); err != nil {
		return nil, err
	}

	if err := writeModernHandshake(conn, host, port); err != nil {
		return nil, err
	}
	if err := writeModernStatusRequest(conn); err != nil {
		return nil, err
	}

	payload, err := readModernStatusResponse(conn)
	if err != nil {
		return nil, err
	}

	return parseModernStatus(payload)
}

func writeModernHandshake(w io.Writer, host string, port uint16) error {
	var payload []byte
	payload = codec.WriteVarInt(payload, 0x00) // packet id
	payload = codec.WriteVarInt(payload, modernProtocolVersion)
	payload = codec.WriteStringUTF8VarInt(payload, host)
	payload = codec.PutU16BE(payload, port)
	payload = codec.WriteVarInt(payload, modernNextStateStatus)

	frame := codec.WriteVarInt(nil, int32(len(payload)))
	frame = append(frame, payload...)

	_, err := w.Write(frame)
	return wrapWriteErr(err)
}

func writeModernStatusRequest(w io.Writer) error {
	payload := codec.WriteVarInt(nil, 0x00) // packet id, empty body
	frame := codec.WriteVarInt(nil, int32(len(payload)))
	frame = append(frame, payload...)

	_, err := w.Write(frame)
	return wrapWriteErr(err)
}

func readModernStatusResponse(r io.Reader) ([]byte, error) {
	length, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "negative packet length")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, mcerr.New(mcerr.UnexpectedEof, "socket closed before the full status packet arrived")
	}

	reader := bytes.NewReader(body)
	packetID, err := codec.ReadVarInt(reader)
	if err != nil {
		return nil, err
	}
	if packetID != 0x00 {
		return nil, mcerr.New(mcerr.ProtocolMismatch, "unexpected status response packet id")
	}

	jsonStr, err := codec.ReadStringUTF8VarInt(reader)
	if err != nil {
		return nil, err
	}
	errco.NewLogln(errco.TYPE_BYT, errco.LVL_4, errco.ERROR_NIL, "%sserver --> client%s: %d bytes", errco.COLOR_BLUE, errco.COLOR_RESET, len(jsonStr))
	return []byte(jsonStr), nil
}

type modernStatusJSON struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int32  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int32 `json:"max"`
		Online int32 `json:"online"`
		Sample []struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"sample"`
	} `json:"players"`
	Description        json.RawMessage `json:"description"`
	Favicon            string          `json:"favicon"`
	EnforcesSecureChat bool            `json:"enforcesSecureChat"`
	PreviewsChat       bool            `json:"previewsChat"`
	ForgeData          *struct {
		Mods []struct {
			ModID     string `json:"modId"`
			ModMarker string `json:"modmarker"`
		} `json:"mods"`
		Channels []struct {
			Res      string `json:"res"`
			Version  string `json:"version"`
			Required bool   `json:"required"`
		} `json:"channels"`
	} `json:"forgeData"`
}

func parseModernStatus(payload []byte) (*Server, error) {
	var parsed modernStatusJSON
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, mcerr.New(mcerr.ChatComponentInvalid, "status payload is not valid json: "+err.Error())
	}

	var description *chat.Component
	if len(parsed.Description) == 0 {
		description = &chat.Component{}
	} else {
		var derr error
		description, derr = chat.Decode(parsed.Description)
		if derr != nil {
			return nil, derr
		}
	}

	result := &Server{
		Version: Version{
			Name:     parsed.Version.Name,
			Protocol: parsed.Version.Protocol,
		},
		Players: Players{
			Max:    parsed.Players.Max,
			Online: parsed.Players.Online,
		},
		Description:        *description,
		Favicon:            parsed.Favicon,
		EnforcesSecureChat: parsed.EnforcesSecureChat,
		PreviewsChat:       parsed.PreviewsChat,
	}

	for _, sample := range parsed.Players.Sample {
		entry := PlayerEntry{Name: sample.Name}
		if id, err := uuid.Parse(sample.ID); err == nil {
			entry.ID = id.String()
		} else {
			entry.ID = sample.ID
		}
		result.Players.Sample = append(result.Players.Sample, entry)
	}

	if parsed.ForgeData != nil {
		fd := &ForgeData{}
		for _, m := range parsed.ForgeData.Mods {
			fd.Mods = append(fd.Mods, ForgeMod{ModID: m.ModID, ModMarker: m.ModMarker})
		}
		for _, c := range parsed.ForgeData.Channels {
			fd.Channels = append(fd.Channels, ForgeChannel{Res: c.Res, Version: c.Version, Required: c.Required})
		}
		result.ForgeData = fd
	}

	return result, nil
}

// Ping performs the modern dialect's separate latency probe: a second,
// fresh connection that exchanges a Ping/Pong packet pair and reports the
// round-trip time. Status and ping are independent handshakes on the
// wire, so this opens its own socket rather than reusing Modern's.
func Ping(host string, port uint16, opts Options) (time.Duration, error) {
	conn, err := dialTCP(host, port, opts)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if err := setDeadlines(conn, opts); err != nil {
		return 0, err
	}

	if err := writeModernHandshake(conn, host, port); err != nil {
		return 0, err
	}

	payload := codec.WriteVarInt(nil, 0x01) // packet id
	sent := time.Now().UnixMilli()
	payload = codec.PutI64BE(payload, sent)
	frame := codec.WriteVarInt(nil, int32(len(payload)))
	frame = append(frame, payload...)

	start := time.Now()
	if _, err := conn.Write(frame); err != nil {
		return 0, wrapWriteErr(err)
	}

	length, err := codec.ReadVarInt(conn)
	if err != nil {
		return 0, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(conn, body); err != nil {
		return 0, mcerr.New(mcerr.UnexpectedEof, "socket closed before pong arrived")
	}

	return time.Since(start), nil
}
