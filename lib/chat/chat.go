// Package chat normalizes the heterogeneous MOTD/chat-component JSON the
// modern dialect's status response carries into a single recursive tree,
// without needing a concrete third-party chat-component library.
package chat

import (
	"encoding/json"

	"mcstatus/lib/mcerr"
)

const maxDepth = 32

// Component is a node of the normalized chat-component tree. A leaf has a
// Text value and an empty Extra slice; composite nodes additionally carry
// style flags and children in Extra.
type Component struct {
	Text          string
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
	Color         *string
	Extra         []Component

	// Unknown carries JSON object keys this decoder does not recognize,
	// so callers that need them are not forced to re-parse the document.
	Unknown map[string]interface{}
}

// IsLeaf reports whether c is a plain-text leaf: no styling and no
// children.
func (c Component) IsLeaf() bool {
	return len(c.Extra) == 0 && !c.Bold && !c.Italic && !c.Underlined &&
		!c.Strikethrough && !c.Obfuscated && c.Color == nil
}

// Decode parses raw JSON (already valid JSON, e.g. the modern dialect's
// status payload or its description field alone) into a Component tree.
func Decode(raw []byte) (*Component, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, mcerr.New(mcerr.ChatComponentInvalid, "chat component is not valid json: "+err.Error())
	}
	return FromValue(v)
}

// FromValue builds a Component tree from an already-decoded JSON value
// (string, map[string]interface{}, or []interface{}).
func FromValue(v interface{}) (*Component, error) {
	return fromValue(v, 0)
}

func fromValue(v interface{}, depth int) (*Component, error) {
	if depth > maxDepth {
		return nil, mcerr.New(mcerr.ChatComponentInvalid, "chat component recursion exceeds depth limit")
	}

	switch t := v.(type) {
	case string:
		return &Component{Text: t}, nil

	case []interface{}:
		extra, err := fromValueSlice(t, depth)
		if err != nil {
			return nil, err
		}
		return &Component{Text: "", Extra: extra}, nil

	case map[string]interface{}:
		return fromObject(t, depth)

	default:
		return nil, mcerr.New(mcerr.ChatComponentInvalid, "chat component must be a string, object, or array")
	}
}

func fromValueSlice(raw []interface{}, depth int) ([]Component, error) {
	out := make([]Component, 0, len(raw))
	for _, item := range raw {
		c, err := fromValue(item, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func fromObject(obj map[string]interface{}, depth int) (*Component, error) {
	c := &Component{}

	if text, ok := obj["text"]; ok {
		s, ok := text.(string)
		if !ok {
			return nil, mcerr.New(mcerr.ChatComponentInvalid, "text field must be a string")
		}
		c.Text = s
	}

	for field, dst := range map[string]*bool{
		"bold":          &c.Bold,
		"italic":        &c.Italic,
		"underlined":    &c.Underlined,
		"strikethrough": &c.Strikethrough,
		"obfuscated":    &c.Obfuscated,
	} {
		if raw, ok := obj[field]; ok {
			b, ok := raw.(bool)
			if !ok {
				return nil, mcerr.New(mcerr.ChatComponentInvalid, field+" field must be a bool")
			}
			*dst = b
		}
	}

	if raw, ok := obj["color"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, mcerr.New(mcerr.ChatComponentInvalid, "color field must be a string or null")
		}
		c.Color = &s
	}

	if raw, ok := obj["extra"]; ok {
		arr, ok := raw.([]interface{})
		if !ok {
			return nil, mcerr.New(mcerr.ChatComponentInvalid, "extra field must be an array")
		}
		extra, err := fromValueSlice(arr, depth)
		if err != nil {
			return nil, err
		}
		c.Extra = extra
	}

	known := map[string]bool{"text": true, "bold": true, "italic": true, "underlined": true,
		"strikethrough": true, "obfuscated": true, "color": true, "extra": true}
	for k, v := range obj {
		if known[k] {
			continue
		}
		if c.Unknown == nil {
			c.Unknown = map[string]interface{}{}
		}
		c.Unknown[k] = v
	}

	return c, nil
}

// FlattenText concatenates the text of c and every descendant, in the
// order a Minecraft client would render them: own text first, then each
// child of Extra depth-first.
func (c Component) FlattenText() string {
	var out []byte
	var walk func(n Component)
	walk = func(n Component) {
		out = append(out, n.Text...)
		for _, child := range n.Extra {
			walk(child)
		}
	}
	walk(c)
	return string(out)
}
