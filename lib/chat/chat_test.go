package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mcstatus/lib/mcerr"
)

func TestDecode_PlainStringIsLeaf(t *testing.T) {
	samples := []string{"Hello", "", "A Minecraft Server"}
	for _, s := range samples {
		c, err := Decode([]byte(`"` + s + `"`))
		require.NoError(t, err)
		require.True(t, c.IsLeaf())
		require.Equal(t, s, c.Text)
		require.Empty(t, c.Extra)
	}
}

func TestDecode_ObjectWithExtra(t *testing.T) {
	raw := []byte(`{"text":"A ","extra":[{"text":"Minecraft","bold":true,"color":"gold"},{"text":" Server"}]}`)
	c, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "A ", c.Text)
	require.False(t, c.IsLeaf())
	require.Len(t, c.Extra, 2)
	require.True(t, c.Extra[0].Bold)
	require.Equal(t, "gold", *c.Extra[0].Color)
	require.Equal(t, "A Minecraft Server", c.FlattenText())
}

func TestDecode_ArrayAtTopLevel(t *testing.T) {
	raw := []byte(`[{"text":"one"},{"text":"two"}]`)
	c, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "", c.Text)
	require.Len(t, c.Extra, 2)
	require.Equal(t, "onetwo", c.FlattenText())
}

func TestDecode_UnknownFieldsPreserved(t *testing.T) {
	raw := []byte(`{"text":"hi","translate":"chat.type.text"}`)
	c, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "chat.type.text", c.Unknown["translate"])
}

func TestDecode_InvalidShape(t *testing.T) {
	_, err := Decode([]byte(`42`))
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.ChatComponentInvalid, kind)
}

func TestDecode_RecursionDepthCapped(t *testing.T) {
	// build a chain of 40 nested "extra" objects, past the depth cap of 32
	raw := `"bottom"`
	for i := 0; i < 40; i++ {
		raw = `{"text":"","extra":[` + raw + `]}`
	}
	_, err := Decode([]byte(raw))
	require.Error(t, err)
	kind, ok := mcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, mcerr.ChatComponentInvalid, kind)
}
