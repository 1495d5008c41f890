package ping

import "mcstatus/lib/chat"

// Version describes the modern status response's protocol fields.
type Version struct {
	Name     string
	Protocol int32
}

// PlayerEntry is one member of Players.Sample.
type PlayerEntry struct {
	Name string
	ID   string // canonical hyphenated UUID if the server's id parses, else as sent
}

// Players describes the modern status response's player counts and
// sample.
type Players struct {
	Max    int32
	Online int32
	Sample []PlayerEntry
}

// ForgeMod is one entry of a Forge server's mod manifest.
type ForgeMod struct {
	ModID     string
	ModMarker string
}

// ForgeChannel is one registered Forge network channel.
type ForgeChannel struct {
	Res      string
	Version  string
	Required bool
}

// ForgeData is attached to Server when a modded server advertises its
// Forge mod list alongside the vanilla status fields.
type ForgeData struct {
	Mods     []ForgeMod
	Channels []ForgeChannel
}

// Server is the modern (1.7+) Server List Ping result.
type Server struct {
	Version            Version
	Players            Players
	Description        chat.Component
	Favicon            string // data-URI PNG, empty if absent
	EnforcesSecureChat bool
	PreviewsChat       bool
	ForgeData          *ForgeData
}

// LegacyServer is the result of the Netty (1.6) and Legacy (1.4-1.5)
// dialects, which share a response schema.
type LegacyServer struct {
	Protocol int32
	Version  string
	MOTD     string
	Online   int32
	Max      int32
}

// BetaLegacyServer is the result of the Beta Legacy (B1.8-1.3) dialect,
// which carries no protocol or version fields.
type BetaLegacyServer struct {
	MOTD   string
	Online int32
	Max    int32
}
