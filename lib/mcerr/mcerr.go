// Package mcerr defines the single tagged error-kind taxonomy every
// dialect and component in mcstatus reports through. Callers inspect a
// failure's kind with errors.Is against the package-level sentinels, the
// same pattern vendored minequery uses for its own ErrInvalidStatus.
package mcerr

import "errors"

// Kind tags why a call into mcstatus failed.
type Kind string

const (
	NetworkIO            Kind = "network_io"
	NetworkTimeout       Kind = "network_timeout"
	UnexpectedEof        Kind = "unexpected_eof"
	ProtocolMismatch     Kind = "protocol_mismatch"
	VarIntTooLarge       Kind = "varint_too_large"
	InvalidUtf8          Kind = "invalid_utf8"
	ChatComponentInvalid Kind = "chat_component_invalid"
	InvalidNumber        Kind = "invalid_number"
	InvalidAddress       Kind = "invalid_address"
)

var (
	ErrNetworkIO            = errors.New(string(NetworkIO))
	ErrNetworkTimeout       = errors.New(string(NetworkTimeout))
	ErrUnexpectedEof        = errors.New(string(UnexpectedEof))
	ErrProtocolMismatch     = errors.New(string(ProtocolMismatch))
	ErrVarIntTooLarge       = errors.New(string(VarIntTooLarge))
	ErrInvalidUtf8          = errors.New(string(InvalidUtf8))
	ErrChatComponentInvalid = errors.New(string(ChatComponentInvalid))
	ErrInvalidNumber        = errors.New(string(InvalidNumber))
	ErrInvalidAddress       = errors.New(string(InvalidAddress))
)

var sentinels = map[Kind]error{
	NetworkIO:            ErrNetworkIO,
	NetworkTimeout:       ErrNetworkTimeout,
	UnexpectedEof:        ErrUnexpectedEof,
	ProtocolMismatch:     ErrProtocolMismatch,
	VarIntTooLarge:       ErrVarIntTooLarge,
	InvalidUtf8:          ErrInvalidUtf8,
	ChatComponentInvalid: ErrChatComponentInvalid,
	InvalidNumber:        ErrInvalidNumber,
	InvalidAddress:       ErrInvalidAddress,
}

// New wraps msg under the sentinel for kind, so callers can match it with
// errors.Is(err, mcerr.ErrProtocolMismatch) while still getting a readable
// message.
func New(kind Kind, msg string) error {
	sentinel, ok := sentinels[kind]
	if !ok {
		sentinel = errors.New(string(kind))
	}
	return &wrapped{kind: kind, msg: msg, sentinel: sentinel}
}

// Wrap attaches kind to an underlying error (typically one returned by the
// net package), preserving it for errors.Unwrap / errors.As.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	sentinel, ok := sentinels[kind]
	if !ok {
		sentinel = errors.New(string(kind))
	}
	return &wrapped{kind: kind, msg: err.Error(), sentinel: sentinel, cause: err}
}

type wrapped struct {
	kind     Kind
	msg      string
	sentinel error
	cause    error
}

func (w *wrapped) Error() string {
	if w.msg == "" {
		return string(w.kind)
	}
	return string(w.kind) + ": " + w.msg
}

// Is lets errors.Is(err, mcerr.ErrProtocolMismatch) succeed for any error
// built with the matching kind, regardless of its message.
func (w *wrapped) Is(target error) bool {
	return target == w.sentinel
}

func (w *wrapped) Unwrap() error {
	return w.cause
}

// KindOf reports the Kind an mcstatus error was tagged with, if any.
func KindOf(err error) (Kind, bool) {
	var w *wrapped
	for err != nil {
		if ww, ok := err.(*wrapped); ok {
			w = ww
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if w == nil {
		return "", false
	}
	return w.kind, true
}
