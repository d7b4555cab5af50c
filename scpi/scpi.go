// Package scpi holds the wire-level vocabulary shared by all SCPI-like
// instrument drivers: terminator defaults, the error sentinel, and the
// response classification rules.
package scpi

import "strings"

const (
	// DefaultTerminator frames outgoing commands and incoming replies
	// unless an instrument is configured otherwise.
	DefaultTerminator = "\n"

	// UnknownCommand is the sentinel reply an instrument produces for a
	// command it does not recognize. It is the only error-signaling
	// mechanism on the wire; there are no structured error codes.
	UnknownCommand = "Unknown command"
)

type ResponseType int

const (
	TypeData  ResponseType = iota // payload carrying instrument data
	TypeError                     // unknown-command sentinel
)

// Classify identifies the nature of one framed instrument reply.
// The sentinel must match the trimmed payload exactly; replies that merely
// contain it are data.
func Classify(line string) ResponseType {
	if strings.TrimSpace(line) == UnknownCommand {
		return TypeError
	}
	return TypeData
}

// Query turns a command prefix into its query form, e.g. "DWEL" -> "DWEL?".
func Query(prefix string) string {
	if strings.HasSuffix(prefix, "?") {
		return prefix
	}
	return prefix + "?"
}
