// Package utility holds small presentation helpers shared by cmd/mcstatus.
package utility

import "strings"

// Boxify draws an ascii box around a list of text lines, used by the CLI
// to frame a decoded status response.
func Boxify(lines []string) string {
	max := 0
	for _, l := range lines {
		if len(l) > max {
			max = len(l)
		}
	}

	var b strings.Builder
	b.WriteString("+-" + strings.Repeat("-", max) + "-+\n")
	for _, l := range lines {
		b.WriteString("| " + l + strings.Repeat(" ", max-len(l)) + " |\n")
	}
	b.WriteString("+-" + strings.Repeat("-", max) + "-+")

	return b.String()
}
