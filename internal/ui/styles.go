package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent   = 74  // blue
	colorMuted    = 245 // medium gray
	colorManual   = 179 // amber
	colorSystemic = 114 // green
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderStatus colors a process status: amber for MANUAL, green for SYSTEMIC.
// Unknown or empty statuses are rendered muted.
func RenderStatus(status string) string {
	if noColor {
		return status
	}
	switch status {
	case "MANUAL":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorManual, status)
	case "SYSTEMIC":
		return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorSystemic, status)
	default:
		return RenderMuted(status)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
