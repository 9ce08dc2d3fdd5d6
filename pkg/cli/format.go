// Package cli provides shared formatting helpers for the confgen CLI.
package cli

import (
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
	dim    = color.New(color.Faint)
)

// Green wraps s in green. Color is suppressed automatically when output
// is not a terminal or NO_COLOR is set.
func Green(s string) string {
	return green.Sprint(s)
}

// Yellow wraps s in yellow.
func Yellow(s string) string {
	return yellow.Sprint(s)
}

// Red wraps s in red.
func Red(s string) string {
	return red.Sprint(s)
}

// Bold wraps s in bold.
func Bold(s string) string {
	return bold.Sprint(s)
}

// Dim wraps s in faint text.
func Dim(s string) string {
	return dim.Sprint(s)
}

// DotPad pads name with dots to the given width.
// Example: DotPad("verify", 30) → "verify ......................."
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}
