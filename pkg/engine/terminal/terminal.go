package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// MinWidth keeps summary tables readable on very narrow terminals
	MinWidth = 40
)

// fdWriter is implemented by *os.File
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w writes to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Size returns the width and height of the terminal behind w.
// Falls back to defaults if w is not a terminal or the size cannot be
// determined.
func Size(w io.Writer) (width, height int) {
	f, ok := w.(fdWriter)
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Width returns the usable width for output to w, never below MinWidth
func Width(w io.Writer) int {
	width, _ := Size(w)
	return max(width, MinWidth)
}

// GetSize returns the size of the terminal on stdout
func GetSize() (width, height int) {
	return Size(os.Stdout)
}
