package display

import (
	"fmt"
	"io"
)

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow + text + " > " + Reset
}

// Printf writes a line of text in color
func Printf(w io.Writer, color, format string, args ...any) {
	fmt.Fprintf(w, "%s%s%s\n", color, fmt.Sprintf(format, args...), Reset)
}
