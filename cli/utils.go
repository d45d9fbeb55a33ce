package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var warningPrefix = color.New(color.FgYellow, color.Bold).Sprint("Warning: ")

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a warning marker.
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, warningPrefix+format+"\n", a...)
}
