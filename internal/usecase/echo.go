package usecase

import (
	"fmt"
	"io"
	"strings"
)

// echoCommand prints the version-control command about to run.
func echoCommand(w io.Writer, args ...string) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "$ git %s\n", strings.Join(args, " "))
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
