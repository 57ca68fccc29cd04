package trust

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks the user whether an unapproved configuration file should be
// executed. It fails closed: anything other than an explicit yes (including
// a closed stdin, as in non-interactive runs) means no.
func Confirm(in io.Reader, out io.Writer, filePath string, state State) bool {
	switch state {
	case StateChanged:
		fmt.Fprintf(out, "Warning: %s has changed since you last trusted it.\n", filePath)
	default:
		fmt.Fprintf(out, "Warning: cannot verify the authenticity of %s.\n", filePath)
	}
	fmt.Fprintln(out, "Its contents will be executed as code.")
	fmt.Fprintf(out, "Trust this file? [y/N] ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
