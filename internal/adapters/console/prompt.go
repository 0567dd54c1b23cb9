package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hailam/gencorpus/internal/ports"
)

// Prompt asks the user on out and reads the answer from in.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) ports.OverwriteConfirmer {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm returns true only for an answer of "y" or "yes". End of input
// counts as "no".
func (p *Prompt) Confirm(path string) (bool, error) {
	fmt.Fprintf(p.out, "The output file %s already exists. Do you want to overwrite it? (y/n) ", path)
	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	fmt.Fprintln(p.out)
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
