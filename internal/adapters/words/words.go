package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hailam/gencorpus/internal/ports"
)

//go:embed words.txt
var builtinText string

var (
	builtinOnce sync.Once
	builtin     *List
)

// List is an in-memory word source.
type List struct {
	words []string
}

// New returns a list over a copy of words.
func New(words []string) *List {
	return &List{words: append([]string(nil), words...)}
}

func (l *List) Len() int {
	return len(l.words)
}

func (l *List) Word(i int) string {
	return l.words[i]
}

// Builtin returns the vocabulary compiled into the binary.
func Builtin() ports.WordSource {
	builtinOnce.Do(func() {
		l, err := Parse(strings.NewReader(builtinText))
		if err != nil {
			panic(fmt.Sprintf("embedded word list: %v", err))
		}
		builtin = l
	})
	return builtin
}

// Parse reads one word per line. Surrounding whitespace is trimmed, and
// blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (*List, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return &List{words: words}, nil
}

// Load reads a word list file.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
