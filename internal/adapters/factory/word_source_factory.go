package factory

import (
	"fmt"

	"github.com/hailam/gencorpus/internal/adapters/words"
	"github.com/hailam/gencorpus/internal/ports"
)

// BuiltinName selects the vocabulary compiled into the binary.
const BuiltinName = "builtin"

// StaticWordSourceFactory resolves word sources by name: the built-in list
// or a word list file on disk.
type StaticWordSourceFactory struct {
	sources map[string]ports.WordSource
}

// NewStaticWordSourceFactory creates a factory with the built-in list
// pre-registered.
func NewStaticWordSourceFactory() ports.WordSourceFactory {
	return &StaticWordSourceFactory{
		sources: map[string]ports.WordSource{
			"":          words.Builtin(),
			BuiltinName: words.Builtin(),
		},
	}
}

// For returns the word source registered under name, loading it from the
// file system if it is not known yet.
func (f *StaticWordSourceFactory) For(name string) (ports.WordSource, error) {
	if src, ok := f.sources[name]; ok {
		return src, nil
	}
	l, err := words.Load(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported word source %q: %w", name, err)
	}
	return l, nil
}
