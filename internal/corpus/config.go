package corpus

import (
	"errors"
	"fmt"
	"runtime"
)

const (
	DefaultLinesPerChunk = 1000
	DefaultBatchCapacity = 2000

	// MinWords is the smallest usable word source; indexes are drawn from
	// [0, Len()-1).
	MinWords = 2

	// Tokens are drawn from [1, maxToken).
	maxToken       = 100000
	maxPhraseWords = 4
	tokenDelimiter = ". "
	lineTerminator = '\n'
)

var (
	ErrInvalidConfig = errors.New("invalid generation config")
	ErrTooFewWords   = errors.New("word source needs at least two words")
)

// Config is fixed for the lifetime of a Pipeline.
type Config struct {
	OutputPath string
	// TargetSize is an exclusive upper bound on the bytes written.
	TargetSize int64
	// RepetitionThreshold is the percentage of lines that reuse the held
	// phrase. 0 disables repetition, 100 always repeats a held phrase.
	RepetitionThreshold int

	// Parallelism is the number of producers. Zero means GOMAXPROCS.
	Parallelism   int
	LinesPerChunk int
	BatchCapacity int
	// QueueDepth bounds the chunks in flight between producers and the
	// aggregator. Zero means twice the parallelism.
	QueueDepth int

	// Progress is called from the writer goroutine after each batch.
	Progress func(written int64)
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.OutputPath == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	case c.TargetSize <= 0:
		return fmt.Errorf("%w: target size must be positive, got %d", ErrInvalidConfig, c.TargetSize)
	case c.RepetitionThreshold < 0 || c.RepetitionThreshold > 100:
		return fmt.Errorf("%w: repetition threshold must be within [0, 100], got %d", ErrInvalidConfig, c.RepetitionThreshold)
	case c.Parallelism < 0:
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidConfig, c.Parallelism)
	case c.LinesPerChunk < 0, c.BatchCapacity < 0, c.QueueDepth < 0:
		return fmt.Errorf("%w: chunk, batch and queue sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Parallelism == 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.LinesPerChunk == 0 {
		c.LinesPerChunk = DefaultLinesPerChunk
	}
	if c.BatchCapacity == 0 {
		c.BatchCapacity = DefaultBatchCapacity
	}
	if c.QueueDepth == 0 {
		c.QueueDepth = 2 * c.Parallelism
	}
	return c
}
