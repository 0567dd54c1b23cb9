package corpus

import (
	"context"
	"math/rand/v2"
	"strconv"

	"github.com/hailam/gencorpus/internal/ports"
)

// ProducerStats counts what a single producer generated.
type ProducerStats struct {
	ChunksAccepted int64
	ChunksRejected int64
	Lines          int64
	RepeatedLines  int64
	LargestChunk   int64
}

// Producer generates chunks of numbered lines with controllable phrase
// repetition. A Producer is not safe for concurrent use; the pipeline runs
// one goroutine per Producer.
type Producer struct {
	words     ports.WordSource
	threshold int
	lines     int
	rng       *rand.Rand

	// repeat is the phrase later lines may reuse; it lives for one chunk.
	repeat   string
	sizeHint int
	stopped  bool
	stats    ProducerStats
}

// NewProducer returns a producer that owns rng. words must hold at least two
// entries.
func NewProducer(words ports.WordSource, threshold, lines int, rng *rand.Rand) *Producer {
	return &Producer{
		words:     words,
		threshold: threshold,
		lines:     lines,
		rng:       rng,
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NextChunk builds one chunk of text. Lines look like "4711. word word\n".
func (p *Producer) NextChunk() []byte {
	buf := make([]byte, 0, p.sizeHint)
	p.repeat = ""
	for range p.lines {
		buf = strconv.AppendInt(buf, int64(1+p.rng.IntN(maxToken-1)), 10)
		buf = append(buf, tokenDelimiter...)

		if p.repeat != "" && p.rng.IntN(100) < p.threshold {
			buf = append(buf, p.repeat...)
			p.stats.RepeatedLines++
			if p.rng.IntN(2) == 1 {
				p.repeat = ""
			}
		} else {
			start := len(buf)
			buf = p.appendPhrase(buf, 1+p.rng.IntN(maxPhraseWords))
			if p.repeat == "" {
				p.repeat = string(buf[start:])
			}
		}
		buf = append(buf, lineTerminator)
	}
	p.stats.Lines += int64(p.lines)
	p.sizeHint = len(buf) + len(buf)/8
	if n := int64(len(buf)); n > p.stats.LargestChunk {
		p.stats.LargestChunk = n
	}
	return buf
}

// appendPhrase appends count space-separated words. The index is drawn from
// [0, Len()-1), so the final word of the source is never picked.
func (p *Producer) appendPhrase(buf []byte, count int) []byte {
	for i := range count {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, p.words.Word(p.rng.IntN(p.words.Len()-1))...)
	}
	return buf
}

// Run generates chunks until budget rejects one or ctx is done. Admitted
// chunks are always delivered to out, even after ctx is cancelled, so out
// must be drained until Run returns. Once a chunk has been rejected the
// producer is stopped for good and later calls return immediately.
func (p *Producer) Run(ctx context.Context, budget *Budget, out chan<- []byte) error {
	for !p.stopped {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := p.NextChunk()
		if !budget.TryReserve(int64(len(chunk))) {
			p.stopped = true
			p.stats.ChunksRejected++
			return nil
		}
		out <- chunk
		p.stats.ChunksAccepted++
	}
	return nil
}

// Stopped reports whether the budget has rejected one of p's chunks.
func (p *Producer) Stopped() bool {
	return p.stopped
}

// Stats must not be called while Run is in progress.
func (p *Producer) Stats() ProducerStats {
	return p.stats
}
