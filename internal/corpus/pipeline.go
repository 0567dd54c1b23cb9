package corpus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/gencorpus/internal/logger"
	"github.com/hailam/gencorpus/internal/ports"
	"github.com/hailam/gencorpus/internal/utils"
)

// Stats summarizes one pipeline run.
type Stats struct {
	RunID          string
	Producers      int
	BytesAccepted  int64
	BytesWritten   int64
	BatchesWritten int64
	ProducerStats
}

// Pipeline wires producers, the aggregator and the writer together:
//
//	producers --chunks--> Aggregate --batches--> Writer --> file
//
// Every producer reserves its chunk against a shared Budget before sending
// it, so the file never reaches Config.TargetSize.
type Pipeline struct {
	cfg   Config
	words ports.WordSource
}

// New validates cfg and words and returns a pipeline ready to Run.
func New(cfg Config, words ports.WordSource) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if words == nil || words.Len() < MinWords {
		return nil, ErrTooFewWords
	}
	cfg = cfg.withDefaults()
	return &Pipeline{cfg: cfg, words: words}, nil
}

// Run generates the corpus and returns once the output file is fully
// written and closed. If ctx is cancelled, producers stop, every chunk
// already admitted is still written, and ctx.Err() is returned. Write
// failures take precedence over cancellation. Each call starts with a fresh
// budget and appends to the output file.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: uuid.NewString(), Producers: p.cfg.Parallelism}
	budget := NewBudget(p.cfg.TargetSize)
	log := logger.With("run", stats.RunID)

	w, err := OpenWriter(p.cfg.OutputPath, p.cfg.Progress)
	if err != nil {
		return stats, err
	}
	log.Info("generation started",
		"output", p.cfg.OutputPath,
		"target", utils.FormatBytes(p.cfg.TargetSize),
		"threshold", p.cfg.RepetitionThreshold,
		"producers", p.cfg.Parallelism)

	runCtx, abort := context.WithCancel(ctx)
	defer abort()

	chunks := make(chan []byte, p.cfg.QueueDepth)
	batches := make(chan Batch, 1)
	writeDone := make(chan error, 1)
	go Aggregate(chunks, batches, p.cfg.BatchCapacity)
	go func() {
		runErr := w.Run(batches, abort)
		closeErr := w.Close()
		if runErr == nil {
			runErr = closeErr
		}
		writeDone <- runErr
	}()

	producers := make([]*Producer, p.cfg.Parallelism)
	var g errgroup.Group
	for i := range producers {
		prod := NewProducer(p.words, p.cfg.RepetitionThreshold, p.cfg.LinesPerChunk, newRand())
		producers[i] = prod
		g.Go(func() error {
			return prod.Run(runCtx, budget, chunks)
		})
	}
	cancelErr := g.Wait()
	close(chunks)
	writeErr := <-writeDone

	for _, prod := range producers {
		ps := prod.Stats()
		stats.ChunksAccepted += ps.ChunksAccepted
		stats.ChunksRejected += ps.ChunksRejected
		stats.Lines += ps.Lines
		stats.RepeatedLines += ps.RepeatedLines
		stats.LargestChunk = max(stats.LargestChunk, ps.LargestChunk)
	}
	stats.BytesAccepted = budget.Reserved()
	stats.BytesWritten = w.Written()
	stats.BatchesWritten = w.Batches()

	if writeErr != nil {
		return stats, writeErr
	}
	if cancelErr != nil {
		log.Warn("generation cancelled", "written", utils.FormatBytes(stats.BytesWritten))
		return stats, fmt.Errorf("generation of %s stopped: %w", p.cfg.OutputPath, ctx.Err())
	}
	log.Info("generation finished",
		"written", utils.FormatBytes(stats.BytesWritten),
		"chunks", stats.ChunksAccepted,
		"batches", stats.BatchesWritten)
	return stats, nil
}
