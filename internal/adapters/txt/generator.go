package txt

import (
	"context"

	"github.com/hailam/gencorpus/internal/corpus"
	"github.com/hailam/gencorpus/internal/ports"
)

// TxtGenerator produces plain-text corpora through the concurrent pipeline.
type TxtGenerator struct{}

func New() ports.CorpusGenerator {
	return &TxtGenerator{}
}

func (g *TxtGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (ports.GenerationReport, error) {
	p, err := corpus.New(corpus.Config{
		OutputPath:          req.OutputPath,
		TargetSize:          req.TargetSize,
		RepetitionThreshold: req.RepetitionThreshold,
		Parallelism:         req.Parallelism,
		Progress:            req.Progress,
	}, req.Words)
	if err != nil {
		return ports.GenerationReport{}, err
	}
	stats, err := p.Run(ctx)
	return ports.GenerationReport{
		RunID:          stats.RunID,
		Producers:      stats.Producers,
		BytesWritten:   stats.BytesWritten,
		ChunksAccepted: stats.ChunksAccepted,
		ChunksRejected: stats.ChunksRejected,
		BatchesWritten: stats.BatchesWritten,
		Lines:          stats.Lines,
		RepeatedLines:  stats.RepeatedLines,
		LargestChunk:   stats.LargestChunk,
	}, err
}
