package ports

import "context"

// GenerationRequest describes one corpus to synthesize.
type GenerationRequest struct {
	OutputPath          string
	TargetSize          int64
	RepetitionThreshold int
	// Parallelism is the number of producers; zero means one per available CPU.
	Parallelism int
	Words       WordSource
	// Progress, when set, is called by the writer after every batch with the
	// total number of bytes written so far.
	Progress func(written int64)
}

// GenerationReport summarizes a finished (or cancelled) run.
type GenerationReport struct {
	RunID          string
	Producers      int
	BytesWritten   int64
	ChunksAccepted int64
	ChunksRejected int64
	BatchesWritten int64
	Lines          int64
	RepeatedLines  int64
	LargestChunk   int64
}

// CorpusGenerator is the port for anything that can produce a text corpus.
type CorpusGenerator interface {
	// Generate writes a corpus to req.OutputPath that stays below
	// req.TargetSize bytes. A cancelled ctx stops generation gracefully and
	// is reported through the returned error.
	Generate(ctx context.Context, req GenerationRequest) (GenerationReport, error)
}
