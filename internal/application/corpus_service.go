package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hailam/gencorpus/internal/corpus"
	"github.com/hailam/gencorpus/internal/logger"
	"github.com/hailam/gencorpus/internal/ports"
	"github.com/hailam/gencorpus/internal/utils"
)

const (
	DefaultTargetSize          = 100 * utils.MiB
	DefaultRepetitionThreshold = 10

	// Accepted sizes and thresholds lie strictly between 0 and these.
	maxTargetSize          = 100 * utils.MiB
	maxRepetitionThreshold = 100
)

var (
	// ErrAborted is returned when the user declines to overwrite the output.
	ErrAborted = errors.New("operation aborted")
	// ErrInvalidOutputPath is returned for output names the OS cannot create.
	ErrInvalidOutputPath = errors.New("invalid output file name")
)

// Options are the raw inputs of one generation request, as given by the user.
type Options struct {
	OutputPath string
	// SizeSpec is a megabyte count or a suffixed size. Empty, unparsable or
	// out-of-range specs fall back to DefaultTargetSize.
	SizeSpec string
	// RepetitionThreshold outside (0, 100) falls back to
	// DefaultRepetitionThreshold.
	RepetitionThreshold int
	Parallelism         int
	// WordSource names the vocabulary; see ports.WordSourceFactory.
	WordSource string
	// Force deletes an existing output file without asking.
	Force bool
	// OnStart is called right before generation begins, after any prompt.
	OnStart  func()
	Progress func(written int64)
}

// CorpusService orchestrates corpus generation: it resolves defaults,
// validates the output path, handles existing files and invokes the
// generator.
type CorpusService struct {
	generator ports.CorpusGenerator
	words     ports.WordSourceFactory
	parser    ports.SizeParser
	confirmer ports.OverwriteConfirmer
}

// NewCorpusService constructs a CorpusService from its ports.
func NewCorpusService(generator ports.CorpusGenerator, words ports.WordSourceFactory, parser ports.SizeParser, confirmer ports.OverwriteConfirmer) *CorpusService {
	return &CorpusService{generator: generator, words: words, parser: parser, confirmer: confirmer}
}

// Plan is a resolved request, ready to hand to the generator.
type Plan struct {
	TargetSize          int64
	RepetitionThreshold int
	// Warnings describe the inputs that were replaced by defaults.
	Warnings []string
}

// Resolve applies the size and threshold defaults to opts.
func (s *CorpusService) Resolve(opts Options) Plan {
	plan := Plan{TargetSize: DefaultTargetSize, RepetitionThreshold: DefaultRepetitionThreshold}
	if opts.SizeSpec != "" {
		size, err := s.parser.Parse(opts.SizeSpec)
		switch {
		case err != nil:
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("invalid size '%s' (%v), using %s", opts.SizeSpec, err, utils.FormatBytes(DefaultTargetSize)))
		case size <= 0 || size >= maxTargetSize:
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("size '%s' is outside (0, %s), using %s", opts.SizeSpec, utils.FormatBytes(maxTargetSize), utils.FormatBytes(DefaultTargetSize)))
		default:
			plan.TargetSize = size
		}
	}
	if t := opts.RepetitionThreshold; t > 0 && t < maxRepetitionThreshold {
		plan.RepetitionThreshold = t
	} else {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("repetition threshold %d is outside (0, %d), using %d", t, maxRepetitionThreshold, DefaultRepetitionThreshold))
	}
	return plan
}

// CreateCorpus generates the corpus described by opts.
func (s *CorpusService) CreateCorpus(ctx context.Context, opts Options) (ports.GenerationReport, error) {
	// 1. Validate the output name before touching anything.
	if err := validateOutputPath(opts.OutputPath); err != nil {
		return ports.GenerationReport{}, err
	}

	// 2. Resolve size and threshold defaults.
	plan := s.Resolve(opts)
	for _, w := range plan.Warnings {
		logger.Warnf("%s", w)
	}

	// 3. Look up the vocabulary. It must be usable before an existing
	// output file is deleted.
	words, err := s.words.For(opts.WordSource)
	if err != nil {
		return ports.GenerationReport{}, err
	}
	if words.Len() < corpus.MinWords {
		return ports.GenerationReport{}, fmt.Errorf("word source %q has %d word(s): %w", opts.WordSource, words.Len(), corpus.ErrTooFewWords)
	}

	// 4. Deal with an existing output file.
	if err := s.prepareOutput(opts.OutputPath, opts.Force); err != nil {
		return ports.GenerationReport{}, err
	}

	// 5. Invoke the generator.
	if opts.OnStart != nil {
		opts.OnStart()
	}
	report, err := s.generator.Generate(ctx, ports.GenerationRequest{
		OutputPath:          opts.OutputPath,
		TargetSize:          plan.TargetSize,
		RepetitionThreshold: plan.RepetitionThreshold,
		Parallelism:         opts.Parallelism,
		Words:               words,
		Progress:            opts.Progress,
	})
	if err != nil {
		return report, fmt.Errorf("failed to generate %s: %w", opts.OutputPath, err)
	}
	return report, nil
}

func (s *CorpusService) prepareOutput(path string, force bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return utils.DescribeFileError("inspecting", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidOutputPath, path)
	}
	if !force {
		ok, err := s.confirmer.Confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}
	logger.Infof("deleting existing output file %s", path)
	if err := os.Remove(path); err != nil {
		return utils.DescribeFileError("deleting", path, err)
	}
	return nil
}

// reservedNameChars cannot appear in file names on Windows.
const reservedNameChars = `<>:"|?*`

func validateOutputPath(path string) error {
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidOutputPath, path)
	}
	base := filepath.Base(path)
	if path == "" || base == "." || base == ".." || base == string(filepath.Separator) || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("%w: %q does not name a file", ErrInvalidOutputPath, path)
	}
	if runtime.GOOS == "windows" && strings.ContainsAny(base, reservedNameChars) {
		return fmt.Errorf("%w: %q contains one of %s", ErrInvalidOutputPath, base, reservedNameChars)
	}
	return nil
}
