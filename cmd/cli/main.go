package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hailam/gencorpus/internal/adapters/console"
	"github.com/hailam/gencorpus/internal/adapters/factory"
	"github.com/hailam/gencorpus/internal/adapters/txt"
	adapterutils "github.com/hailam/gencorpus/internal/adapters/utils"
	"github.com/hailam/gencorpus/internal/application"
	"github.com/hailam/gencorpus/internal/cfg"
	"github.com/hailam/gencorpus/internal/logger"
	"github.com/hailam/gencorpus/internal/ports"
	"github.com/hailam/gencorpus/internal/utils"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitInternal  = 2
	exitCancelled = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stderr, "Unhandled error. Please report the following to the developers:")
			fmt.Fprintf(stderr, "%v\n%s", r, debug.Stack())
			code = exitInternal
		}
	}()

	corpusService := newCorpusService(stdin, stdout)

	code = exitOK
	v := viper.New()
	var configFile string
	rootCmd := &cobra.Command{
		Use:   "gencorpus",
		Short: "Generates a text corpus of a given size with tunable repetition.",
		Long: `gencorpus writes a file of numbered lines filled with random words,
for use as test and benchmark data. A share of the lines repeats an earlier
phrase, so the output compresses like real text rather than noise.

The file stays below the target size; it may fall short by up to one chunk.
Size defaults to 100MB and the repetition threshold to 10%.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cfg.Load(v, configFile)
			if err != nil {
				return err
			}
			if err := cfg.ValidateConfig(c); err != nil {
				cmd.Usage()
				return err
			}
			if err := logger.Init(c.LoggerConfig()); err != nil {
				return err
			}
			defer logger.Close()

			code = generate(cmd.Context(), corpusService, c, stdout, stderr)
			return nil
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "YAML config file; flags and GENCORPUS_* variables take precedence.")
	if err := cfg.BindFlags(v, rootCmd.Flags()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return code
}

// newCorpusService is the composition root: it wires the adapters into the
// application service.
func newCorpusService(stdin io.Reader, stdout io.Writer) *application.CorpusService {
	return application.NewCorpusService(
		txt.New(),
		factory.NewStaticWordSourceFactory(),
		adapterutils.NewUtilSizeParser(utils.MiB),
		console.NewPrompt(stdin, stdout),
	)
}

// generate runs one generation with interrupt handling and reporting.
func generate(parent context.Context, s *application.CorpusService, c *cfg.Config, stdout, stderr io.Writer) int {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	stopSignals := handleInterrupts(cancel, stderr)
	defer stopSignals()

	opts := application.Options{
		OutputPath:          c.Output,
		SizeSpec:            c.Size,
		RepetitionThreshold: c.RepetitionThreshold,
		Parallelism:         c.Parallelism,
		WordSource:          c.Words,
		Force:               c.Force,
	}
	plan := s.Resolve(opts)
	progress := console.NewProgress(stderr, plan.TargetSize)
	opts.Progress = progress.Update
	started := false
	opts.OnStart = func() {
		fmt.Fprintf(stdout, "Generating file %q with size %s and repetition threshold %d%%\n",
			c.Output, utils.FormatBytes(plan.TargetSize), plan.RepetitionThreshold)
		progress.Start()
		started = true
	}

	report, err := s.CreateCorpus(ctx, opts)
	if started {
		progress.Stop()
	}

	code := exitOK
	switch {
	case err == nil:
		printReport(stdout, c.Output, report)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(stdout, "Operation cancelled. %s written.\n", utils.FormatBytes(report.BytesWritten))
		code = exitCancelled
	case errors.Is(err, application.ErrAborted):
		fmt.Fprintln(stdout, "Operation aborted.")
		code = exitFailure
	default:
		printError(stderr, err)
		code = exitFailure
	}
	if started {
		fmt.Fprintf(stdout, "Operation RunTime %s, peak memory %s\n",
			console.FormatElapsed(progress.Elapsed()), utils.FormatBytes(int64(progress.PeakMemory())))
	}
	return code
}

// handleInterrupts cancels generation on the first SIGINT/SIGTERM and exits
// immediately on the second.
func handleInterrupts(cancel context.CancelFunc, stderr io.Writer) (stop func()) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	var graceful atomic.Bool
	graceful.Store(true)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigs:
				if !graceful.Swap(false) {
					os.Exit(exitFailure)
				}
				fmt.Fprintln(stderr, "Canceling... press Ctrl+C again to exit immediately.")
				cancel()
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func printReport(w io.Writer, path string, r ports.GenerationReport) {
	ratio := 0.0
	if r.Lines > 0 {
		ratio = 100 * float64(r.RepeatedLines) / float64(r.Lines)
	}
	fmt.Fprintf(w, "Successfully generated %s: %s in %d chunks, %d batches, %d producers, %.1f%% repeated lines\n",
		path, utils.FormatBytes(r.BytesWritten), r.ChunksAccepted, r.BatchesWritten, r.Producers, ratio)
	logger.Debugf("run %s: largest chunk %s, %d chunks rejected", r.RunID, utils.FormatBytes(r.LargestChunk), r.ChunksRejected)
}

func printError(w io.Writer, err error) {
	var de *utils.DetailedError
	if errors.As(err, &de) {
		fmt.Fprintf(w, "Error: %s\nDetails:\n", de.Message)
		if de.Err != nil {
			fmt.Fprintln(w, de.Err)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
