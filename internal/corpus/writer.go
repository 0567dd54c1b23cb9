package corpus

import (
	"os"
	"sync/atomic"

	"github.com/hailam/gencorpus/internal/logger"
	"github.com/hailam/gencorpus/internal/utils"
)

// Writer appends batches to the output file. It owns the file handle from
// OpenWriter until Close.
type Writer struct {
	path     string
	file     *os.File
	written  atomic.Int64
	batches  atomic.Int64
	progress func(written int64)
}

// OpenWriter opens path for appending, creating it if needed.
func OpenWriter(path string, progress func(written int64)) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, utils.DescribeFileError("opening", path, err)
	}
	return &Writer{path: path, file: f, progress: progress}, nil
}

// WriteBatch concatenates the chunks of b in order and appends them with a
// single write.
func (w *Writer) WriteBatch(b Batch) error {
	buf := make([]byte, 0, b.Size())
	for _, c := range b {
		buf = append(buf, c...)
	}
	if _, err := w.file.Write(buf); err != nil {
		return utils.DescribeFileError("writing", w.path, err)
	}
	total := w.written.Add(int64(len(buf)))
	n := w.batches.Add(1)
	logger.Debugf("batch %d: wrote %d chunks (%s), total %s", n, len(b), utils.FormatBytes(int64(len(buf))), utils.FormatBytes(total))
	if w.progress != nil {
		w.progress(total)
	}
	return nil
}

// Run writes every batch from in until it is closed. After the first failed
// write it calls abort once and keeps draining in without writing, so
// upstream stages never block on a dead writer. The first error is returned.
func (w *Writer) Run(in <-chan Batch, abort func()) error {
	var firstErr error
	for b := range in {
		if firstErr != nil {
			continue
		}
		if err := w.WriteBatch(b); err != nil {
			logger.Errorf("write failed, aborting producers: %v", err)
			firstErr = err
			abort()
		}
	}
	return firstErr
}

// Close flushes the file to stable storage and releases it.
func (w *Writer) Close() error {
	syncErr := w.file.Sync()
	closeErr := w.file.Close()
	if syncErr != nil {
		return utils.DescribeFileError("syncing", w.path, syncErr)
	}
	return utils.DescribeFileError("closing", w.path, closeErr)
}

// Written returns the bytes appended so far.
func (w *Writer) Written() int64 {
	return w.written.Load()
}

func (w *Writer) Batches() int64 {
	return w.batches.Load()
}
