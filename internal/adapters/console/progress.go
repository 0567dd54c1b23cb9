package console

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"

	"github.com/hailam/gencorpus/internal/utils"
)

const sampleInterval = 100 * time.Millisecond

// Progress shows a spinner with the bytes written so far and tracks the
// peak heap usage of the process while it runs.
type Progress struct {
	target  int64
	spin    *spinner.Spinner
	written atomic.Int64
	peak    atomic.Uint64
	start   time.Time
	elapsed time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewProgress(out io.Writer, target int64) *Progress {
	return &Progress{
		target: target,
		spin:   spinner.New(spinner.CharSets[14], sampleInterval, spinner.WithWriter(out)),
		stop:   make(chan struct{}),
	}
}

// Start begins sampling and spinning.
func (p *Progress) Start() {
	p.start = time.Now()
	p.sample()
	p.spin.Start()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		t := time.NewTicker(sampleInterval)
		defer t.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-t.C:
				p.sample()
			}
		}
	}()
}

// Update records the bytes written so far. Safe to call from any goroutine.
func (p *Progress) Update(written int64) {
	p.written.Store(written)
}

// Stop halts the spinner and sampling; it must be called once after Start.
func (p *Progress) Stop() {
	close(p.stop)
	p.wg.Wait()
	p.sample()
	p.spin.Stop()
	p.elapsed = time.Since(p.start)
}

func (p *Progress) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	for {
		cur := p.peak.Load()
		if ms.Sys <= cur || p.peak.CompareAndSwap(cur, ms.Sys) {
			break
		}
	}
	suffix := fmt.Sprintf(" %s / %s", utils.FormatBytes(p.written.Load()), utils.FormatBytes(p.target))
	p.spin.Lock()
	p.spin.Suffix = suffix
	p.spin.Unlock()
}

// PeakMemory is the largest amount of memory obtained from the OS seen so far.
func (p *Progress) PeakMemory() uint64 {
	return p.peak.Load()
}

// Elapsed is the time between Start and Stop.
func (p *Progress) Elapsed() time.Duration {
	return p.elapsed
}

// FormatElapsed renders d as hh:mm:ss:cc.
func FormatElapsed(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%02d:%02d:%02d:%02d", cs/360000, cs/6000%60, cs/100%60, cs%100)
}
