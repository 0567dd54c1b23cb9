package corpus

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRe = regexp.MustCompile(`^[1-9][0-9]{0,4}\. [a-z]+( [a-z]+){0,3}$`)

func splitLines(t *testing.T, chunk []byte) []string {
	t.Helper()
	require.True(t, utf8.Valid(chunk), "chunk must be valid UTF-8")
	text := string(chunk)
	require.True(t, strings.HasSuffix(text, "\n"), "chunk must end with a line terminator")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func TestProducer_NextChunkFormat(t *testing.T) {
	words := sliceWords{"alpha", "beta", "gamma", "delta", "epsilon"}
	p := NewProducer(words, 10, 250, seeded(1))

	for range 4 {
		lines := splitLines(t, p.NextChunk())
		require.Len(t, lines, 250)
		for _, line := range lines {
			assert.Regexp(t, lineRe, line)
		}
	}
	assert.Equal(t, int64(1000), p.Stats().Lines)
}

func TestProducer_LastWordNeverChosen(t *testing.T) {
	p := NewProducer(sliceWords{"a", "b", "zzz"}, 50, 1000, seeded(2))

	for range 5 {
		assert.NotContains(t, string(p.NextChunk()), "zzz")
	}
}

func TestProducer_RepetitionThreshold(t *testing.T) {
	words := make(sliceWords, 0, 500)
	for i := range 500 {
		words = append(words, strings.Repeat(string(rune('a'+i%26)), 1+i/26))
	}

	tests := []struct {
		name      string
		threshold int
		minRatio  float64
		maxRatio  float64
	}{
		{"Disabled", 0, 0, 0},
		{"Low", 10, 0.01, 0.2},
		// With every held phrase repeated and a 1/2 chance to drop it after
		// each reuse, about two thirds of the lines are repeats.
		{"Always", 100, 0.6, 0.75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProducer(words, tc.threshold, 1000, seeded(3))
			for range 10 {
				p.NextChunk()
			}
			st := p.Stats()
			ratio := float64(st.RepeatedLines) / float64(st.Lines)
			assert.GreaterOrEqual(t, ratio, tc.minRatio)
			assert.LessOrEqual(t, ratio, tc.maxRatio)
		})
	}
}

func TestProducer_RepeatsPreviousPhraseVerbatim(t *testing.T) {
	words := sliceWords{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "end"}
	p := NewProducer(words, 100, 20, seeded(4))

	lines := splitLines(t, p.NextChunk())
	phrase := func(line string) string { return line[strings.Index(line, ". ")+2:] }
	// The first line always introduces a fresh phrase that the second line
	// must reuse.
	assert.Equal(t, phrase(lines[0]), phrase(lines[1]))
	assert.Positive(t, p.Stats().RepeatedLines)
}

func TestProducer_RunStopsOnRejection(t *testing.T) {
	p := NewProducer(sliceWords{"a", "b"}, 10, 10, seeded(5))
	out := make(chan []byte, 1)

	err := p.Run(context.Background(), NewBudget(1), out)
	require.NoError(t, err)
	assert.True(t, p.Stopped())
	assert.Empty(t, out)

	// A stopped producer never comes back, even with a fresh budget.
	err = p.Run(context.Background(), NewBudget(1<<30), out)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, int64(1), p.Stats().ChunksRejected)
	assert.Equal(t, int64(0), p.Stats().ChunksAccepted)
}

func TestProducer_RunHonoursCancellation(t *testing.T) {
	p := NewProducer(sliceWords{"a", "b"}, 10, 10, seeded(6))
	out := make(chan []byte, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, NewBudget(1<<30), out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, p.Stopped())
	assert.Empty(t, out)
}

func TestProducer_RunDeliversExactlyWhatWasReserved(t *testing.T) {
	p := NewProducer(sliceWords{"a", "b", "c"}, 10, 100, seeded(7))
	budget := NewBudget(200 * 1024)
	out := make(chan []byte)
	var received int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for c := range out {
			received += int64(len(c))
		}
	}()

	require.NoError(t, p.Run(context.Background(), budget, out))
	close(out)
	<-done

	assert.Equal(t, budget.Reserved(), received)
	assert.Less(t, received, budget.Target())
	assert.Positive(t, p.Stats().ChunksAccepted)
}
