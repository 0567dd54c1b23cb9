package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectBatches(chunks [][]byte, capacity int) []Batch {
	in := make(chan []byte, len(chunks))
	out := make(chan Batch, len(chunks)+1)
	for _, c := range chunks {
		in <- c
	}
	close(in)
	Aggregate(in, out, capacity)

	var got []Batch
	for b := range out {
		got = append(got, b)
	}
	return got
}

func TestAggregate(t *testing.T) {
	chunk := func(s string) []byte { return []byte(s) }

	testCases := []struct {
		name     string
		chunks   [][]byte
		capacity int
		want     []Batch
	}{
		{
			name:     "Empty",
			capacity: 3,
			want:     nil,
		},
		{
			name:     "PartialFinalBatch",
			chunks:   [][]byte{chunk("1"), chunk("2"), chunk("3"), chunk("4"), chunk("5")},
			capacity: 2,
			want:     []Batch{{chunk("1"), chunk("2")}, {chunk("3"), chunk("4")}, {chunk("5")}},
		},
		{
			name:     "ExactMultiple",
			chunks:   [][]byte{chunk("1"), chunk("2"), chunk("3"), chunk("4")},
			capacity: 2,
			want:     []Batch{{chunk("1"), chunk("2")}, {chunk("3"), chunk("4")}},
		},
		{
			name:     "SingleUnderCapacity",
			chunks:   [][]byte{chunk("only")},
			capacity: DefaultBatchCapacity,
			want:     []Batch{{chunk("only")}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := collectBatches(tc.chunks, tc.capacity)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBatch_Size(t *testing.T) {
	b := Batch{[]byte("abc"), nil, []byte("de")}

	assert.Equal(t, int64(5), b.Size())
	assert.Equal(t, int64(0), Batch{}.Size())
}
