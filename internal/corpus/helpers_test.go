package corpus

import "math/rand/v2"

type sliceWords []string

func (w sliceWords) Len() int          { return len(w) }
func (w sliceWords) Word(i int) string { return w[i] }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
