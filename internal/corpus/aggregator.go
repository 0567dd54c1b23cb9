package corpus

// Batch is an ordered group of chunks written with a single call.
type Batch [][]byte

// Size returns the total number of bytes in b.
func (b Batch) Size() int64 {
	var n int64
	for _, c := range b {
		n += int64(len(c))
	}
	return n
}

// Aggregate groups chunks from in into batches of capacity chunks, in
// arrival order. When in is closed, any partial batch is flushed and out is
// closed.
func Aggregate(in <-chan []byte, out chan<- Batch, capacity int) {
	defer close(out)
	batch := make(Batch, 0, capacity)
	for chunk := range in {
		batch = append(batch, chunk)
		if len(batch) >= capacity {
			out <- batch
			batch = make(Batch, 0, capacity)
		}
	}
	if len(batch) > 0 {
		out <- batch
	}
}
