package ports

// WordSource is an ordered, read-only vocabulary.
type WordSource interface {
	Len() int
	Word(i int) string
}
