package ports

// WordSourceFactory is the port for resolving a word source by name.
type WordSourceFactory interface {
	// For returns the built-in list for "" or "builtin", otherwise the name
	// is treated as a path to a word list file.
	For(name string) (WordSource, error)
}
