package ports

// SizeParser turns a size spec such as "20", "512K" or "4MB" into bytes.
// How a bare number is scaled is up to the implementation.
type SizeParser interface {
	Parse(spec string) (int64, error)
}
