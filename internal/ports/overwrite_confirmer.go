package ports

// OverwriteConfirmer asks whether an existing output file may be replaced.
type OverwriteConfirmer interface {
	Confirm(path string) (bool, error)
}
