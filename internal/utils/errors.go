package utils

import (
	"errors"
	"io/fs"
)

// DetailedError pairs a message meant for the user with the underlying cause.
type DetailedError struct {
	Message string
	Err     error
}

func (e *DetailedError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// DescribeFileError wraps a failed file operation (op is a verb such as
// "opening" or "deleting") into a DetailedError whose message names the
// likely reason.
func DescribeFileError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	msg := "Error " + op + " output file " + path
	switch {
	case errors.Is(err, fs.ErrPermission):
		msg += ". The program does not have the required permission"
	case errors.Is(err, fs.ErrNotExist):
		msg += ". The directory does not exist"
	case errors.Is(err, fs.ErrExist):
		msg += ". The file already exists"
	}
	return &DetailedError{Message: msg, Err: err}
}
