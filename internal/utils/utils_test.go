package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		unit     int64
		expected int64
		wantErr  bool
	}{
		// Valid cases
		{"500", 1, 500, false},
		{"500B", MiB, 500, false},
		{"10k", 1, 10 * 1024, false},
		{"10K", 1, 10 * 1024, false},
		{"10kb", 1, 10 * 1024, false},
		{"10KB", 1, 10 * 1024, false},
		{"4m", 1, 4 * 1024 * 1024, false},
		{"4MB", 1, 4 * 1024 * 1024, false},
		{"1G", 1, 1 * 1024 * 1024 * 1024, false},
		{"1GB", 1, 1 * 1024 * 1024 * 1024, false},
		{"20", MiB, 20 * MiB, false},
		{" 20 ", MiB, 20 * MiB, false},
		{"0", MiB, 0, false},
		{"0KB", 1, 0, false},

		// Invalid cases
		{"", 1, 0, true},        // Empty string
		{"-100", 1, 0, true},    // Negative number
		{"10P", 1, 0, true},     // Unknown suffix
		{"KB", 1, 0, true},      // No number
		{"10.5K", 1, 0, true},   // Non-integer number part
		{"abc", 1, 0, true},     // Non-numeric
		{"10 M B", 1, 0, true},  // Space in suffix
		{"1 0 K B", 1, 0, true}, // Space in number
		{"99999999999G", 1, 0, true},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("Input_%s", tc.input), func(t *testing.T) {
			got, err := ParseSize(tc.input, tc.unit)

			if (err != nil) != tc.wantErr {
				t.Errorf("ParseSize(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
				return
			}
			if !tc.wantErr && got != tc.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "1.0 MiB", FormatBytes(MiB))
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "-2.0 KiB", FormatBytes(-2*KiB))
}

func TestDescribeFileError(t *testing.T) {
	require.NoError(t, DescribeFileError("opening", "out.txt", nil))

	err := DescribeFileError("deleting", "out.txt", fs.ErrPermission)
	var de *DetailedError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Message, "required permission")
	assert.True(t, errors.Is(err, fs.ErrPermission))

	err = DescribeFileError("opening", "x/out.txt", fmt.Errorf("open: %w", fs.ErrNotExist))
	assert.ErrorContains(t, err, "directory does not exist")

	plain := errors.New("disk on fire")
	err = DescribeFileError("writing", "out.txt", plain)
	assert.Equal(t, "Error writing output file out.txt: disk on fire", err.Error())
}
