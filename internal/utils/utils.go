package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
)

// Suffix multipliers
var suffixes = map[string]int64{
	"B": 1,
	"K": KiB, "KB": KiB,
	"M": MiB, "MB": MiB,
	"G": GiB, "GB": GiB,
}

// ParseSize parses strings like "500B", "10K", "4MB", "1G" into a number of
// bytes. A bare number ("20") is multiplied by unit.
func ParseSize(sizeStr string, unit int64) (int64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	if sizeStr == "" {
		return 0, errors.New("size string is empty")
	}
	// Split the leading digits from the suffix.
	i := 0
	for i < len(sizeStr) && sizeStr[i] >= '0' && sizeStr[i] <= '9' {
		i++
	}
	numPart, suffix := sizeStr[:i], sizeStr[i:]
	if numPart == "" {
		return 0, fmt.Errorf("invalid size number in %q", sizeStr)
	}
	baseVal, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %w", err)
	}
	if unit <= 0 {
		unit = 1
	}
	mult := unit
	if suffix != "" {
		var ok bool
		if mult, ok = suffixes[suffix]; !ok {
			return 0, fmt.Errorf("unknown size suffix '%s'", suffix)
		}
	}
	if baseVal > 0 && baseVal > (1<<63-1)/mult {
		return 0, fmt.Errorf("size %q overflows int64", sizeStr)
	}
	return baseVal * mult, nil
}

// FormatBytes renders n with IEC units, e.g. "1.0 MiB".
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
