package utils

import (
	"github.com/hailam/gencorpus/internal/ports"
	"github.com/hailam/gencorpus/internal/utils"
)

// UtilSizeParser adapts utils.ParseSize to the ports.SizeParser interface.
type UtilSizeParser struct {
	unit int64
}

// NewUtilSizeParser creates a size parser that scales bare numbers by unit,
// e.g. utils.MiB to read "20" as twenty mebibytes.
func NewUtilSizeParser(unit int64) ports.SizeParser {
	return &UtilSizeParser{unit: unit}
}

func (p *UtilSizeParser) Parse(spec string) (int64, error) {
	return utils.ParseSize(spec, p.unit)
}
