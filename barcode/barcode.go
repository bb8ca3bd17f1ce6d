// Package barcode parses the weight-embedded barcodes printed by in-store
// scales.
package barcode

import (
	"fmt"
	"strconv"
	"strings"
)

// WeightPrefix marks a scale barcode: 28 + 5-digit article code + 5-digit
// weight in grams (+ check digit).
const WeightPrefix = "28"

const weightCodeMinLen = 12

// Weight is the decoded form of a scale barcode.
type Weight struct {
	Barcode  string
	AltCode  int
	WeightKg float64
}

// IsWeightBarcode reports whether the code has the scale prefix and enough
// digits to decode.
func IsWeightBarcode(code string) bool {
	return strings.HasPrefix(code, WeightPrefix) && len(code) >= weightCodeMinLen
}

// ParseWeight decodes a scale barcode: characters 2..7 are the article's
// alternative code, characters 7..12 the weight in grams.
func ParseWeight(code string) (*Weight, error) {
	if !IsWeightBarcode(code) {
		return nil, fmt.Errorf("not a weight barcode: %q", code)
	}

	altCode, err := strconv.Atoi(code[2:7])
	if err != nil {
		return nil, fmt.Errorf("invalid article code in weight barcode %q: %w", code, err)
	}
	grams, err := strconv.Atoi(code[7:12])
	if err != nil {
		return nil, fmt.Errorf("invalid weight in weight barcode %q: %w", code, err)
	}

	return &Weight{
		Barcode:  code,
		AltCode:  altCode,
		WeightKg: float64(grams) / 1000.0,
	}, nil
}
