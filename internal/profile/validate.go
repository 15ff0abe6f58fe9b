package profile

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownGoal     = errors.New("unknown goal")
	ErrUnknownDietType = errors.New("unknown diet type")
	ErrUnknownTiming   = errors.New("unknown workout timing")
)

func ValidName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) > 1
}

func ValidAge(age int) bool {
	return age > 0 && age < 120
}

func ValidHeight(height float64) bool {
	return height > 50 && height < 250
}

func ValidWeight(weight float64) bool {
	return weight > 10 && weight < 500
}

func ValidRegion(region string) bool {
	return strings.TrimSpace(region) != ""
}

// ParseAge parses raw age input as a base 10 integer.
func ParseAge(raw string) (int, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return age, true
}

// ParseMeasure parses raw height or weight input as a plain decimal number. Hex
// floats, digit separators, NaN and infinities are rejected.
func ParseMeasure(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if strings.ContainsAny(raw, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
