package engine

import "math"

// Settings holds the three NUMERIC scalars (spec.md §4.12).
type Settings struct {
	Digits int
	Fuzz   int
	Form   string // SCIENTIFIC | ENGINEERING
}

// DefaultSettings matches classic REXX defaults: 9 digits, no fuzz,
// scientific exponent form.
func DefaultSettings() Settings {
	return Settings{Digits: 9, Fuzz: 0, Form: "SCIENTIFIC"}
}

// round applies NUMERIC DIGITS precision to an arithmetic result (spec.md
// §8 invariant 5: "result precision ≤ n significant digits"). Comparison
// callers pass digits-fuzz per spec.md §4.2's FUZZ rule.
func round(v float64, digits int) float64 {
	if digits <= 0 || math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
		return v
	}
	mag := math.Floor(math.Log10(math.Abs(v))) + 1
	scale := math.Pow(10, float64(digits)-mag)
	return math.Round(v*scale) / scale
}

// comparisonDigits returns DIGITS-FUZZ, floored at 1, per spec.md §4.12.
func (s Settings) comparisonDigits() int {
	d := s.Digits - s.Fuzz
	if d < 1 {
		d = 1
	}
	return d
}
