package stock

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
)

// The three helpers below are total functions: every partial operation the
// completer needs (map lookup, division, numeric rounding) is wrapped to
// return a well-defined default instead of failing. They are the only
// mechanism behind the "no blank fields, no divide-by-zero" guarantee.

// num returns the numeric value at key, or def when the field is missing,
// null, or not a number.
func num(raw quote.Raw, key string, def float64) float64 {
	if raw == nil {
		return def
	}
	v, ok := raw[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return f
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}

// str returns the string value at key, or def when the field is missing,
// null, empty, or not a string.
func str(raw quote.Raw, key string, def string) string {
	if raw == nil {
		return def
	}
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return def
}

// safeDivide returns n/d, or def when the denominator is zero or either
// operand would produce a non-finite result.
func safeDivide(n, d, def float64) float64 {
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return def
	}
	res := n / d
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return def
	}
	return res
}

// round rounds v to the given number of decimals. Non-finite input rounds
// to 0; a value of exactly 0 stays 0, which the completer treats as "no
// data" rather than a meaningful quantity.
func round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// pct formats a fractional value as a two-decimal percentage string.
func pct(frac float64) string {
	return fmt.Sprintf("%.2f%%", round(frac*100, 2))
}
