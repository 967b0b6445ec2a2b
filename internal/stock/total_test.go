package stock

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
)

func TestSafeDivide(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5.0, safeDivide(10, 2, 0))
	require.Equal(t, 0.0, safeDivide(10, 0, 0))
	require.Equal(t, 7.0, safeDivide(10, 0, 7))
	require.Equal(t, 7.0, safeDivide(math.NaN(), 2, 7))
	require.Equal(t, 7.0, safeDivide(10, math.NaN(), 7))
	require.Equal(t, 7.0, safeDivide(10, math.Inf(1), 7))
}

func TestNum(t *testing.T) {
	t.Parallel()

	raw := quote.Raw{
		"float":  12.5,
		"number": json.Number("42.25"),
		"string": "not a number",
		"null":   nil,
	}
	require.Equal(t, 12.5, num(raw, "float", 0))
	require.Equal(t, 42.25, num(raw, "number", 0))
	require.Equal(t, 3.0, num(raw, "string", 3))
	require.Equal(t, 3.0, num(raw, "null", 3))
	require.Equal(t, 3.0, num(raw, "missing", 3))
	require.Equal(t, 3.0, num(nil, "anything", 3))
}

func TestStr(t *testing.T) {
	t.Parallel()

	raw := quote.Raw{"name": "Apple Inc.", "empty": "", "num": json.Number("1")}
	require.Equal(t, "Apple Inc.", str(raw, "name", "x"))
	require.Equal(t, "x", str(raw, "empty", "x"))
	require.Equal(t, "x", str(raw, "num", "x"))
	require.Equal(t, "x", str(raw, "missing", "x"))
	require.Equal(t, "x", str(nil, "missing", "x"))
}

func TestRound(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1.23, round(1.2345, 2))
	require.Equal(t, 0.0, round(math.NaN(), 2))
	require.Equal(t, 0.0, round(math.Inf(-1), 2))
	require.Equal(t, 0.0, round(0, 2))
}

func TestPct(t *testing.T) {
	t.Parallel()

	require.Equal(t, "15.00%", pct(0.15))
	require.Equal(t, "12.35%", pct(0.123456))
	require.Equal(t, "0.00%", pct(0))
}
