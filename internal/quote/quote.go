package quote

import (
	"context"
	"errors"
)

// Raw is one symbol's quote payload exactly as the upstream returned it.
// No shape is guaranteed: any field may be missing, null, or zero even when
// a zero makes no economic sense. Numeric values are json.Number when the
// payload was decoded with UseNumber.
type Raw map[string]any

// ErrNoData is the single failure signal a Source surfaces. Transport
// errors, timeouts, bad bodies, and empty results all collapse into it so
// one symbol can never abort a run.
var ErrNoData = errors.New("no quote data")

// Source fetches the raw quote payload for one symbol.
// Implementations must be safe for concurrent use across symbols.
type Source interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (Raw, error)
}
