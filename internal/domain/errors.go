package domain

import "errors"

// Sentinel errors for recoverable per-offering failures. Aggregation code
// checks these with errors.Is, skips the offering, and logs; none of them
// may abort a batch.
var (
	// ErrDataUnavailable means the weather source has no coverage for a
	// region and date range.
	ErrDataUnavailable = errors.New("weather data unavailable")

	// ErrIncompleteModel means the resolved model type needs a threshold
	// that neither the offering override nor the cultivar default supplies,
	// or the supplied thresholds describe an inverted window.
	ErrIncompleteModel = errors.New("incomplete cultivar model")

	// ErrInvalidCultivarChain means a parent reference is cyclic, dangling,
	// or deeper than maxParentDepth. This is a catalog authoring bug, not a
	// runtime condition to retry.
	ErrInvalidCultivarChain = errors.New("invalid cultivar chain")
)
