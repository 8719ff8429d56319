package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrFlagNotFound indicates that a flag has neither a registered
	// evaluator nor a resolvable stored value.
	ErrFlagNotFound = errors.New("feature flag not found")

	// ErrNoStore indicates a store-dependent operation was called on a
	// registry with no storage backend attached.
	ErrNoStore = errors.New("no flag store attached")

	// ErrInvalidEvaluator indicates a misconfigured built-in evaluator,
	// such as a rollout percentage outside the 0-100 range.
	ErrInvalidEvaluator = errors.New("invalid evaluator configuration")
)
