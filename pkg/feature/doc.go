// Package feature provides a feature-flag registry for gating code paths,
// running percentage rollouts, and A/B testing in server-side applications.
//
// The package is built around three core concepts:
//
// 1. Registry - the in-memory table of flag definitions and the resolution engine
// 2. Evaluators - per-flag functions deciding an outcome for a call context
// 3. Stores - pluggable persistence backends for administratively toggled flags
//
// Resolution follows a strict two-tier precedence: a flag defined in code
// always wins over the same name persisted in a store. This lets operators
// run store-backed kill switches for simple on/off flags while complex
// contextual logic stays in code, without the two mechanisms colliding.
//
// # Usage
//
// Basic setup with a storage backend:
//
//	import "github.com/flagkit/flagkit/pkg/feature"
//
//	registry := feature.NewRegistry(feature.WithStore(feature.NewMemoryStore()))
//
//	// Flag with rollout logic, resolved in code.
//	registry.Define("new-checkout", feature.Percentage("user_id", 25))
//
//	// Flag with no logic: active whenever defined.
//	registry.Define("beta-banner", nil)
//
//	// Store-backed flag, toggled live through the store.
//	if err := registry.DefineAndStore(ctx, "maintenance-mode", false); err != nil {
//		// Handle error
//	}
//
//	active, err := registry.Active(ctx, "new-checkout", feature.Context{"user_id": userID})
//	if err != nil {
//		// Handle error
//	}
//	if active {
//		// Show new checkout
//	}
//
// # Evaluators
//
// An evaluator is any func(ctx context.Context, ec feature.Context) (bool, error).
// The package ships constructors for common rollout shapes:
//
//	feature.Bool(v)                  - constant outcome
//	feature.Percentage(key, pct)     - consistent-hash percentage rollout
//	feature.Subjects(key, ids...)    - explicit allow set
//	feature.Environments(envs...)    - environment-gated activation
//	feature.All(evs...) / Any(...)   - composition
//
// Evaluation context is a plain map; each flag's evaluator owns the shape of
// the data it expects.
//
// # Batch evaluation
//
// ActiveMany evaluates a set of flags concurrently and never fails as a
// whole: every per-name error degrades to "feature off". Use Active directly
// when a caller must distinguish a missing flag from a disabled one.
//
// # Error Handling
//
// The package defines sentinel errors checked with errors.Is:
//
//	active, err := registry.Active(ctx, "unknown", nil)
//	if errors.Is(err, feature.ErrFlagNotFound) {
//		// Flag was never defined or stored
//	}
//
// The registry never wraps or reinterprets evaluator and store failures;
// they pass through unchanged so callers can distinguish their root cause.
//
// # Storage backends
//
// Store implementations live in sibling packages: pgstore (PostgreSQL),
// redistore (Redis), mongostore (MongoDB), and dynamostore (DynamoDB).
// MemoryStore in this package covers tests and single-process deployments.
// Backend-specific value normalization, such as coercing integer columns to
// booleans, is the adapter's job; the registry only ever sees booleans.
package feature
