package feature

import "context"

// Context carries per-call evaluation data for a single flag check, such as
// the user identifier or tenant a rollout decision is based on. Each flag's
// evaluator owns the shape of the data it expects; the registry never
// inspects the contents.
type Context map[string]any

// Evaluator decides whether a flag is active for one call. It receives the
// standard context for cancellation and deadline propagation plus the
// per-call evaluation data, which may be nil. Returned errors propagate
// verbatim through Active.
type Evaluator func(ctx context.Context, ec Context) (bool, error)

// Store is the persistence contract for administratively toggled flags.
// Implementations map flag names to booleans behind process memory, a
// relational table, or a cloud key-value item; the registry is agnostic to
// what lies behind the three operations.
type Store interface {
	// Get returns the persisted value for a flag. The ok result reports
	// whether the flag exists at all, so a stored false is distinguishable
	// from an absent entry.
	Get(ctx context.Context, name string) (value bool, ok bool, err error)

	// Set persists a value for a flag, creating or overwriting the entry.
	Set(ctx context.Context, name string, value bool) error

	// Delete removes a flag from the store. Deleting an absent flag is not
	// an error.
	Delete(ctx context.Context, name string) error
}

// Initializer is an optional Store extension for backends that need setup
// before first use, such as schema or table creation. Registry.InitStore
// invokes it when present.
type Initializer interface {
	Init(ctx context.Context) error
}

// PersistenceProber is an optional Store extension reporting whether values
// survive process restarts. Diagnostic only; resolution never consults it.
type PersistenceProber interface {
	Persistent() bool
}
