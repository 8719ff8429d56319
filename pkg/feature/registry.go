package feature

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/flagkit/flagkit/pkg/async"
)

// Registry owns the mapping of flag names to evaluators and resolves flag
// outcomes, falling back to an attached store for flags that were persisted
// instead of defined in code. The zero value is not usable; create instances
// with NewRegistry.
//
// Defines are expected at application setup time, but the registry is safe
// for concurrent use throughout.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Evaluator
	order []string
	store Store
	log   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStore attaches a storage backend for persisted flags. The registry
// shares the store by reference and never closes it; lifecycle belongs to
// the caller.
func WithStore(s Store) RegistryOption {
	return func(r *Registry) {
		r.store = s
	}
}

// WithLogger sets the logger used for debug-level diagnostics. Nil loggers
// are ignored; without this option the registry stays silent.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty flag registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		defs: make(map[string]Evaluator),
		log:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Define registers a flag, replacing any previous definition under the same
// name. A nil evaluator means the flag is unconditionally active once
// defined. Define never touches the attached store and cannot fail.
func (r *Registry) Define(name string, ev Evaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.defs[name] = ev
}

// DefineAndStore persists a default value for a flag in the attached store
// without registering an evaluator. Resolution for such flags falls through
// to the store on every Active call, so operators can toggle them live
// without a redefinition. Returns ErrNoStore if no store is attached; store
// write failures propagate unchanged.
func (r *Registry) DefineAndStore(ctx context.Context, name string, defaultValue bool) error {
	r.mu.RLock()
	store := r.store
	r.mu.RUnlock()

	if store == nil {
		return ErrNoStore
	}
	return store.Set(ctx, name, defaultValue)
}

// Active resolves a flag's boolean outcome for the given evaluation context.
//
// A registered definition always wins: a nil evaluator yields true, a
// non-nil evaluator yields its own result with errors propagated verbatim.
// Undefined flags fall back to the attached store, whose persisted value is
// returned as-is; stored flags are pure booleans, never subject to the
// evaluation context. If neither source knows the flag, Active returns
// ErrFlagNotFound wrapping the flag name.
func (r *Registry) Active(ctx context.Context, name string, ec Context) (bool, error) {
	r.mu.RLock()
	ev, defined := r.defs[name]
	store := r.store
	r.mu.RUnlock()

	if defined {
		if ev == nil {
			return true, nil
		}
		return ev(ctx, ec)
	}

	if store != nil {
		value, ok, err := store.Get(ctx, name)
		if err != nil {
			return false, err
		}
		if ok {
			r.log.DebugContext(ctx, "flag resolved from store", "flag", name, "value", value)
			return value, nil
		}
	}

	return false, fmt.Errorf("%w: %q", ErrFlagNotFound, name)
}

// ActiveMany resolves several flags concurrently and returns one entry per
// distinct requested name. Any per-name failure, whether a missing flag, an
// evaluator error, or a store error, degrades to false instead of failing
// the whole call. Callers needing strict error semantics should call Active
// per name.
func (r *Registry) ActiveMany(ctx context.Context, names []string, ec Context) map[string]bool {
	futures := make(map[string]*async.Future[bool], len(names))
	for _, name := range names {
		if _, dup := futures[name]; dup {
			continue
		}
		futures[name] = async.Go(func() (bool, error) {
			return r.Active(ctx, name, ec)
		})
	}

	results := make(map[string]bool, len(futures))
	for name, fut := range futures {
		value, err := fut.Await()
		if err != nil {
			r.log.DebugContext(ctx, "flag evaluation failed, treating as inactive",
				"flag", name, "error", err)
			value = false
		}
		results[name] = value
	}

	return results
}

// DefinedFlags returns the names of all registered flags in definition
// order. Flags living only in the store are not listed; the registry does
// not enumerate its backend.
func (r *Registry) DefinedFlags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// InitStore runs the attached store's setup hook, typically table or schema
// creation, and is meant to be called once at application startup. It is a
// no-op when no store is attached or the store needs no initialization;
// failures propagate unchanged so the caller can abort startup.
func (r *Registry) InitStore(ctx context.Context) error {
	r.mu.RLock()
	store := r.store
	r.mu.RUnlock()

	if store == nil {
		return nil
	}
	init, ok := store.(Initializer)
	if !ok {
		return nil
	}
	return init.Init(ctx)
}
