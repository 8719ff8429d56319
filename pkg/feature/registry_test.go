package feature_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flagkit/flagkit/pkg/feature"
)

// stubStore wraps MemoryStore with injectable failures and an Init hook for
// exercising the registry's propagation contract.
type stubStore struct {
	*feature.MemoryStore
	getErr   error
	setErr   error
	initErr  error
	initRuns int
}

func newStubStore() *stubStore {
	return &stubStore{MemoryStore: feature.NewMemoryStore()}
}

func (s *stubStore) Get(ctx context.Context, name string) (bool, bool, error) {
	if s.getErr != nil {
		return false, false, s.getErr
	}
	return s.MemoryStore.Get(ctx, name)
}

func (s *stubStore) Set(ctx context.Context, name string, value bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, name, value)
}

func (s *stubStore) Init(ctx context.Context) error {
	s.initRuns++
	return s.initErr
}

func TestRegistryActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("UnknownFlag", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()

		_, err := reg.Active(ctx, "never-defined", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, feature.ErrFlagNotFound)
		assert.Contains(t, err.Error(), "never-defined")
	})

	t.Run("DefinedWithoutEvaluator", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("beta-banner", nil)

		active, err := reg.Active(ctx, "beta-banner", nil)
		require.NoError(t, err)
		assert.True(t, active)

		// Any context shape yields the same result.
		active, err = reg.Active(ctx, "beta-banner", feature.Context{"user_id": "u1"})
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("EvaluatorResult", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("beta", func(ctx context.Context, ec feature.Context) (bool, error) {
			return ec["user_id"].(int)%100 < 25, nil
		})

		active, err := reg.Active(ctx, "beta", feature.Context{"user_id": 10})
		require.NoError(t, err)
		assert.True(t, active)

		active, err = reg.Active(ctx, "beta", feature.Context{"user_id": 90})
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("EvaluatorErrorPropagates", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		reg := feature.NewRegistry()
		reg.Define("crash", func(ctx context.Context, ec feature.Context) (bool, error) {
			return false, boom
		})

		_, err := reg.Active(ctx, "crash", nil)
		require.Error(t, err)
		// Propagated verbatim, not wrapped in a registry sentinel.
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, feature.ErrFlagNotFound)
	})

	t.Run("StoreFallback", func(t *testing.T) {
		t.Parallel()
		store := feature.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "kill-switch", false))
		require.NoError(t, store.Set(ctx, "dark-mode", true))

		reg := feature.NewRegistry(feature.WithStore(store))

		active, err := reg.Active(ctx, "kill-switch", nil)
		require.NoError(t, err)
		assert.False(t, active, "stored false must resolve, not fall through to not-found")

		active, err = reg.Active(ctx, "dark-mode", nil)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("DefinitionWinsOverStore", func(t *testing.T) {
		t.Parallel()
		store := feature.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "contested", true))

		reg := feature.NewRegistry(feature.WithStore(store))
		reg.Define("contested", feature.Bool(false))

		active, err := reg.Active(ctx, "contested", nil)
		require.NoError(t, err)
		assert.False(t, active, "code-defined evaluator must win over the stored value")
	})

	t.Run("StoreErrorPropagates", func(t *testing.T) {
		t.Parallel()
		store := newStubStore()
		store.getErr = errors.New("connection refused")
		reg := feature.NewRegistry(feature.WithStore(store))

		_, err := reg.Active(ctx, "anything", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.getErr)
	})

	t.Run("StoreMissAfterStoreAttached", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry(feature.WithStore(feature.NewMemoryStore()))

		_, err := reg.Active(ctx, "nowhere", nil)
		assert.ErrorIs(t, err, feature.ErrFlagNotFound)
	})
}

func TestRegistryDefine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("OverwriteReplacesEvaluator", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("swap", feature.Bool(false))
		reg.Define("swap", feature.Bool(true))

		active, err := reg.Active(ctx, "swap", nil)
		require.NoError(t, err)
		assert.True(t, active)

		// Redefining back to nil makes the flag unconditionally active.
		reg.Define("swap", nil)
		active, err = reg.Active(ctx, "swap", nil)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("IdempotentRedefine", func(t *testing.T) {
		t.Parallel()
		ev := feature.Bool(true)
		reg := feature.NewRegistry()
		reg.Define("same", ev)
		reg.Define("same", ev)

		active, err := reg.Active(ctx, "same", nil)
		require.NoError(t, err)
		assert.True(t, active)
		assert.Equal(t, []string{"same"}, reg.DefinedFlags())
	})

	t.Run("DefinedFlagsInsertionOrder", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("first", nil)
		reg.Define("second", feature.Bool(false))
		reg.Define("third", nil)
		reg.Define("second", feature.Bool(true)) // overwrite keeps position

		assert.Equal(t, []string{"first", "second", "third"}, reg.DefinedFlags())
	})

	t.Run("DefinedFlagsExcludesStoreOnlyNames", func(t *testing.T) {
		t.Parallel()
		store := feature.NewMemoryStore()
		reg := feature.NewRegistry(feature.WithStore(store))
		require.NoError(t, reg.DefineAndStore(ctx, "stored-only", true))
		reg.Define("in-code", nil)

		assert.Equal(t, []string{"in-code"}, reg.DefinedFlags())
	})
}

func TestRegistryDefineAndStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("NoStoreAttached", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()

		err := reg.DefineAndStore(ctx, "x", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, feature.ErrNoStore)
	})

	t.Run("RoundTripThroughActive", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry(feature.WithStore(feature.NewMemoryStore()))

		require.NoError(t, reg.DefineAndStore(ctx, "rollout", true))
		active, err := reg.Active(ctx, "rollout", nil)
		require.NoError(t, err)
		assert.True(t, active)

		require.NoError(t, reg.DefineAndStore(ctx, "rollout", false))
		active, err = reg.Active(ctx, "rollout", nil)
		require.NoError(t, err)
		assert.False(t, active, "store-backed flags resolve dynamically on every call")
	})

	t.Run("WriteFailurePropagates", func(t *testing.T) {
		t.Parallel()
		store := newStubStore()
		store.setErr = errors.New("disk full")
		reg := feature.NewRegistry(feature.WithStore(store))

		err := reg.DefineAndStore(ctx, "x", true)
		assert.ErrorIs(t, err, store.setErr)
	})
}

func TestRegistryActiveMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("MixedOutcomes", func(t *testing.T) {
		t.Parallel()
		store := feature.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "stored-on", true))

		reg := feature.NewRegistry(feature.WithStore(store))
		reg.Define("on", nil)
		reg.Define("off", feature.Bool(false))
		reg.Define("crash", func(ctx context.Context, ec feature.Context) (bool, error) {
			return false, errors.New("boom")
		})

		results := reg.ActiveMany(ctx, []string{"on", "off", "crash", "stored-on", "missing"}, nil)

		assert.Equal(t, map[string]bool{
			"on":        true,
			"off":       false,
			"crash":     false, // evaluator error swallowed
			"stored-on": true,
			"missing":   false, // not-found swallowed
		}, results)
	})

	t.Run("NeverFails", func(t *testing.T) {
		t.Parallel()
		store := newStubStore()
		store.getErr = errors.New("connection refused")
		reg := feature.NewRegistry(feature.WithStore(store))

		results := reg.ActiveMany(ctx, []string{"a", "b"}, nil)
		assert.Equal(t, map[string]bool{"a": false, "b": false}, results)
	})

	t.Run("DuplicateNamesCollapse", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("dup", nil)

		results := reg.ActiveMany(ctx, []string{"dup", "dup", "dup"}, nil)
		assert.Equal(t, map[string]bool{"dup": true}, results)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		assert.Empty(t, reg.ActiveMany(ctx, nil, nil))
	})

	t.Run("ContextReachesEvaluators", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		reg.Define("scoped", func(ctx context.Context, ec feature.Context) (bool, error) {
			return ec["tenant"] == "acme", nil
		})

		results := reg.ActiveMany(ctx, []string{"scoped"}, feature.Context{"tenant": "acme"})
		assert.Equal(t, map[string]bool{"scoped": true}, results)
	})
}

func TestRegistryInitStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("NoStore", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry()
		assert.NoError(t, reg.InitStore(ctx))
	})

	t.Run("StoreWithoutInitHook", func(t *testing.T) {
		t.Parallel()
		reg := feature.NewRegistry(feature.WithStore(feature.NewMemoryStore()))
		assert.NoError(t, reg.InitStore(ctx))
	})

	t.Run("DelegatesToInitHook", func(t *testing.T) {
		t.Parallel()
		store := newStubStore()
		reg := feature.NewRegistry(feature.WithStore(store))

		require.NoError(t, reg.InitStore(ctx))
		assert.Equal(t, 1, store.initRuns)
	})

	t.Run("InitFailurePropagates", func(t *testing.T) {
		t.Parallel()
		store := newStubStore()
		store.initErr = errors.New("permission denied")
		reg := feature.NewRegistry(feature.WithStore(store))

		err := reg.InitStore(ctx)
		assert.ErrorIs(t, err, store.initErr)
	})
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := feature.NewRegistry(feature.WithStore(feature.NewMemoryStore()))
	reg.Define("warm", nil)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				reg.Define("warm", feature.Bool(true))
			case 1:
				_, _ = reg.Active(ctx, "warm", nil)
			default:
				_ = reg.ActiveMany(ctx, []string{"warm", "cold"}, nil)
			}
		}(i)
	}
	wg.Wait()

	active, err := reg.Active(ctx, "warm", nil)
	require.NoError(t, err)
	assert.True(t, active)
}
