package redistore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "feature:"

// Store persists feature flags as Redis string keys.
// It is safe for concurrent use.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the default "feature:" key prefix, letting several
// applications share one Redis database without key collisions.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a flag store on top of an existing Redis client. The store
// shares the client by reference and never closes it.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the persisted value for a flag. A missing key is reported
// through the ok result; values that parse as neither boolean nor 0/1
// surface as ErrMalformedValue.
func (s *Store) Get(ctx context.Context, name string) (bool, bool, error) {
	raw, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}

	// Accept "1"/"0" alongside "true"/"false" since other writers may have
	// stored integer-ish values under the same keys.
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	return value, true, nil
}

// Set persists a value for a flag with no expiration.
func (s *Store) Set(ctx context.Context, name string, value bool) error {
	raw := "0"
	if value {
		raw = "1"
	}
	return s.client.Set(ctx, s.key(name), raw, 0).Err()
}

// Delete removes a flag's key. Deleting an absent flag is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.key(name)).Err()
}

// Persistent reports true: durability is delegated to the Redis deployment's
// own persistence configuration.
func (s *Store) Persistent() bool {
	return true
}

func (s *Store) key(name string) string {
	return s.prefix + name
}
