// Package environment carries the application environment through
// context.Context so environment-gated flags never read process-wide state.
// The environment is read once at the application boundary, typically from
// configuration, and injected explicitly via Middleware or WithContext.
package environment

import "context"

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Staging for staging environment.
	Staging Environment = "staging"
	// Production for production environment.
	Production Environment = "production"
)

type contextKey struct{}

// WithContext returns a context carrying the given environment.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves the environment from context, or "" if none was set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}
