package environment

import "net/http"

// Middleware returns a middleware that attaches the given environment to
// every request context, making environment-gated flag evaluation work
// anywhere in the request handling pipeline.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
