// Package middleware provides the HTTP cross-cutting layer for the study
// API: request correlation, structured request logging, panic containment,
// CORS, and bearer-token authentication.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain folds middleware into one. The first argument becomes the outermost
// wrapper: Chain(a, b)(h) serves a request as a, then b, then h.
func Chain(mws ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := next
		for i := len(mws) - 1; i >= 0; i-- {
			wrapped = mws[i](wrapped)
		}
		return wrapped
	}
}
