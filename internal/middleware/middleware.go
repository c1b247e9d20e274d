// Package middleware provides the HTTP middleware stack for the service.
package middleware

import "net/http"

// Chain applies mws so that the first one wraps all the others.
func Chain(handler http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}
