package middleware

import "net/http"

// MaxRequestSize caps request bodies; oversized reads fail inside the handler
// with a *http.MaxBytesError, which surfaces as a decode error there.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
