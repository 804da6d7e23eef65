package middleware

import (
	"net/http"
)

// UserIDHeader carries the caller-supplied identity. There is no
// authentication on this surface; the header is trusted as-is.
const UserIDHeader = "X-User-ID"

// DefaultUserID is the shared fallback identity for callers that omit the
// header. All such callers collide on one conversation history.
const DefaultUserID = "default"

// Identity extracts the X-User-ID header into the request context,
// defaulting to the shared fallback identity when absent.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			userID = DefaultUserID
		}
		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
