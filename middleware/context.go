package middleware

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID stores the caller identity in the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the caller identity from the context.
// Returns DefaultUserID when the identity middleware did not run.
func GetUserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return DefaultUserID
}
