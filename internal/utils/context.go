package utils

import (
	"context"
)

type contextKey string

const ContextProfileIDKey contextKey = "profileID"

func GetProfileIDFromContext(ctx context.Context) (string, bool) {
	profileID := ctx.Value(ContextProfileIDKey)
	profileIDStr, ok := profileID.(string)
	return profileIDStr, ok
}
