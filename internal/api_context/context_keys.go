package api_context

import (
	"context"
)

type ctxKey string

const (
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
	BatchIDKey    ctxKey = "batchID"
)

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BatchIDKey, id)
}

func BatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(BatchIDKey).(string)
	return id, ok && id != ""
}
