package middleware

import "context"

type contextKey string

const (
	ctxOperatorID contextKey = "operator_id"
	ctxRole       contextKey = "role"
)

// OperatorIDFromContext returns the authenticated operator id, if any.
func OperatorIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxOperatorID).(string); ok {
		return value
	}
	return ""
}

// RoleFromContext returns the authenticated operator role, if any.
func RoleFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxRole).(string); ok {
		return value
	}
	return ""
}
