package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey carries the authenticated account id of a request.
var AccountIDCtxKey = contextKey("accountID")

// GetAccountIDFromContext returns the account id stored by the auth
// middleware.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}
