package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type accountDataKey struct{}

// AccountData is the identity recovered from a verified access token.
type AccountData struct {
	AccountID uuid.UUID
	Email     string
	Role      string
}

func WithAccountData(ctx context.Context, ad *AccountData) context.Context {
	return context.WithValue(ctx, accountDataKey{}, ad)
}

func GetAccountData(ctx context.Context) *AccountData {
	if ctx == nil {
		return nil
	}
	if ad, ok := ctx.Value(accountDataKey{}).(*AccountData); ok {
		return ad
	}
	return nil
}
