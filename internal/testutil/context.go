package testutil

import (
	"context"

	"github.com/flexprice/azpay/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.WithRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
	return ctx
}
