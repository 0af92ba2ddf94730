package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const adminIDKey keyType = "adminID"

// ctxWithAdminID adds the authenticated admin's ID to the context
func ctxWithAdminID(ctx context.Context, adminID uuid.UUID) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// ctxGetAdminID retrieves the authenticated admin's ID from the context
func ctxGetAdminID(ctx context.Context) (uuid.UUID, error) {
	if ctxValue := ctx.Value(adminIDKey); ctxValue == nil {
		return uuid.Nil, errors.New("key not found in context")
	} else if id, ok := ctxValue.(uuid.UUID); !ok {
		return uuid.Nil, errors.New("value is not of type `uuid.UUID`")
	} else {
		return id, nil
	}
}
