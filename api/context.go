package api

import (
	"context"
	"errors"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser stores the authenticated user in the request context.
// Handlers and services receive identity through this value only,
// never from ambient state.
func ctxWithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context.
func ctxGetUser(ctx context.Context) (models.User, error) {
	value := ctx.Value(userKey)
	if value == nil {
		return models.User{}, errors.New("no authenticated user in context")
	}
	user, ok := value.(models.User)
	if !ok {
		return models.User{}, errors.New("context user has unexpected type")
	}
	return user, nil
}
