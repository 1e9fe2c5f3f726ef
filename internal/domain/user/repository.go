package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create inserts a new user resolved from the identity provider.
	Create(ctx context.Context, u User) (User, error)

	// Update persists profile fields refreshed from the identity provider.
	Update(ctx context.Context, u User) error
}
