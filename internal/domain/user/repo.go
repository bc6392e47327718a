package user

import "context"

type Repository interface {
	// Create inserts a user, returning ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
