package repository

import (
	"context"
	"errors"

	"userService/models"
)

var (
	// ErrNotFound is returned when no user has the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateID is returned when creating a user whose id is already taken.
	ErrDuplicateID = errors.New("user id already exists")
)

// UserStore defines operations on User entities.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, name string, age int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

var _ UserStore = (*UserRepository)(nil)
