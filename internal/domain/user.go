// Package domain
package domain

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidUserID      = errors.New("invalid user id")
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserCreate struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// UserUpdate is a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}

type UserListResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

type UserRepository interface {
	GetUsers(ctx context.Context, opts ListOptions) ([]*User, int64, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, id string, req UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService interface {
	Get(ctx context.Context, params PaginationParams) (*UserListResponse, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, req UserCreate) (*User, error)
	Update(ctx context.Context, id string, req UserUpdate) (*User, error)
	Delete(ctx context.Context, id string) error
}
