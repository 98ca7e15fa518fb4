package auth

import (
	"context"

	"github.com/artem13815/jobboard/pkg/apperr"
)

// Общие ошибки репозитория и use case
var (
	ErrNotFound           = apperr.NotFound("user not found")
	ErrUserAlreadyExists  = apperr.Conflict("user already exists")
	ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")
)

// UserRepository отделяет хранение от доменного слоя.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
