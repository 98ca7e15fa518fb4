package auth

import "context"

// TokenGenerator выпускает токены доступа с id и ролью пользователя,
// чтобы use case не зависели от формата токена.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
