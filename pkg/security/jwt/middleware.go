package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/auth"
)

const (
	localUserID = "userId"
	localRole   = "role"
)

// NewAuthMiddleware возвращает middleware Fiber, проверяющий Bearer JWT (HS256).
// При успехе кладёт subject в c.Locals("userId"), а роль в c.Locals("role").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Поддерживаем и "Bearer <token>", и "<token>" без префикса.
		tokenStr := strings.TrimSpace(authHeader)
		if scheme, rest, ok := strings.Cut(tokenStr, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token claims"})
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token issuer"})
		}
		role, ok := auth.ParseRole(string(claims.Role))
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token role"})
		}
		c.Locals(localUserID, claims.Subject)
		c.Locals(localRole, role)
		return c.Next()
	}
}

// PrincipalFrom читает вызывающего, положенного NewAuthMiddleware.
func PrincipalFrom(c *fiber.Ctx) (auth.Principal, bool) {
	s, _ := c.Locals(localUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return auth.Principal{}, false
	}
	role, ok := c.Locals(localRole).(auth.Role)
	if !ok {
		return auth.Principal{}, false
	}
	return auth.Principal{UserID: id, Role: role}, true
}
