package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

func principal(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := jwt.PrincipalFrom(c)
	if !ok {
		return auth.Principal{}, apperr.Unauthorized("could not identify the user")
	}
	return p, nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("Invalid " + name)
	}
	return id, nil
}

// positiveQuery читает необязательное положительное целое из query; без значения вернёт def.
func positiveQuery(c *fiber.Ctx, key string, def int) (int, bool) {
	return intQuery(c, key, def, 1)
}

// intQuery — то же для целых не меньше min.
func intQuery(c *fiber.Ctx, key string, def, min int) (int, bool) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return 0, false
	}
	return n, true
}

// parsePageLimit читает ?page и ?limit; всё, что не положительное целое, отклоняется.
func parsePageLimit(c *fiber.Ctx, defLimit int) (page, limit int, err error) {
	page, okPage := positiveQuery(c, "page", 1)
	limit, okLimit := positiveQuery(c, "limit", defLimit)
	if !okPage || !okLimit {
		return 0, 0, apperr.Invalid("Invalid page or limit")
	}
	return page, limit, nil
}

func bindJSON(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperr.Invalid("invalid JSON payload")
	}
	return nil
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, apperr.Invalid("failed to read file")
	}
	if int64(len(b)) > max {
		return nil, apperr.Invalid(fmt.Sprintf("file too large: limit is %d bytes", max))
	}
	return b, nil
}
