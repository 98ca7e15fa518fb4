package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *zap.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role: candidate, employer или recruiter; пусто значит candidate.
	Role string `json:"role"`
}

// Register регистрирует пользователя.
// @Summary Регистрация пользователя
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "Данные регистрации"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	role, ok := auth.ParseRole(req.Role)
	if !ok {
		return presenter.Fail(c, h.log, apperr.Invalid("unknown role"))
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Password, role)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":        result.User.ID.String(),
		"email":     result.User.Email,
		"role":      result.User.Role,
		"createdAt": result.User.CreatedAt,
		"token":     result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login выполняет вход пользователя.
// @Summary Вход
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "Данные для входа"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Fail(c, h.log, apperr.Invalid("email and password are required"))
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"id":    result.User.ID.String(),
		"email": result.User.Email,
		"role":  result.User.Role,
		"token": result.Token,
	})
}
