package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/candidate"
	"github.com/artem13815/jobboard/pkg/listing"
	"github.com/artem13815/jobboard/pkg/profile"
)

type JobLister interface {
	List(ctx context.Context, candidateID uuid.UUID, q listing.Query) (listing.Page, error)
}

type StatsReader interface {
	Stats(ctx context.Context, candidateID uuid.UUID) (profile.Stats, error)
}

// DashboardHandler обслуживает панель соискателя.
type DashboardHandler struct {
	listings   JobLister
	candidates candidate.UseCase
	stats      StatsReader
	defLimit   int
	log        *zap.Logger
}

func NewDashboardHandler(listings JobLister, candidates candidate.UseCase, stats StatsReader, defLimit int, log *zap.Logger) *DashboardHandler {
	if defLimit <= 0 {
		defLimit = listing.DefaultLimit
	}
	return &DashboardHandler{listings: listings, candidates: candidates, stats: stats, defLimit: defLimit, log: log}
}

// candidateScope разбирает :candidateId и проверяет, что вызывающий может действовать за соискателя.
func (h *DashboardHandler) candidateScope(c *fiber.Ctx) (uuid.UUID, error) {
	p, err := principal(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuidParam(c, "candidateId")
	if err != nil {
		return uuid.Nil, err
	}
	if err := h.candidates.Authorize(c.Context(), p, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (h *DashboardHandler) list(c *fiber.Ctx, mode listing.Mode, search string) error {
	id, err := h.candidateScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	page, limit, err := parsePageLimit(c, h.defLimit)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	q, err := listing.BuildQuery(mode, search, page, limit)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	res, err := h.listings.List(c.Context(), id, q)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// Recommended отдаёт активные вакансии, совпавшие с соискателем хотя бы по двум критериям, лучшие первыми.
// @Summary Рекомендованные вакансии
// @Tags    dashboard
// @Produce json
// @Param   candidateId path  string true  "ID соискателя (UUID)"
// @Param   page        query int    false "Номер страницы (по умолчанию 1)"
// @Param   limit       query int    false "Размер страницы (по умолчанию 9, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} listing.Page
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/recommended/{candidateId} [get]
func (h *DashboardHandler) Recommended(c *fiber.Ctx) error {
	return h.list(c, listing.ModeRecommended, "")
}

// Saved отдаёт сохранённые вакансии, последние сохранённые первыми.
// @Summary Сохранённые вакансии
// @Tags    dashboard
// @Produce json
// @Param   candidateId path  string true  "ID соискателя (UUID)"
// @Param   page        query int    false "Номер страницы (по умолчанию 1)"
// @Param   limit       query int    false "Размер страницы (по умолчанию 9, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} listing.Page
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/saved-job/{candidateId} [get]
func (h *DashboardHandler) Saved(c *fiber.Ctx) error {
	return h.list(c, listing.ModeSaved, "")
}

// Applied отдаёт вакансии с откликом соискателя, свежие отклики первыми.
// @Summary Вакансии с откликом
// @Tags    dashboard
// @Produce json
// @Param   candidateId path  string true  "ID соискателя (UUID)"
// @Param   page        query int    false "Номер страницы (по умолчанию 1)"
// @Param   limit       query int    false "Размер страницы (по умолчанию 9, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} listing.Page
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/applied-job/{candidateId} [get]
func (h *DashboardHandler) Applied(c *fiber.Ctx) error {
	return h.list(c, listing.ModeApplied, "")
}

// Search сужает один из трёх списков подстрокой названия, компании или локации.
// @Summary Поиск по вакансиям панели
// @Tags    dashboard
// @Produce json
// @Param   candidateId path  string true  "ID соискателя (UUID)"
// @Param   type        query string true  "recommended, saved или applied"
// @Param   search      query string false "Подстрока названия, компании или локации"
// @Param   page        query int    false "Номер страницы (по умолчанию 1)"
// @Param   limit       query int    false "Размер страницы (по умолчанию 9, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} listing.Page
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/search/{candidateId} [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	typ := strings.TrimSpace(c.Query("type"))
	if typ == "" {
		return presenter.Fail(c, h.log, apperr.Invalid("candidateId and type are required"))
	}
	mode, err := listing.ParseMode(typ)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return h.list(c, mode, c.Query("search"))
}

// ProfileTasks возвращает чек-лист заполнения профиля.
// @Summary Задачи по профилю
// @Tags    dashboard
// @Produce json
// @Param   candidateId path string true "ID соискателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} profile.Checklist
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/profile-tasks/{candidateId} [get]
func (h *DashboardHandler) ProfileTasks(c *fiber.Ctx) error {
	id, err := h.candidateScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	p, _ := principal(c)
	cand, err := h.candidates.Get(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, profile.Tasks(cand))
}

// CandidateStats возвращает активность за месяц и полноту профиля.
// @Summary Статистика соискателя
// @Tags    dashboard
// @Produce json
// @Param   candidateId path string true "ID соискателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} profile.Stats
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /dashboard/candidate-stats/{candidateId} [get]
func (h *DashboardHandler) CandidateStats(c *fiber.Ctx) error {
	id, err := h.candidateScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	st, err := h.stats.Stats(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}
