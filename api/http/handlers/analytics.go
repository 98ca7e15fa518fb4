package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
)

// AnalyticsHandler обслуживает панели работодателя и администратора.
type AnalyticsHandler struct {
	uc  analytics.UseCase
	log *zap.Logger
}

func NewAnalyticsHandler(uc analytics.UseCase, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

func (h *AnalyticsHandler) posterScope(c *fiber.Ctx) (auth.Principal, uuid.UUID, error) {
	p, err := principal(c)
	if err != nil {
		return auth.Principal{}, uuid.Nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return auth.Principal{}, uuid.Nil, apperr.Invalid("Invalid employer ID")
	}
	return p, id, nil
}

// @Summary Сводка работодателя
// @Description Активные вакансии, все отклики, отобранные, отклики за сегодня и интервью.
// @Tags    employers
// @Produce json
// @Param   id path string true "ID работодателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string][]analytics.Tile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /employers/{id}/stats [get]
func (h *AnalyticsHandler) EmployerStats(c *fiber.Ctx) error {
	p, id, err := h.posterScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	tiles, err := h.uc.EmployerStats(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"stats": tiles})
}

// @Summary Отклики по месяцам
// @Description Двенадцать значений: январь..декабрь текущего года.
// @Tags    employers
// @Produce json
// @Param   id path string true "ID работодателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string][]int
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /employers/{id}/application-trends [get]
func (h *AnalyticsHandler) ApplicationTrends(c *fiber.Ctx) error {
	p, id, err := h.posterScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	months, err := h.uc.ApplicationTrends(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"data": months})
}

// @Summary Последние отклики
// @Tags    employers
// @Produce json
// @Param   id   path  string true  "ID работодателя (UUID)"
// @Param   page query int    false "Номер страницы (по умолчанию 1)"
// @Security BearerAuth
// @Success 200 {object} analytics.ApplicantPage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /employers/{id}/recent-applicants [get]
func (h *AnalyticsHandler) RecentApplicants(c *fiber.Ctx) error {
	p, id, err := h.posterScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	page, ok := positiveQuery(c, "page", 1)
	if !ok {
		return presenter.Fail(c, h.log, apperr.Invalid("Invalid page or limit"))
	}
	res, err := h.uc.RecentApplicants(c.Context(), p, id, page)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Вакансии работодателя
// @Tags    employers
// @Produce json
// @Param   id       path  string true  "ID работодателя (UUID)"
// @Param   page     query int    false "Номер страницы (по умолчанию 1)"
// @Param   limit    query int    false "Размер страницы (по умолчанию 10, максимум 100)"
// @Param   status   query string false "Active или In-Active"
// @Param   jobType  query string false "Тип занятости"
// @Param   location query string false "Локация"
// @Security BearerAuth
// @Success 200 {object} analytics.PosterJobsPage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /employers/{id}/jobs [get]
func (h *AnalyticsHandler) PosterJobs(c *fiber.Ctx) error {
	p, id, err := h.posterScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	page, limit, err := parsePageLimit(c, analytics.DefaultJobsLimit)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	f := analytics.PosterJobFilter{
		Status:   job.Status(c.Query("status")),
		JobType:  c.Query("jobType"),
		Location: c.Query("location"),
	}
	res, err := h.uc.PosterJobs(c.Context(), p, id, f, page, limit)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Фильтры по вакансиям работодателя
// @Tags    employers
// @Produce json
// @Param   id path string true "ID работодателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} analytics.PosterFacets
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /employers/{id}/job-filters [get]
func (h *AnalyticsHandler) PosterFacets(c *fiber.Ctx) error {
	p, id, err := h.posterScope(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	f, err := h.uc.PosterFacets(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"data": f})
}

// @Summary Активные вакансии (админ)
// @Tags    admin
// @Produce json
// @Param   offset query int false "Смещение (по умолчанию 0)"
// @Param   limit  query int false "Размер порции (по умолчанию 10, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} analytics.AdminJobsPage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/jobs [get]
func (h *AnalyticsHandler) ActiveJobs(c *fiber.Ctx) error {
	return h.adminJobs(c, job.StatusActive)
}

// @Summary Снятые вакансии (админ)
// @Tags    admin
// @Produce json
// @Param   offset query int false "Смещение (по умолчанию 0)"
// @Param   limit  query int false "Размер порции (по умолчанию 10, максимум 100)"
// @Security BearerAuth
// @Success 200 {object} analytics.AdminJobsPage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/jobs/inactive [get]
func (h *AnalyticsHandler) InactiveJobs(c *fiber.Ctx) error {
	return h.adminJobs(c, job.StatusInactive)
}

func (h *AnalyticsHandler) adminJobs(c *fiber.Ctx, status job.Status) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	offset, okOffset := intQuery(c, "offset", 0, 0)
	limit, okLimit := positiveQuery(c, "limit", analytics.DefaultJobsLimit)
	if !okOffset || !okLimit {
		return presenter.Fail(c, h.log, apperr.Invalid("Invalid offset or limit"))
	}
	res, err := h.uc.AdminJobs(c.Context(), p, status, offset, limit)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Сводка администратора
// @Description Изменения к прошлому месяцу по вакансиям и новым соискателям.
// @Tags    admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]analytics.AdminTile
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/stats [get]
func (h *AnalyticsHandler) AdminStats(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	tiles, err := h.uc.AdminStats(c.Context(), p)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"data": tiles})
}
