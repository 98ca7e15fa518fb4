package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/job"
)

type JobHandler struct {
	uc  job.UseCase
	log *zap.Logger
}

func NewJobHandler(uc job.UseCase, log *zap.Logger) *JobHandler { return &JobHandler{uc: uc, log: log} }

type jobRequest struct {
	Title        string     `json:"title"`
	CompanyName  string     `json:"companyName"`
	Location     string     `json:"location"`
	SalaryRange  string     `json:"salaryRange"`
	JobType      string     `json:"jobType"`
	MinExp       int        `json:"minExp"`
	MaxExp       int        `json:"maxExp"`
	KeySkills    []string   `json:"keySkills"`
	IndustryType string     `json:"industryType"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Openings     int        `json:"openings"`
	ApplyBy      *time.Time `json:"applyBy"`
}

type updateJobRequest struct {
	Title        *string    `json:"title"`
	CompanyName  *string    `json:"companyName"`
	Location     *string    `json:"location"`
	SalaryRange  *string    `json:"salaryRange"`
	JobType      *string    `json:"jobType"`
	MinExp       *int       `json:"minExp"`
	MaxExp       *int       `json:"maxExp"`
	KeySkills    *[]string  `json:"keySkills"`
	IndustryType *string    `json:"industryType"`
	Category     *string    `json:"category"`
	Description  *string    `json:"description"`
	Openings     *int       `json:"openings"`
	ApplyBy      *time.Time `json:"applyBy"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// @Summary Создать вакансию
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body jobRequest true "Данные вакансии"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	var req jobRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	j, err := h.uc.Create(c.Context(), p, job.Job{
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		JobType:      req.JobType,
		MinExp:       req.MinExp,
		MaxExp:       req.MaxExp,
		KeySkills:    req.KeySkills,
		IndustryType: req.IndustryType,
		Category:     req.Category,
		Description:  req.Description,
		Openings:     req.Openings,
		ApplyBy:      req.ApplyBy,
	})
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, j)
}

// @Summary Получить вакансию по ID
// @Tags    jobs
// @Produce json
// @Param   id path string true "ID вакансии (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// @Summary Обновить вакансию
// @Description Обновляет только переданные поля.
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id    path string           true "ID вакансии (UUID)"
// @Param   input body updateJobRequest true "Изменяемые поля"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	var req updateJobRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	j, err := h.uc.Update(c.Context(), p, id, job.Update(req))
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// @Summary Изменить статус вакансии
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id    path string        true "ID вакансии (UUID)"
// @Param   input body statusRequest true "Active или In-Active"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/status [patch]
func (h *JobHandler) SetStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	j, err := h.uc.SetStatus(c.Context(), p, id, req.Status)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// @Summary Снять вакансию с публикации
// @Tags    jobs
// @Param   id path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), p, id); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary Список активных вакансий
// @Tags    jobs
// @Produce json
// @Param   title        query string false "Название"
// @Param   location     query string false "Локация"
// @Param   companyName  query string false "Компания (игнорируется вместе с title)"
// @Param   industryType query string false "Отрасль"
// @Param   category     query string false "Категория"
// @Param   jobType      query string false "Формат работы"
// @Param   minMaxExp    query int    false "Верхняя граница опыта"
// @Param   keySkills    query string false "Навыки через запятую"
// @Param   page         query int    false "Страница (по умолчанию 1)"
// @Success 200 {object} job.BoardPage
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobHandler) Board(c *fiber.Ctx) error {
	page, ok := positiveQuery(c, "page", 1)
	if !ok {
		return presenter.Fail(c, h.log, apperr.Invalid("Invalid page"))
	}
	f := job.BoardFilter{
		Title:        strings.TrimSpace(c.Query("title")),
		Location:     strings.TrimSpace(c.Query("location")),
		CompanyName:  strings.TrimSpace(c.Query("companyName")),
		IndustryType: strings.TrimSpace(c.Query("industryType")),
		Category:     strings.TrimSpace(c.Query("category")),
		JobType:      strings.TrimSpace(c.Query("jobType")),
	}
	if v := strings.TrimSpace(c.Query("minMaxExp")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return presenter.Fail(c, h.log, apperr.Invalid("Invalid minMaxExp"))
		}
		f.MaxExperience = &n
	}
	if v := c.Query("keySkills"); v != "" {
		f.KeySkills = strings.Split(v, ",")
	}
	res, err := h.uc.Board(c.Context(), f, page)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary Значения фильтров
// @Tags    jobs
// @Produce json
// @Success 200 {object} job.Facets
// @Router  /jobs/filters [get]
func (h *JobHandler) Filters(c *fiber.Ctx) error {
	f, err := h.uc.Facets(c.Context())
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, f)
}

// @Summary Количество вакансий по отраслям
// @Tags    jobs
// @Produce json
// @Success 200 {array} job.FacetCount
// @Router  /jobs/industries [get]
func (h *JobHandler) Industries(c *fiber.Ctx) error {
	stats, err := h.uc.IndustryStats(c.Context())
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, stats)
}
