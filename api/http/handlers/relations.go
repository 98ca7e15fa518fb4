package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/relation"
)

// RelationHandler обслуживает сохранённые вакансии и отклики.
type RelationHandler struct {
	uc  relation.UseCase
	log *zap.Logger
}

func NewRelationHandler(uc relation.UseCase, log *zap.Logger) *RelationHandler {
	return &RelationHandler{uc: uc, log: log}
}

type pairRequest struct {
	CandidateID string `json:"candidateId"`
	JobID       string `json:"jobId"`
}

func (r pairRequest) ids() (candidateID, jobID uuid.UUID, err error) {
	if candidateID, err = uuid.Parse(strings.TrimSpace(r.CandidateID)); err != nil {
		return uuid.Nil, uuid.Nil, apperr.Invalid("Invalid candidateId")
	}
	if jobID, err = uuid.Parse(strings.TrimSpace(r.JobID)); err != nil {
		return uuid.Nil, uuid.Nil, apperr.Invalid("Invalid jobId")
	}
	return candidateID, jobID, nil
}

func (h *RelationHandler) pairFromBody(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	var req pairRequest
	if err := bindJSON(c, &req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return req.ids()
}

func (h *RelationHandler) pairFromPath(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	return pairRequest{CandidateID: c.Params("candidateId"), JobID: c.Params("jobId")}.ids()
}

// @Summary Сохранить вакансию
// @Tags    saved-jobs
// @Accept  json
// @Produce json
// @Param   input body pairRequest true "Соискатель и вакансия"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /saved-jobs [post]
func (h *RelationHandler) Save(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	candidateID, jobID, err := h.pairFromBody(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	sj, err := h.uc.Save(c.Context(), p, candidateID, jobID)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"message": "Job saved successfully", "savedJob": sj})
}

// @Summary Убрать вакансию из сохранённых
// @Tags    saved-jobs
// @Produce json
// @Param   candidateId path string true "ID соискателя (UUID)"
// @Param   jobId       path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /saved-jobs/{candidateId}/{jobId} [delete]
func (h *RelationHandler) Unsave(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	candidateID, jobID, err := h.pairFromPath(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	if err := h.uc.Unsave(c.Context(), p, candidateID, jobID); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Job unsaved successfully"})
}

// @Summary Сохранена ли вакансия
// @Tags    saved-jobs
// @Produce json
// @Param   candidateId path string true "ID соискателя (UUID)"
// @Param   jobId       path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]int "saved: 1 or 0"
// @Router  /saved-jobs/status/{candidateId}/{jobId} [get]
func (h *RelationHandler) SavedStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	candidateID, jobID, err := h.pairFromPath(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	ok, err := h.uc.IsSaved(c.Context(), p, candidateID, jobID)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"saved": flag(ok)})
}

// @Summary Откликнуться на вакансию
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   input body pairRequest true "Соискатель и вакансия"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *RelationHandler) Apply(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	candidateID, jobID, err := h.pairFromBody(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	a, err := h.uc.Apply(c.Context(), p, candidateID, jobID)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"message": "Job applied successfully", "application": a})
}

// @Summary Есть ли отклик на вакансию
// @Tags    applications
// @Produce json
// @Param   candidateId path string true "ID соискателя (UUID)"
// @Param   jobId       path string true "ID вакансии (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]int "applied: 1 or 0"
// @Router  /applications/status/{candidateId}/{jobId} [get]
func (h *RelationHandler) AppliedStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	candidateID, jobID, err := h.pairFromPath(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	ok, err := h.uc.HasApplied(c.Context(), p, candidateID, jobID)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"applied": flag(ok)})
}

// @Summary Сменить статус отклика
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   id    path string        true "ID отклика (UUID)"
// @Param   input body statusRequest true "new, shortlisted, interview, hired или rejected"
// @Security BearerAuth
// @Success 200 {object} relation.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id}/status [patch]
func (h *RelationHandler) SetStatus(c *fiber.Ctx) error {
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
	a, err := h.uc.SetApplicationStatus(c.Context(), p, id, req.Status)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// @Summary Отклики на вакансии вызывающего
// @Tags    applications
// @Produce json
// @Param   page   query int    false "Номер страницы (по умолчанию 1)"
// @Param   jobId  query string false "Только эта вакансия"
// @Param   status query string false "Только этот статус"
// @Security BearerAuth
// @Success 200 {object} relation.ApplicationPage
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /applications [get]
func (h *RelationHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	page, ok := positiveQuery(c, "page", 1)
	if !ok {
		return presenter.Fail(c, h.log, apperr.Invalid("Invalid page"))
	}
	f := relation.ApplicationFilter{Status: relation.AppStatus(strings.TrimSpace(c.Query("status")))}
	if v := strings.TrimSpace(c.Query("jobId")); v != "" {
		if f.JobID, err = uuid.Parse(v); err != nil {
			return presenter.Fail(c, h.log, apperr.Invalid("Invalid jobId"))
		}
	}
	res, err := h.uc.ListApplications(c.Context(), p, f, page)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

func flag(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
