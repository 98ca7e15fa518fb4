package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/candidate"
)

// CandidateHandler управляет профилями соискателей и резюме.
type CandidateHandler struct {
	uc       candidate.UseCase
	maxBytes int64
	log      *zap.Logger
}

func NewCandidateHandler(uc candidate.UseCase, maxUploadMB int, log *zap.Logger) *CandidateHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 15
	}
	return &CandidateHandler{uc: uc, maxBytes: int64(maxUploadMB) << 20, log: log}
}

type candidateRequest struct {
	FullName          string                     `json:"fullName"`
	Email             string                     `json:"email"`
	Phone             string                     `json:"phone"`
	City              string                     `json:"city"`
	About             string                     `json:"about"`
	ProfileImage      string                     `json:"profileImage"`
	Skills            []string                   `json:"skills"`
	PreferredLocation string                     `json:"preferredLocation"`
	TotalExperience   string                     `json:"totalExperience"`
	ExpectedSalary    string                     `json:"expectedSalary"`
	PreferredJobType  string                     `json:"preferredJobType"`
	NoticePeriod      string                     `json:"noticePeriod"`
	Experience        []candidate.ExperienceItem `json:"experience"`
	Education         []candidate.EducationItem  `json:"education"`
	Projects          []candidate.Project        `json:"projects"`
}

type updateCandidateRequest struct {
	FullName          *string                     `json:"fullName"`
	Phone             *string                     `json:"phone"`
	City              *string                     `json:"city"`
	About             *string                     `json:"about"`
	ProfileImage      *string                     `json:"profileImage"`
	Skills            *[]string                   `json:"skills"`
	PreferredLocation *string                     `json:"preferredLocation"`
	TotalExperience   *string                     `json:"totalExperience"`
	ExpectedSalary    *string                     `json:"expectedSalary"`
	PreferredJobType  *string                     `json:"preferredJobType"`
	NoticePeriod      *string                     `json:"noticePeriod"`
	Experience        *[]candidate.ExperienceItem `json:"experience"`
	Education         *[]candidate.EducationItem  `json:"education"`
	Projects          *[]candidate.Project        `json:"projects"`
}

// Create создаёт профиль вызывающего; рекрутер и админ могут создать любой.
// @Summary Создать профиль соискателя
// @Tags    candidates
// @Accept  json
// @Produce json
// @Param   input body candidateRequest true "Профиль"
// @Security BearerAuth
// @Success 201 {object} candidate.Candidate
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /candidates [post]
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	var req candidateRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	cand, err := h.uc.Create(c.Context(), p, candidate.Candidate{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		City:              req.City,
		About:             req.About,
		ProfileImage:      req.ProfileImage,
		Skills:            req.Skills,
		PreferredLocation: req.PreferredLocation,
		TotalExperience:   req.TotalExperience,
		ExpectedSalary:    req.ExpectedSalary,
		PreferredJobType:  req.PreferredJobType,
		NoticePeriod:      req.NoticePeriod,
		Experience:        req.Experience,
		Education:         req.Education,
		Projects:          req.Projects,
	})
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusCreated, cand)
}

// @Summary Получить профиль соискателя
// @Tags    candidates
// @Produce json
// @Param   id path string true "ID соискателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} candidate.Candidate
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [get]
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	cand, err := h.uc.Get(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, cand)
}

// @Summary Обновить профиль соискателя
// @Description Меняются только переданные поля; список заменяет сохранённый целиком.
// @Tags    candidates
// @Accept  json
// @Produce json
// @Param   id    path string                 true "ID соискателя (UUID)"
// @Param   input body updateCandidateRequest true "Изменённые поля"
// @Security BearerAuth
// @Success 200 {object} candidate.Candidate
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [put]
func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	var req updateCandidateRequest
	if err := bindJSON(c, &req); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	cand, err := h.uc.Update(c.Context(), p, id, candidate.ProfileUpdate(req))
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, cand)
}

// UploadResume сохраняет резюме PDF или DOCX и его текст для подсказок навыков.
// @Summary Загрузить резюме
// @Tags    candidates
// @Accept  multipart/form-data
// @Produce json
// @Param   id     path     string true "ID соискателя (UUID)"
// @Param   resume formData file   true "Резюме (PDF или DOCX)"
// @Security BearerAuth
// @Success 200 {object} candidate.Candidate
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id}/resume [post]
func (h *CandidateHandler) UploadResume(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return presenter.Fail(c, h.log, apperr.Invalid("resume file is required (pdf or docx)"))
	}
	if _, err := candidate.ResumeExt(fh.Filename); err != nil {
		return presenter.Fail(c, h.log, err)
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Fail(c, h.log, apperr.Invalid("failed to open uploaded file"))
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	cand, err := h.uc.UploadResume(c.Context(), p, id, fh.Filename, data)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, cand)
}

// @Summary Навыки из резюме
// @Tags    candidates
// @Produce json
// @Param   id path string true "ID соискателя (UUID)"
// @Security BearerAuth
// @Success 200 {object} candidate.SkillSuggestions
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id}/resume/skills [get]
func (h *CandidateHandler) SuggestSkills(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	res, err := h.uc.SuggestSkills(c.Context(), p, id)
	if err != nil {
		return presenter.Fail(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}
