package candidate

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/nlp"
)

const errNotFound = "Candidate not found"

// UseCase управляет профилями соискателей и их резюме.
type UseCase interface {
	Create(ctx context.Context, p auth.Principal, c Candidate) (Candidate, error)
	// Authorize проверяет, что профиль существует и вызывающий может действовать от его имени:
	// сам соискатель, админ или рекрутер, создавший профиль.
	Authorize(ctx context.Context, p auth.Principal, id uuid.UUID) error
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Candidate, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, u ProfileUpdate) (Candidate, error)
	UploadResume(ctx context.Context, p auth.Principal, id uuid.UUID, filename string, data []byte) (Candidate, error)
	SuggestSkills(ctx context.Context, p auth.Principal, id uuid.UUID) (SkillSuggestions, error)
}

// SkillSuggestions сравнивает текст резюме с ключевыми навыками активных вакансий.
type SkillSuggestions struct {
	// Found — навыки вакансий, найденные в резюме.
	Found []string `json:"found"`
	// Missing — найденные навыки, которых нет в профиле.
	Missing []string `json:"missing"`
}

type service struct {
	repo   Repository
	files  FileStore
	skills SkillSource
	now    func() time.Time
}

func NewService(repo Repository, files FileStore, skills SkillSource) UseCase {
	return &service{repo: repo, files: files, skills: skills, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, p auth.Principal, c Candidate) (Candidate, error) {
	switch {
	case p.Role == auth.RoleCandidate:
		c.ID = p.UserID
	case p.IsAdmin() || p.Role == auth.RoleRecruiter:
		c.ID = uuid.New()
	default:
		return Candidate{}, apperr.Forbidden("you cannot create candidate profiles")
	}
	c.CreatedBy = p.UserID
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if err := validate(c); err != nil {
		return Candidate{}, err
	}
	// поля резюме заполняет только UploadResume
	c.ResumeURL = ""
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.repo.Create(ctx, c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (s *service) Authorize(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if p.ActsFor(id) {
		ok, err := s.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound(errNotFound)
		}
		return nil
	}
	if p.Role == auth.RoleRecruiter {
		c, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c.CreatedBy == p.UserID {
			return nil
		}
	}
	return apperr.Forbidden("you can only act for your own candidate profiles")
}

func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Candidate, error) {
	if !p.ActsFor(id) && !p.CanPostJobs() {
		return Candidate{}, apperr.Forbidden("you cannot view this profile")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, u ProfileUpdate) (Candidate, error) {
	if err := s.Authorize(ctx, p, id); err != nil {
		return Candidate{}, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	c = u.Apply(c)
	c.FullName = strings.TrimSpace(c.FullName)
	if err := validate(c); err != nil {
		return Candidate{}, err
	}
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

func (s *service) UploadResume(ctx context.Context, p auth.Principal, id uuid.UUID, filename string, data []byte) (Candidate, error) {
	if err := s.Authorize(ctx, p, id); err != nil {
		return Candidate{}, err
	}
	ext, err := ResumeExt(filename)
	if err != nil {
		return Candidate{}, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	text, err := ParseResumeText(filename, data)
	if err != nil {
		return Candidate{}, err
	}
	if text == "" {
		return Candidate{}, apperr.Invalid("empty resume content")
	}
	url, err := s.files.Save(ctx, id, ext, data)
	if err != nil {
		return Candidate{}, err
	}
	if err := s.repo.SaveResume(ctx, id, url, text); err != nil {
		return Candidate{}, err
	}
	c.ResumeURL = url
	return c, nil
}

func (s *service) SuggestSkills(ctx context.Context, p auth.Principal, id uuid.UUID) (SkillSuggestions, error) {
	c, err := s.Get(ctx, p, id)
	if err != nil {
		return SkillSuggestions{}, err
	}
	text, err := s.repo.GetResumeText(ctx, id)
	if err != nil {
		return SkillSuggestions{}, err
	}
	if text == "" {
		return SkillSuggestions{}, apperr.NotFound("resume not uploaded")
	}
	pool, err := s.skills.ActiveKeySkills(ctx)
	if err != nil {
		return SkillSuggestions{}, err
	}
	res := SkillSuggestions{Found: nlp.FindSkills(text, pool), Missing: []string{}}
	if res.Found == nil {
		res.Found = []string{}
	}
	have := make(map[string]struct{}, len(c.Skills))
	for _, sk := range c.Skills {
		have[nlp.NormalizeText(sk)] = struct{}{}
	}
	for _, sk := range res.Found {
		if _, ok := have[nlp.NormalizeText(sk)]; !ok {
			res.Missing = append(res.Missing, sk)
		}
	}
	return res, nil
}

func validate(c Candidate) error {
	if c.FullName == "" {
		return apperr.Invalid("fullName is required")
	}
	if c.Email == "" {
		return apperr.Invalid("email is required")
	}
	return nil
}
