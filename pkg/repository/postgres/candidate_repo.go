package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/candidate"
)

const errCandidateNotFound = "Candidate not found"

// CandidateRepository хранит профили соискателей; списки опыта, образования и проектов лежат в JSONB.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

type candidateDocs struct {
	experience, education, projects []byte
}

func encodeDocs(c candidate.Candidate) (candidateDocs, error) {
	var d candidateDocs
	var err error
	if d.experience, err = json.Marshal(nonNilSlice(c.Experience)); err != nil {
		return d, fmt.Errorf("encode experience: %w", err)
	}
	if d.education, err = json.Marshal(nonNilSlice(c.Education)); err != nil {
		return d, fmt.Errorf("encode education: %w", err)
	}
	if d.projects, err = json.Marshal(nonNilSlice(c.Projects)); err != nil {
		return d, fmt.Errorf("encode projects: %w", err)
	}
	return d, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	d, err := encodeDocs(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO candidates (id, created_by, full_name, email, phone, city, about, profile_image, skills,
	preferred_location, total_experience, expected_salary, preferred_job_type, notice_period,
	resume_url, experience, education, projects, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
`, c.ID, c.CreatedBy, c.FullName, c.Email, c.Phone, c.City, c.About, c.ProfileImage, nonNil(c.Skills),
		c.PreferredLocation, c.TotalExperience, c.ExpectedSalary, c.PreferredJobType, c.NoticePeriod,
		c.ResumeURL, string(d.experience), string(d.education), string(d.projects), c.CreatedAt, c.UpdatedAt)
	if isUniqueViolation(err) {
		return apperr.Conflict("candidate profile already exists")
	}
	return storeErr(err, errCandidateNotFound)
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	var c candidate.Candidate
	var exp, edu, proj []byte
	err := r.pool.QueryRow(ctx, `
SELECT id, created_by, full_name, email, phone, city, about, profile_image, skills, preferred_location,
	total_experience, expected_salary, preferred_job_type, notice_period, resume_url,
	experience, education, projects, created_at, updated_at
FROM candidates WHERE id = $1
`, id).Scan(&c.ID, &c.CreatedBy, &c.FullName, &c.Email, &c.Phone, &c.City, &c.About, &c.ProfileImage, &c.Skills,
		&c.PreferredLocation, &c.TotalExperience, &c.ExpectedSalary, &c.PreferredJobType, &c.NoticePeriod,
		&c.ResumeURL, &exp, &edu, &proj, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return candidate.Candidate{}, storeErr(err, errCandidateNotFound)
	}
	// битые документы не должны прятать остальной профиль
	_ = json.Unmarshal(exp, &c.Experience)
	_ = json.Unmarshal(edu, &c.Education)
	_ = json.Unmarshal(proj, &c.Projects)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *CandidateRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE id = $1)`, id).Scan(&ok)
	return ok, storeErr(err, errCandidateNotFound)
}

func (r *CandidateRepository) Update(ctx context.Context, c candidate.Candidate) error {
	d, err := encodeDocs(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE candidates SET full_name = $2, phone = $3, city = $4, about = $5, profile_image = $6,
	skills = $7, preferred_location = $8, total_experience = $9, expected_salary = $10,
	preferred_job_type = $11, notice_period = $12, experience = $13, education = $14,
	projects = $15, updated_at = $16
WHERE id = $1
`, c.ID, c.FullName, c.Phone, c.City, c.About, c.ProfileImage, nonNil(c.Skills), c.PreferredLocation,
		c.TotalExperience, c.ExpectedSalary, c.PreferredJobType, c.NoticePeriod,
		string(d.experience), string(d.education), string(d.projects), c.UpdatedAt)
	if err != nil {
		return storeErr(err, errCandidateNotFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(errCandidateNotFound)
	}
	return nil
}

func (r *CandidateRepository) SaveResume(ctx context.Context, id uuid.UUID, url, text string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE candidates SET resume_url = $2, resume_text = $3, updated_at = now() WHERE id = $1
`, id, url, text)
	if err != nil {
		return storeErr(err, errCandidateNotFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(errCandidateNotFound)
	}
	return nil
}

func (r *CandidateRepository) GetResumeText(ctx context.Context, id uuid.UUID) (string, error) {
	var text string
	err := r.pool.QueryRow(ctx, `SELECT resume_text FROM candidates WHERE id = $1`, id).Scan(&text)
	return text, storeErr(err, errCandidateNotFound)
}
