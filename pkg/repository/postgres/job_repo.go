package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/listing"
)

const errJobNotFound = "Job not found"

const jobColumns = `j.id, j.posted_by, j.posted_by_role, j.title, j.company_name, j.location,
	j.salary_range, j.job_type, j.min_exp, j.max_exp, j.key_skills, j.industry_type, j.category,
	j.description, j.openings, j.apply_by, j.status, j.posted_at, j.updated_at`

// JobRepository хранит вакансии.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func scanJob(row pgx.Row, extra ...any) (job.Job, error) {
	var j job.Job
	var status string
	dest := []any{
		&j.ID, &j.PostedBy, &j.PostedByRole, &j.Title, &j.CompanyName, &j.Location,
		&j.SalaryRange, &j.JobType, &j.MinExp, &j.MaxExp, &j.KeySkills, &j.IndustryType, &j.Category,
		&j.Description, &j.Openings, &j.ApplyBy, &status, &j.PostedAt, &j.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	j.PostedAt = j.PostedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	if j.KeySkills == nil {
		j.KeySkills = []string{}
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, posted_by, posted_by_role, title, company_name, location, salary_range, job_type,
	min_exp, max_exp, key_skills, industry_type, category, description, openings, apply_by, status,
	posted_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
`, j.ID, j.PostedBy, j.PostedByRole, j.Title, j.CompanyName, j.Location, j.SalaryRange, j.JobType,
		j.MinExp, j.MaxExp, nonNil(j.KeySkills), j.IndustryType, j.Category, j.Description, j.Openings,
		j.ApplyBy, string(j.Status), j.PostedAt, j.UpdatedAt)
	return storeErr(err, errJobNotFound)
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id))
	if err != nil {
		return job.Job{}, storeErr(err, errJobNotFound)
	}
	return j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE jobs SET title = $2, company_name = $3, location = $4, salary_range = $5, job_type = $6,
	min_exp = $7, max_exp = $8, key_skills = $9, industry_type = $10, category = $11,
	description = $12, openings = $13, apply_by = $14, updated_at = $15
WHERE id = $1
`, j.ID, j.Title, j.CompanyName, j.Location, j.SalaryRange, j.JobType, j.MinExp, j.MaxExp,
		nonNil(j.KeySkills), j.IndustryType, j.Category, j.Description, j.Openings, j.ApplyBy, j.UpdatedAt)
	if err != nil {
		return storeErr(err, errJobNotFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(errJobNotFound)
	}
	return nil
}

func (r *JobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC())
	if err != nil {
		return storeErr(err, errJobNotFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(errJobNotFound)
	}
	return nil
}

// FindActive для рекомендаций: активные вакансии под f, свежие первыми.
func (r *JobRepository) FindActive(ctx context.Context, f listing.JobFilter, offset, limit int) ([]job.Job, int, error) {
	w := jobFilterSQL(newWhere(), f)
	return r.page(ctx, w, "j.posted_at DESC, j.id", offset, limit)
}

// ListBoard для публичной доски, недавно изменённые первыми.
func (r *JobRepository) ListBoard(ctx context.Context, f job.BoardFilter, limit, offset int) ([]job.Job, int, error) {
	w := boardFilterSQL(newWhere(), f)
	return r.page(ctx, w, "j.updated_at DESC, j.id", offset, limit)
}

// ListByPoster отдаёт вакансии автора, новые первыми.
func (r *JobRepository) ListByPoster(ctx context.Context, posterID uuid.UUID, f analytics.PosterJobFilter, limit, offset int) ([]job.Job, int, error) {
	w := posterFilterSQL(newWhere(), posterID, f)
	return r.page(ctx, w, "j.posted_at DESC, j.id", offset, limit)
}

func (r *JobRepository) ListByStatus(ctx context.Context, status job.Status, limit, offset int) ([]job.Job, int, error) {
	orderBy := "j.posted_at DESC, j.id"
	if status == job.StatusInactive {
		orderBy = "j.updated_at DESC, j.id"
	}
	return r.page(ctx, newWhere().add("j.status = ?", string(status)), orderBy, offset, limit)
}

// PosterFacets собирает различные локации (в нижнем регистре), статусы и типы занятости вакансий автора.
func (r *JobRepository) PosterFacets(ctx context.Context, posterID uuid.UUID) (analytics.PosterFacets, error) {
	var f analytics.PosterFacets
	err := r.pool.QueryRow(ctx, `
SELECT
	coalesce(array_agg(DISTINCT lower(j.location)), '{}'),
	coalesce(array_agg(DISTINCT j.status), '{}'),
	coalesce(array_agg(DISTINCT j.job_type), '{}')
FROM jobs j
WHERE j.posted_by = $1
`, posterID).Scan(&f.Locations, &f.Statuses, &f.JobTypes)
	if err != nil {
		return analytics.PosterFacets{}, storeErr(err, errJobNotFound)
	}
	return f, nil
}

// page считает подходящие строки и читает окно из них за один обмен.
func (r *JobRepository) page(ctx context.Context, w *where, orderBy string, offset, limit int) ([]job.Job, int, error) {
	countArgs := append([]any(nil), w.args...)
	cond := w.sql()
	lim, off := w.next(limit), w.next(offset)

	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) FROM jobs j WHERE `+cond, countArgs...)
	b.Queue(`SELECT `+jobColumns+` FROM jobs j WHERE `+cond+` ORDER BY `+orderBy+` LIMIT `+lim+` OFFSET `+off, w.args...)
	br := r.pool.SendBatch(ctx, b)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, storeErr(err, errJobNotFound)
	}
	rows, err := br.Query()
	if err != nil {
		return nil, 0, storeErr(err, errJobNotFound)
	}
	defer rows.Close()
	jobs := make([]job.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, storeErr(err, errJobNotFound)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr(err, errJobNotFound)
	}
	return jobs, total, nil
}

func (r *JobRepository) Facets(ctx context.Context) (job.Facets, error) {
	var f job.Facets
	var err error
	if f.Locations, err = r.countBy(ctx, "location", true); err != nil {
		return job.Facets{}, err
	}
	if f.JobTypes, err = r.countBy(ctx, "job_type", true); err != nil {
		return job.Facets{}, err
	}
	if f.IndustryTypes, err = r.countBy(ctx, "industry_type", true); err != nil {
		return job.Facets{}, err
	}
	return f, nil
}

func (r *JobRepository) IndustryStats(ctx context.Context) ([]job.FacetCount, error) {
	return r.countBy(ctx, "industry_type", false)
}

// countBy группирует вакансии по одной из фиксированных колонок; column не приходит от пользователя.
func (r *JobRepository) countBy(ctx context.Context, column string, activeOnly bool) ([]job.FacetCount, error) {
	q := `SELECT ` + column + `, count(*) FROM jobs`
	args := []any{}
	if activeOnly {
		q += ` WHERE status = $1`
		args = append(args, string(job.StatusActive))
	}
	q += ` GROUP BY ` + column + ` ORDER BY count(*) DESC, ` + column
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, storeErr(err, errJobNotFound)
	}
	defer rows.Close()
	out := []job.FacetCount{}
	for rows.Next() {
		var fc job.FacetCount
		if err := rows.Scan(&fc.Value, &fc.Count); err != nil {
			return nil, storeErr(err, errJobNotFound)
		}
		out = append(out, fc)
	}
	return out, storeErr(rows.Err(), errJobNotFound)
}

func (r *JobRepository) ActiveKeySkills(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT ON (lower(s)) s
FROM jobs j, unnest(j.key_skills) s
WHERE j.status = $1 AND btrim(s) <> ''
ORDER BY lower(s), s
`, string(job.StatusActive))
	if err != nil {
		return nil, storeErr(err, errJobNotFound)
	}
	skills, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storeErr(err, errJobNotFound)
	}
	return skills, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
