package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/listing"
	"github.com/artem13815/jobboard/pkg/relation"
)

// relationTable держит общие запросы saved_jobs и applications. table — одна из
// двух констант и из запроса не приходит.
type relationTable struct {
	pool     *pgxpool.Pool
	table    string
	notFound string
}

// insert опирается на UNIQUE (candidate_id, job_id): повтор пары даёт Conflict.
func (t relationTable) insert(ctx context.Context, columns string, args ...any) error {
	placeholders := ""
	for i := range args {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
	}
	var id uuid.UUID
	err := t.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (candidate_id, job_id) DO NOTHING RETURNING id`,
		t.table, columns, placeholders), args...).Scan(&id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err):
		return apperr.Conflict(t.table + " row already exists")
	default:
		return apperr.Transient(err)
	}
}

func (t relationTable) Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error) {
	var ok bool
	err := t.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE candidate_id = $1 AND job_id = $2)`, t.table),
		candidateID, jobID).Scan(&ok)
	return ok, storeErr(err, t.notFound)
}

// FindByCandidate соединяет связи соискателя с активными вакансиями под f, свежие первыми.
func (t relationTable) FindByCandidate(ctx context.Context, candidateID uuid.UUID, f listing.JobFilter, offset, limit int) ([]relation.JobRef, int, error) {
	w := jobFilterSQL(newWhere().add("r.candidate_id = ?", candidateID), f)
	cond := w.sql()
	countArgs := append([]any(nil), w.args...)
	lim, off := w.next(limit), w.next(offset)
	from := fmt.Sprintf(`FROM %s r JOIN jobs j ON j.id = r.job_id WHERE %s`, t.table, cond)

	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) `+from, countArgs...)
	b.Queue(`SELECT `+jobColumns+`, r.created_at `+from+` ORDER BY r.created_at DESC, r.id LIMIT `+lim+` OFFSET `+off, w.args...)
	br := t.pool.SendBatch(ctx, b)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, storeErr(err, t.notFound)
	}
	rows, err := br.Query()
	if err != nil {
		return nil, 0, storeErr(err, t.notFound)
	}
	defer rows.Close()
	refs := make([]relation.JobRef, 0, limit)
	for rows.Next() {
		var at time.Time
		j, err := scanJob(rows, &at)
		if err != nil {
			return nil, 0, storeErr(err, t.notFound)
		}
		refs = append(refs, relation.JobRef{Job: j, At: at.UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr(err, t.notFound)
	}
	return refs, total, nil
}

// CountCreatedBetween считает строки соискателя, созданные в [from, to).
func (t relationTable) CountCreatedBetween(ctx context.Context, candidateID uuid.UUID, from, to time.Time) (int, error) {
	var n int
	err := t.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE candidate_id = $1 AND created_at >= $2 AND created_at < $3`, t.table),
		candidateID, from, to).Scan(&n)
	return n, storeErr(err, t.notFound)
}

// SavedJobRepository хранит сохранённые вакансии.
type SavedJobRepository struct {
	relationTable
}

func NewSavedJobRepository(pool *pgxpool.Pool) *SavedJobRepository {
	return &SavedJobRepository{relationTable{pool: pool, table: "saved_jobs", notFound: "Saved job not found"}}
}

func (r *SavedJobRepository) Create(ctx context.Context, s relation.SavedJob) error {
	return r.insert(ctx, "id, candidate_id, job_id, created_at", s.ID, s.CandidateID, s.JobID, s.CreatedAt)
}

func (r *SavedJobRepository) Delete(ctx context.Context, candidateID, jobID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	if err != nil {
		return storeErr(err, r.notFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(r.notFound)
	}
	return nil
}

// ApplicationRepository хранит отклики на вакансии.
type ApplicationRepository struct {
	relationTable
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{relationTable{pool: pool, table: "applications", notFound: "Application not found"}}
}

func (r *ApplicationRepository) Create(ctx context.Context, a relation.Application) error {
	return r.insert(ctx, "id, candidate_id, job_id, status, created_at, updated_at",
		a.ID, a.CandidateID, a.JobID, string(a.Status), a.CreatedAt, a.UpdatedAt)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (relation.Application, error) {
	var a relation.Application
	var status string
	err := r.pool.QueryRow(ctx, `
SELECT id, candidate_id, job_id, status, created_at, updated_at FROM applications WHERE id = $1
`, id).Scan(&a.ID, &a.CandidateID, &a.JobID, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return relation.Application{}, storeErr(err, r.notFound)
	}
	a.Status = relation.AppStatus(status)
	a.CreatedAt, a.UpdatedAt = a.CreatedAt.UTC(), a.UpdatedAt.UTC()
	return a, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status relation.AppStatus, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at)
	if err != nil {
		return storeErr(err, r.notFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(r.notFound)
	}
	return nil
}

func applicationFilterSQL(w *where, f relation.ApplicationFilter) *where {
	if f.PostedBy != uuid.Nil {
		w.add("j.posted_by = ?", f.PostedBy)
	}
	if f.JobID != uuid.Nil {
		w.add("a.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		w.add("a.status = ?", string(f.Status))
	}
	return w
}

// List отдаёт отклики со сводками соискателя и вакансии, свежие первыми.
func (r *ApplicationRepository) List(ctx context.Context, f relation.ApplicationFilter, limit, offset int) ([]relation.ApplicationView, int, error) {
	w := applicationFilterSQL(newWhere(), f)
	cond := w.sql()
	countArgs := append([]any(nil), w.args...)
	lim, off := w.next(limit), w.next(offset)
	from := `FROM applications a
JOIN candidates c ON c.id = a.candidate_id
JOIN jobs j ON j.id = a.job_id
WHERE ` + cond

	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) `+from, countArgs...)
	b.Queue(`SELECT a.id, a.candidate_id, a.job_id, a.status, a.created_at, a.updated_at,
	c.full_name, c.email, j.title, j.company_name `+from+`
ORDER BY a.created_at DESC, a.id LIMIT `+lim+` OFFSET `+off, w.args...)
	br := r.pool.SendBatch(ctx, b)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, storeErr(err, r.notFound)
	}
	rows, err := br.Query()
	if err != nil {
		return nil, 0, storeErr(err, r.notFound)
	}
	defer rows.Close()
	var out []relation.ApplicationView
	for rows.Next() {
		var v relation.ApplicationView
		var status string
		if err := rows.Scan(&v.ID, &v.CandidateID, &v.JobID, &status, &v.CreatedAt, &v.UpdatedAt,
			&v.CandidateName, &v.CandidateEmail, &v.JobTitle, &v.CompanyName); err != nil {
			return nil, 0, storeErr(err, r.notFound)
		}
		v.Status = relation.AppStatus(status)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr(err, r.notFound)
	}
	return out, total, nil
}
