package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/relation"
)

const errPosterNotFound = "Employer not found"

// AnalyticsRepository считает отклики и вакансии для панелей работодателя и администратора.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) PosterExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = ANY($2))`,
		id, []string{string(auth.RoleEmployer), string(auth.RoleRecruiter), string(auth.RoleAdmin)}).Scan(&ok)
	return ok, storeErr(err, errPosterNotFound)
}

// EmployerCounts читает число активных вакансий и счётчики откликов за один проход.
func (r *AnalyticsRepository) EmployerCounts(ctx context.Context, posterID uuid.UUID, todayStart time.Time) (analytics.EmployerCounts, error) {
	jobsW := posterFilterSQL(newWhere(), posterID, analytics.PosterJobFilter{Status: job.StatusActive})

	appsW := applicationFilterSQL(newWhere(), relation.ApplicationFilter{PostedBy: posterID})
	cond := appsW.sql()
	shortlisted := appsW.next(string(relation.StatusShortlisted))
	since := appsW.next(todayStart)
	interview := appsW.next(string(relation.StatusInterview))

	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) FROM jobs j WHERE `+jobsW.sql(), jobsW.args...)
	b.Queue(`
SELECT count(*),
	count(*) FILTER (WHERE a.status = `+shortlisted+`),
	count(*) FILTER (WHERE a.created_at >= `+since+`),
	count(*) FILTER (WHERE a.status = `+interview+`)
FROM applications a JOIN jobs j ON j.id = a.job_id
WHERE `+cond, appsW.args...)
	br := r.pool.SendBatch(ctx, b)
	defer br.Close()

	var c analytics.EmployerCounts
	if err := br.QueryRow().Scan(&c.ActiveJobs); err != nil {
		return analytics.EmployerCounts{}, storeErr(err, errPosterNotFound)
	}
	if err := br.QueryRow().Scan(&c.TotalApplicants, &c.Shortlisted, &c.AppliedToday, &c.Interviews); err != nil {
		return analytics.EmployerCounts{}, storeErr(err, errPosterNotFound)
	}
	return c, nil
}

func (r *AnalyticsRepository) MonthlyApplications(ctx context.Context, posterID uuid.UUID, rng analytics.Range) (map[int]int, error) {
	w := applicationFilterSQL(newWhere(), relation.ApplicationFilter{PostedBy: posterID})
	w.add("a.created_at >= ?", rng.From)
	w.add("a.created_at < ?", rng.To)
	rows, err := r.pool.Query(ctx, `
SELECT extract(month FROM a.created_at AT TIME ZONE 'UTC')::int, count(*)
FROM applications a JOIN jobs j ON j.id = a.job_id
WHERE `+w.sql()+`
GROUP BY 1`, w.args...)
	if err != nil {
		return nil, storeErr(err, errPosterNotFound)
	}
	defer rows.Close()
	out := map[int]int{}
	for rows.Next() {
		var month, n int
		if err := rows.Scan(&month, &n); err != nil {
			return nil, storeErr(err, errPosterNotFound)
		}
		out[month] = n
	}
	return out, storeErr(rows.Err(), errPosterNotFound)
}

// RecentApplicants отдаёт страницу откликов на вакансии автора, свежие первыми.
func (r *AnalyticsRepository) RecentApplicants(ctx context.Context, posterID uuid.UUID, limit, offset int) ([]analytics.Applicant, int, error) {
	w := applicationFilterSQL(newWhere(), relation.ApplicationFilter{PostedBy: posterID})
	cond := w.sql()
	countArgs := append([]any(nil), w.args...)
	lim, off := w.next(limit), w.next(offset)
	from := `FROM applications a
JOIN candidates c ON c.id = a.candidate_id
JOIN jobs j ON j.id = a.job_id
WHERE ` + cond

	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) `+from, countArgs...)
	b.Queue(`SELECT a.id, a.candidate_id, c.full_name, c.phone, c.email, j.title, c.total_experience,
	c.skills, c.resume_url, a.created_at, a.status `+from+`
ORDER BY a.created_at DESC, a.id LIMIT `+lim+` OFFSET `+off, w.args...)
	br := r.pool.SendBatch(ctx, b)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, storeErr(err, errPosterNotFound)
	}
	rows, err := br.Query()
	if err != nil {
		return nil, 0, storeErr(err, errPosterNotFound)
	}
	defer rows.Close()
	out := make([]analytics.Applicant, 0, limit)
	for rows.Next() {
		var a analytics.Applicant
		var status string
		if err := rows.Scan(&a.ID, &a.ApplicantID, &a.Name, &a.Phone, &a.Email, &a.Position, &a.Experience,
			&a.Skills, &a.ResumeURL, &a.AppliedAt, &status); err != nil {
			return nil, 0, storeErr(err, errPosterNotFound)
		}
		a.Status = relation.AppStatus(status)
		a.AppliedAt = a.AppliedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr(err, errPosterNotFound)
	}
	return out, total, nil
}

// AdminCounts собирает все счётчики сводки администратора одним пакетом запросов.
func (r *AnalyticsRepository) AdminCounts(ctx context.Context, cur, prev analytics.Range) (analytics.AdminCounts, error) {
	active := string(job.StatusActive)
	b := &pgx.Batch{}
	b.Queue(`SELECT count(*) FROM jobs WHERE status = $1`, active)
	b.Queue(`SELECT count(*) FROM jobs WHERE status = $1 AND apply_by >= $2 AND apply_by < $3`, active, cur.From, cur.To)
	b.Queue(`SELECT count(*) FROM jobs WHERE status = $1 AND apply_by >= $2 AND apply_by < $3`, active, prev.From, prev.To)
	b.Queue(`SELECT count(*) FROM candidates WHERE created_at >= $1 AND created_at < $2`, cur.From, cur.To)
	b.Queue(`SELECT count(*) FROM candidates WHERE created_at >= $1 AND created_at < $2`, prev.From, prev.To)
	br := r.pool.SendBatch(ctx, b)
	defer br.Close()

	var c analytics.AdminCounts
	for _, dst := range []*int{
		&c.ActiveJobs,
		&c.ActiveClosingCurrent,
		&c.ActiveClosingPrevious,
		&c.CandidatesCurrent,
		&c.CandidatesPrevious,
	} {
		if err := br.QueryRow().Scan(dst); err != nil {
			return analytics.AdminCounts{}, storeErr(err, errPosterNotFound)
		}
	}
	return c, nil
}
