package postgres

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/listing"
)

// where копит условия через AND. Каждый '?' в условии связывается со следующим
// позиционным параметром.
type where struct {
	conds []string
	args  []any
}

func newWhere(args ...any) *where {
	return &where{args: args}
}

func (w *where) add(cond string, args ...any) *where {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
	return w
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(w.conds, " AND ")
}

// next возвращает плейсхолдер для аргумента после условий.
func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return "$" + strconv.Itoa(len(w.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит шаблон ILIKE, находящий s буквально в любом месте значения.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// jobFilterSQL добавляет в w условие для соискателя: вакансия активна и, если задан поиск,
// он входит в название, компанию или локацию без учёта регистра.
func jobFilterSQL(w *where, f listing.JobFilter) *where {
	w.add("j.status = ?", string(job.StatusActive))
	if f.Search != "" {
		p := containsPattern(f.Search)
		w.add("(j.title ILIKE ? OR j.company_name ILIKE ? OR j.location ILIKE ?)", p, p, p)
	}
	return w
}

// boardFilterSQL добавляет в w условие публичной доски.
func boardFilterSQL(w *where, f job.BoardFilter) *where {
	w.add("j.status = ?", string(job.StatusActive))
	if f.Title != "" {
		w.add("j.title ILIKE ?", containsPattern(f.Title))
	}
	if f.Location != "" {
		w.add("j.location ILIKE ?", containsPattern(f.Location))
	}
	// поиск по названию уже покрывает фильтр компании
	if f.CompanyName != "" && f.Title == "" {
		w.add("j.company_name ILIKE ?", containsPattern(f.CompanyName))
	}
	if f.IndustryType != "" {
		w.add("j.industry_type ILIKE ?", containsPattern(f.IndustryType))
	}
	if f.Category != "" {
		w.add("j.category ILIKE ?", containsPattern(f.Category))
	}
	if f.JobType != "" {
		w.add("j.job_type ILIKE ?", containsPattern(f.JobType))
	}
	if f.MaxExperience != nil {
		w.add("j.min_exp <= ? AND j.max_exp <= ?", *f.MaxExperience, *f.MaxExperience)
	}
	if skills := lowerAll(f.KeySkills); len(skills) > 0 {
		w.add("EXISTS (SELECT 1 FROM unnest(j.key_skills) s WHERE lower(s) = ANY(?))", skills)
	}
	return w
}

// posterFilterSQL ограничивает выборку вакансиями одного автора. Статус сравнивается точно,
// тип занятости и локация без учёта регистра.
func posterFilterSQL(w *where, posterID uuid.UUID, f analytics.PosterJobFilter) *where {
	w.add("j.posted_by = ?", posterID)
	if f.Status != "" {
		w.add("j.status = ?", string(f.Status))
	}
	if f.JobType != "" {
		w.add("lower(j.job_type) = lower(?)", f.JobType)
	}
	if f.Location != "" {
		w.add("lower(j.location) = lower(?)", f.Location)
	}
	return w
}

func lowerAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
