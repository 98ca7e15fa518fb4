package listing

import (
	"time"

	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/match"
)

// DateLayout — месяц/день/год без ведущих нулей, например "3/7/2024".
const DateLayout = "1/2/2006"

// Item — одна вакансия в списке панели.
type Item struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	Salary     string   `json:"salary"`
	Posted     string   `json:"posted"`
	Tags       []string `json:"tags"`
	SavedAt    string   `json:"savedAt,omitempty"`
	AppliedAt  string   `json:"appliedAt,omitempty"`
	MatchScore int      `json:"matchScore"`
	// MatchCount отдаётся только в сохранённых и откликах.
	MatchCount *int `json:"matchCount,omitempty"`
}

type Page struct {
	Jobs        []Item `json:"jobs"`
	TotalJobs   int    `json:"totalJobs"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func formatItem(j job.Job, r match.Result) Item {
	tags := j.KeySkills
	if tags == nil {
		tags = []string{}
	}
	return Item{
		ID:         j.ID.String(),
		Title:      j.Title,
		Company:    j.CompanyName,
		Location:   j.Location,
		Salary:     j.SalaryRange,
		Posted:     formatDate(j.PostedAt),
		Tags:       tags,
		MatchScore: r.Score,
	}
}

func formatRelationItem(mode Mode, ref scoredRef) Item {
	it := formatItem(ref.Job, ref.result)
	at := formatDate(ref.At)
	if mode == ModeSaved {
		it.SavedAt = at
	} else {
		it.AppliedAt = at
	}
	n := ref.result.MatchCount
	it.MatchCount = &n
	return it
}
