// Package profile оценивает заполненность профиля соискателя и сводит его активность.
package profile

import (
	"math"
	"strings"

	"github.com/artem13815/jobboard/pkg/candidate"
)

type Task struct {
	ID        int    `json:"id"`
	Label     string `json:"task"`
	Completed bool   `json:"completed"`
}

type Checklist struct {
	Tasks                []Task `json:"profileTasks"`
	CompletedTasks       int    `json:"completedTasks"`
	TotalTasks           int    `json:"totalTasks"`
	CompletionPercentage int    `json:"completionPercentage"`
}

var checks = []struct {
	label string
	done  func(c candidate.Candidate) bool
}{
	{"Upload resume", func(c candidate.Candidate) bool { return filled(c.ResumeURL) }},
	{"Add work experience", func(c candidate.Candidate) bool { return len(c.Experience) > 0 }},
	{"Add education", func(c candidate.Candidate) bool { return len(c.Education) > 0 }},
	{"Add skills", func(c candidate.Candidate) bool { return len(c.Skills) > 0 }},
	{"Complete about section", func(c candidate.Candidate) bool { return filled(c.About) }},
	{"Add profile picture", func(c candidate.Candidate) bool { return filled(c.ProfileImage) }},
	{"Add projects", func(c candidate.Candidate) bool { return len(c.Projects) > 0 }},
}

// Tasks проверяет c по фиксированному чек-листу. id задач идут с 1 в порядке чек-листа.
func Tasks(c candidate.Candidate) Checklist {
	out := Checklist{Tasks: make([]Task, 0, len(checks)), TotalTasks: len(checks)}
	for i, chk := range checks {
		done := chk.done(c)
		if done {
			out.CompletedTasks++
		}
		out.Tasks = append(out.Tasks, Task{ID: i + 1, Label: chk.label, Completed: done})
	}
	out.CompletionPercentage = percent(out.CompletedTasks, out.TotalTasks)
	return out
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
