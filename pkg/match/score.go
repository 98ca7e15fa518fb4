// Package match считает, насколько соискатель подходит вакансии.
//
// Пять критериев проверяются независимо; каждый выполненный добавляет единицу к
// MatchCount и свой вес к оценке. Оценка ограничена 100, так что
// большое пересечение навыков само может заполнить шкалу.
package match

import (
	"math"
	"strings"
)

const (
	MaxScore = 100

	skillWeight          = 20
	exactLocationWeight  = 20
	remoteLocationWeight = 10
	experienceWeight     = 15
	salaryWeight         = 15
	jobTypeWeight        = 10

	// ожидаемая зарплата вводится в лакхах
	salaryUnit = 100000

	remote = "remote"
)

// Job — часть вакансии, которую смотрит оценка.
type Job struct {
	KeySkills   []string
	Location    string
	MinExp      int
	MaxExp      int
	SalaryRange string
	JobType     string
}

// Candidate — часть профиля соискателя, которую смотрит оценка.
type Candidate struct {
	Skills            []string
	PreferredLocation string
	TotalExperience   string
	ExpectedSalary    string
	PreferredJobType  string
}

type Result struct {
	MatchCount int `json:"matchCount"`
	Score      int `json:"matchScore"`
}

// Score не меняет j и c и не падает: нет данных значит критерий не выполнен.
func Score(j Job, c Candidate) Result {
	var r Result

	if n := skillOverlap(j.KeySkills, c.Skills); n > 0 {
		r.MatchCount++
		r.Score += skillWeight * n
	}

	jobLoc := strings.ToLower(j.Location)
	prefLoc := strings.ToLower(c.PreferredLocation)
	if prefLoc != "" && (jobLoc == prefLoc || jobLoc == remote) {
		r.MatchCount++
		if jobLoc == prefLoc {
			r.Score += exactLocationWeight
		} else {
			r.Score += remoteLocationWeight
		}
	}

	if exp := ExperienceYears(c.TotalExperience); exp >= int64(j.MinExp) && exp <= int64(j.MaxExp) {
		r.MatchCount++
		r.Score += experienceWeight
	}

	if lo, hi, ok := SalaryBounds(j.SalaryRange); ok {
		if s := ExpectedSalary(c.ExpectedSalary); s >= lo && s <= hi {
			r.MatchCount++
			r.Score += salaryWeight
		}
	}

	if pref := strings.ToLower(c.PreferredJobType); pref != "" && strings.ToLower(j.JobType) == pref {
		r.MatchCount++
		r.Score += jobTypeWeight
	}

	r.Score = clamp(r.Score, 0, MaxScore)
	return r
}

func skillOverlap(jobSkills, candidateSkills []string) int {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		if s == "" {
			continue
		}
		have[strings.ToLower(s)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(jobSkills))
	n := 0
	for _, s := range jobSkills {
		k := strings.ToLower(s)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := have[k]; ok {
			n++
		}
	}
	return n
}

// ExperienceYears читает ведущее целое из свободного значения вроде "3 years".
// Без ведущего числа ("Fresher", "") будет 0.
func ExperienceYears(s string) int64 {
	n, _ := LeadingInt(s)
	return n
}

// SalaryBounds делит диапазон "min-max". Половина без ведущего числа считается 0,
// диапазон без второй половины не совпадёт.
func SalaryBounds(s string) (lo, hi int64, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return 0, 0, false
	}
	lo, _ = LeadingInt(parts[0])
	hi, _ = LeadingInt(parts[1])
	return lo, hi, true
}

// ExpectedSalary оставляет только цифры s и переводит лакхи в единицы валюты.
func ExpectedSalary(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, ok := LeadingInt(b.String())
	if !ok {
		return 0
	}
	if n > math.MaxInt64/salaryUnit {
		return math.MaxInt64
	}
	return n * salaryUnit
}

// LeadingInt разбирает цифры (возможно со знаком) в начале s
// после пробелов. ok ложно, если цифр нет.
func LeadingInt(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f\u00a0")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			n = math.MaxInt64
		} else {
			n = n*10 + d
		}
		i++
	}
	if i == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
