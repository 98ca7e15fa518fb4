// Package listing строит списки панели соискателя: рекомендованные, сохранённые вакансии и отклики.
package listing

import (
	"math"
	"strings"

	"github.com/artem13815/jobboard/pkg/apperr"
)

type Mode string

const (
	ModeRecommended Mode = "recommended"
	ModeSaved       Mode = "saved"
	ModeApplied     Mode = "applied"
)

const (
	DefaultLimit = 9
	MaxLimit     = 100
)

// ParseMode принимает три режима списка по точным именам в нижнем регистре.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRecommended, ModeSaved, ModeApplied:
		return m, nil
	}
	return "", apperr.Invalid("Invalid type")
}

// JobFilter — условие поиска по активным вакансиям: подстрока названия, компании или локации
// без учёта регистра. Пустой Search пропускает все вакансии.
type JobFilter struct {
	Search string
}

// Query — неизменяемое описание одного запроса списка.
type Query struct {
	Mode   Mode
	Filter JobFilter
	Page   int
	Limit  int
	Offset int
}

// BuildQuery проверяет пагинацию, обрезает пробелы вокруг поиска и считает смещение.
// Нулевой limit означает DefaultLimit. К хранилищу не обращается.
func BuildQuery(mode Mode, search string, page, limit int) (Query, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return Query{}, err
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 || limit < 1 || limit > MaxLimit {
		return Query{}, apperr.Invalid("Invalid page or limit")
	}
	if page-1 > math.MaxInt32/limit {
		return Query{}, apperr.Invalid("Invalid page or limit")
	}
	return Query{
		Mode:   mode,
		Filter: JobFilter{Search: strings.TrimSpace(search)},
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, nil
}

// TotalPages — ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
