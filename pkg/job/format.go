package job

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// TitleCase делает заглавной первую букву каждого слова, остальные строчными.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// SentenceCase оставляет в каждом предложении (через точку) одну заглавную в начале.
// Пустые предложения выбрасываются.
func SentenceCase(s string) string {
	var out []string
	for _, part := range strings.Split(s, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, capitalize(part))
	}
	res := strings.Join(out, ". ")
	if res != "" && strings.HasSuffix(strings.TrimSpace(s), ".") {
		res += "."
	}
	return res
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// PostedAgo показывает t относительно now, например "3 days ago".
func PostedAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// normalize применяет правила регистра доски перед сохранением вакансии.
func normalize(j Job) Job {
	j.Title = TitleCase(strings.TrimSpace(j.Title))
	j.CompanyName = TitleCase(strings.TrimSpace(j.CompanyName))
	j.Location = TitleCase(strings.TrimSpace(j.Location))
	j.JobType = TitleCase(strings.TrimSpace(j.JobType))
	j.IndustryType = TitleCase(strings.TrimSpace(j.IndustryType))
	j.Description = SentenceCase(j.Description)
	j.KeySkills = cleanSkills(j.KeySkills)
	return j
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
