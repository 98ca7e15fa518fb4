package nlp

import (
	"sort"
	"strings"
)

// aliases: нормализованный навык -> написания с тем же смыслом.
var aliases = map[string][]string{
	"postgres":   {"postgresql"},
	"postgresql": {"postgres"},
	"k8s":        {"kubernetes"},
	"kubernetes": {"k8s"},
	"golang":     {"go"},
	"go":         {"golang"},
	"js":         {"javascript"},
	"javascript": {"js"},
	"ts":         {"typescript"},
	"typescript": {"ts"},
	"node":       {"nodejs", "node js"},
	"nodejs":     {"node", "node js"},
	"node js":    {"node", "nodejs"},
	"rest":       {"rest api"},
	"rest api":   {"rest"},
	"ci cd":      {"cicd"},
	"cicd":       {"ci cd"},
}

// SkillVariants возвращает нормализованный навык и его известные синонимы.
// Для составных навыков добавляется вариант, где каждое слово заменено первым синонимом.
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return nil
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok || s == "" {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, a := range aliases[base] {
		add(a)
	}
	if parts := strings.Split(base, " "); len(parts) > 1 {
		for i, p := range parts {
			if alt, ok := aliases[p]; ok {
				parts[i] = alt[0]
			}
		}
		add(strings.Join(parts, " "))
	}
	return out
}

// FindSkills возвращает навыки из candidates, встреченные в text целыми словами
// в любом из вариантов. Результат хранит первое написание и отсортирован.
func FindSkills(text string, candidates []string) []string {
	norm := NormalizeText(text)
	if norm == "" {
		return nil
	}
	found := map[string]string{}
	for _, skill := range candidates {
		key := NormalizeText(skill)
		if key == "" {
			continue
		}
		if _, done := found[key]; done {
			continue
		}
		for _, v := range SkillVariants(skill) {
			if ContainsPhrase(norm, v) {
				found[key] = strings.TrimSpace(skill)
				break
			}
		}
	}
	out := make([]string, 0, len(found))
	for _, s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}
