package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tagCaser = cases.Title(language.Und)

// NormalizeTags trims, collapses whitespace, title-cases and deduplicates
// document tags so "  cv mall " and "CV Mall" land on the same tag.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.Join(strings.Fields(tag), " ")
		if tag == "" {
			continue
		}
		tag = tagCaser.String(strings.ToLower(tag))
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
