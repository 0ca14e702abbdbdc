package domain

import "strings"

// Slug normalizes a campaign name into its URL-safe artifact key: the name
// is lower-cased and every run of whitespace becomes a single hyphen. Every
// place that derives a slug must go through this function, otherwise
// artifacts written under one spelling become unreachable under another.
func Slug(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}
