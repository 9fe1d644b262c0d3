package recon

import "strings"

// NormalizeDescription maps a line-item description to its canonical
// comparison key: lower-cased, with common annotations (model numbers,
// customs codes, country of origin) stripped so they cannot defeat a
// match. Idempotent.
func NormalizeDescription(desc string) string {
	s := strings.ToLower(desc)
	s = strings.ReplaceAll(s, "model:", "")
	s = strings.ReplaceAll(s, "hs code", "")
	s = strings.ReplaceAll(s, "origin", "")
	return strings.TrimSpace(s)
}
