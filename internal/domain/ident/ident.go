// Package ident derives stable, filesystem-safe identifiers from item titles.
package ident

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Make normalizes a title into a slug: NFKC normalization, then every run
// of characters that is not a letter, digit, underscore, or hyphen becomes
// a single underscore, with leading/trailing underscores stripped. Total
// and deterministic; symbol-only titles normalize to "".
func Make(title string) string {
	s := norm.NFKC.String(title)
	s = nonWord.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Assign resolves one unique ID per title, in order. An empty slug falls
// back to "item"; a slug already taken by an earlier title gets a numeric
// suffix (_2, _3, ...). Every substitution is reported as a warning so
// colliding titles never silently share outputs.
func Assign(titles []string) (ids []string, warnings []string) {
	ids = make([]string, 0, len(titles))
	taken := make(map[string]bool, len(titles))
	for _, title := range titles {
		base := Make(title)
		if base == "" {
			base = "item"
			warnings = append(warnings, fmt.Sprintf("title %q normalizes to an empty slug, using %q", title, base))
		}
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		if id != base {
			warnings = append(warnings, fmt.Sprintf("title %q collides on slug %q, using %q", title, base, id))
		}
		taken[id] = true
		ids = append(ids, id)
	}
	return ids, warnings
}
