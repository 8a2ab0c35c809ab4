package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// diacriticFolder decomposes characters and drops combining marks, so
// "Dvořák" slugifies the same as "Dvorak".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts text to a lowercase URL-safe identifier. Diacritics are
// folded to their base letters, entity escapes are resolved, and any run of
// remaining non-alphanumeric characters collapses to a single hyphen.
// Returns "" when nothing survives.
func Slugify(text string) string {
	text = entityReplacer.Replace(text)
	if folded, _, err := transform.String(diacriticFolder, text); err == nil {
		text = folded
	}
	text = strings.ToLower(text)
	text = nonSlugRun.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}
