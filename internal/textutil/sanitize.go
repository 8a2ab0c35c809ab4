package textutil

import (
	"regexp"
	"strings"
)

var (
	tagPattern         = regexp.MustCompile(`<[^>]+>`)
	parentheticalRun   = regexp.MustCompile(` *\([^)]*\)`)
	shortParenthetical = regexp.MustCompile(`\(([a-zA-Z0-9]+)\)`)
)

// entityReplacer resolves the HTML entities that survive packet conversion.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
)

// RemoveTags strips HTML tags from text and resolves entity escapes.
func RemoveTags(text string) string {
	return entityReplacer.Replace(tagPattern.ReplaceAllString(text, ""))
}

// Sanitize removes parenthetical asides and trims the result.
func Sanitize(text string) string {
	return strings.TrimSpace(parentheticalRun.ReplaceAllString(text, ""))
}

// ShortenAnswerline reduces an answer line to its primary answer: everything
// before the first bracketed directive, minus parenthetical asides, with
// entity escapes resolved.
func ShortenAnswerline(answerline string) string {
	primary, _, _ := strings.Cut(answerline, "[")
	primary = parentheticalRun.ReplaceAllString(primary, "")
	return strings.TrimSpace(entityReplacer.Replace(primary))
}

// CleanName removes short parenthesized annotations from a team or player
// name, such as seeding markers like "(1)" or "(DII)".
func CleanName(name string) string {
	return strings.TrimSpace(shortParenthetical.ReplaceAllString(name, ""))
}

// Truncate returns at most limit runes of text.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
