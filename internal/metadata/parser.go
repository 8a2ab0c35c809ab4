package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

// Style selects the extraction grammar for a question set's metadata field.
type Style string

const (
	// StyleDefault is "<author>, <subcategory>[ - <subsubcategory>]" with the
	// category resolved through the canonical subcategory table. The author
	// and category segments swap when the set is not author-first.
	StyleDefault Style = "default"
	// StyleNoAuthor treats the whole field as the subcategory.
	StyleNoAuthor Style = "noAuthor"
	// StyleAuthorAndCategory is "<author>[,-]<subcategory>" with no
	// subsubcategory.
	StyleAuthorAndCategory Style = "authorAndCategory"
	// StyleNSC is "<author>, <cat> - <subcat> - <subsubcat> &gt; ... Editor: <editor>".
	// The category path is literal; no table lookup.
	StyleNSC Style = "nsc"
	// StyleNASAT is "<author> , <cat> - <subcat> - <subsubcat>" with literal
	// categories.
	StyleNASAT Style = "nasat"
	// StyleQBReader is "<cat> - <subcat>[ - <subsubcat>]" with no authorship.
	StyleQBReader Style = "qbReader"
	// StyleNone stores the raw field without extracting anything.
	StyleNone Style = "none"
)

// ParseStyle validates a style tag read from a question set index.
func ParseStyle(raw string) (Style, error) {
	switch s := Style(raw); s {
	case StyleDefault, StyleNoAuthor, StyleAuthorAndCategory, StyleNSC, StyleNASAT, StyleQBReader, StyleNone:
		return s, nil
	case "":
		return StyleDefault, nil
	default:
		return "", fmt.Errorf("unknown metadata style %q", raw)
	}
}

// Fields is the structured result shared by all styles. Absent values are
// empty strings.
type Fields struct {
	Category       string
	Subcategory    string
	Subsubcategory string
	Author         string
	Editor         string
}

var (
	defaultPattern   = regexp.MustCompile(`(.*?), (.*)`)
	authorCatPattern = regexp.MustCompile(`(.*?)[,-](.*)`)
	nscPattern       = regexp.MustCompile(`(.+?), (.*)&gt;.*Editor: (.*)`)
	nasatPattern     = regexp.MustCompile(`(.+?) , (.*)`)
)

const categorySeparator = " - "

// Parse extracts Fields from one metadata string. Empty input yields empty
// output. The second return is false when the style is not a known grammar;
// the fields are still the all-empty value so callers can log and continue.
func Parse(text string, style Style, authorFirst bool, table Table) (Fields, bool) {
	var fields Fields
	if text == "" {
		return fields, true
	}

	switch style {
	case StyleDefault:
		if m := defaultPattern.FindStringSubmatch(text); m != nil {
			categoryPath := m[2]
			if authorFirst {
				fields.Author = strings.TrimSpace(m[1])
			} else {
				fields.Author = strings.TrimSpace(m[2])
				categoryPath = m[1]
			}
			fields.Subcategory, fields.Subsubcategory = splitPath2(categoryPath)
			fields.Category = table.Category(fields.Subcategory)
		}
	case StyleNoAuthor:
		fields.Subcategory = text
		fields.Category = table.Category(fields.Subcategory)
	case StyleAuthorAndCategory:
		if m := authorCatPattern.FindStringSubmatch(text); m != nil {
			fields.Author = strings.TrimSpace(m[1])
			fields.Subcategory = strings.TrimSpace(m[2])
			fields.Category = table.Category(fields.Subcategory)
		}
	case StyleNSC:
		if m := nscPattern.FindStringSubmatch(text); m != nil {
			fields.Author = strings.TrimSpace(m[1])
			fields.Editor = strings.TrimSpace(m[3])
			fields.Category, fields.Subcategory, fields.Subsubcategory = splitPath3(m[2])
		}
	case StyleNASAT:
		if m := nasatPattern.FindStringSubmatch(text); m != nil {
			fields.Author = strings.TrimSpace(m[1])
			fields.Category, fields.Subcategory, fields.Subsubcategory = splitPath3(m[2])
		}
	case StyleQBReader:
		parts := strings.Split(text, categorySeparator)
		fields.Category = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			fields.Subcategory = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			fields.Subsubcategory = strings.TrimSpace(parts[2])
		}
	case StyleNone:
		// Raw field is stored alongside the question; nothing to extract.
	default:
		return Fields{}, false
	}

	fields.stripRedundantCategory()
	return fields, true
}

// stripRedundantCategory removes the category from the subcategory label so
// sources that repeat it ("Science Biology") do not produce doubled names.
func (f *Fields) stripRedundantCategory() {
	if f.Category == "" || f.Subcategory == "" {
		return
	}
	f.Subcategory = strings.TrimSpace(strings.ReplaceAll(f.Subcategory, f.Category, ""))
}

func splitPath2(path string) (sub, subsub string) {
	parts := strings.SplitN(path, categorySeparator, 2)
	sub = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		subsub = strings.TrimSpace(parts[1])
	}
	return sub, subsub
}

func splitPath3(path string) (cat, sub, subsub string) {
	parts := strings.SplitN(path, categorySeparator, 3)
	cat = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		sub = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		subsub = strings.TrimSpace(parts[2])
	}
	return cat, sub, subsub
}
