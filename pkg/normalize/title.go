package normalize

import (
	"strings"
	"unicode"
)

const untitledFallback = "Untitled Bill"

// Fixed entity set seen in upstream titles. Deliberately not a full HTML
// decoder: anything outside this set passes through untouched.
var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&ndash;", "-",
	"&mdash;", "-",
)

var smartPunct = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
)

// Tokens that legitimately end a title with a period.
var trailingAbbreviations = []string{
	"inc.", "jr.", "sr.", "no.", "etc.", "dept.", "gov.", "sec.", "u.s.", "d.c.",
}

// NormalizeTitle cleans a raw upstream title: strips wrapping quotes, decodes
// the fixed entity set, normalizes smart punctuation, drops non-printables,
// collapses whitespace, capitalizes the first letter and trims a lone
// trailing period unless it belongs to an abbreviation. An empty result
// becomes "Untitled Bill".
func NormalizeTitle(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripSurroundingQuotes(s)
	s = htmlEntities.Replace(s)
	s = smartPunct.Replace(s)

	var b strings.Builder
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(' ')
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	s = strings.Join(strings.Fields(b.String()), " ")

	if s == "" {
		return untitledFallback
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	s = string(runes)

	if strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "..") && !endsWithAbbreviation(s) {
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" {
		return untitledFallback
	}
	return s
}

func stripSurroundingQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

func endsWithAbbreviation(s string) bool {
	lower := strings.ToLower(s)
	for _, abbr := range trailingAbbreviations {
		if strings.HasSuffix(lower, abbr) {
			return true
		}
	}
	// Single-letter initialisms like "H.B." or "J. Smith Act of 2024 S."
	if len(lower) >= 2 {
		c := lower[len(lower)-2]
		if c >= 'a' && c <= 'z' && (len(lower) == 2 || lower[len(lower)-3] == ' ' || lower[len(lower)-3] == '.') {
			return true
		}
	}
	return false
}
