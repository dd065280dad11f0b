package extractor

import (
	"regexp"
	"strings"
)

// Matcher finds the first occurrence of one vocabulary (funding stages,
// currency amounts, dates) in free text. Matches are weak signals: nothing ties
// them to a particular company on the page.
type Matcher struct {
	Name string
	re   *regexp.Regexp
}

func NewMatcher(name, pattern string) Matcher {
	return Matcher{Name: name, re: regexp.MustCompile(pattern)}
}

// Match returns the leftmost match, or "" and false.
func (m Matcher) Match(text string) (string, bool) {
	if m.re == nil {
		return "", false
	}
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// MatchOrEmpty is Match without the flag.
func (m Matcher) MatchOrEmpty(text string) string {
	v, _ := m.Match(text)
	return v
}

// space also covers non-breaking and other Unicode separators, common in page text.
const space = `[\s\p{Z}]`

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	StageMatcher = NewMatcher("stage",
		`(?i)\b(Seed|Pre[- ]?Seed|Series`+space+`?[A-C]|Series`+space+`?\d+|Venture|Angel)\b`)

	AmountMatcher = NewMatcher("amount",
		`(?i)(\$|USD)`+space+`?[\d,]+(?:\.\d+)?`+space+`?(k|m|bn)?`)

	DateMatcher = NewMatcher("investment_date",
		`\b(`+strings.Join(monthNames, "|")+`)`+space+`+\d{1,2},`+space+`+\d{4}\b`)
)
