package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// WindowSize is how many characters, counted from the start of a matched keyword,
// are searched for the biomarker's value.
const WindowSize = 35

var (
	punctuation = strings.NewReplacer(":", " ", ";", " ", ",", " ", "-", " ")
	numberRe    = regexp.MustCompile(`\d+(\.\d+)?`)
)

// Reading is a numeric value associated with a biomarker keyword.
type Reading struct {
	Keyword string
	Offset  int // in characters, within the normalized text
	Raw     string
	Value   float64
}

// NormalizeLabText lowercases text and blanks out colons, semicolons, commas and
// hyphens so they cannot separate a keyword from its value.
func NormalizeLabText(text string) string {
	return punctuation.Replace(strings.ToLower(text))
}

// FindReading returns the value for the first of keywords that occurs in normalized
// text. Only that keyword's first occurrence is considered: if no number appears in
// the window after it, there is no reading, even when a later keyword would match.
func FindReading(normalized string, keywords []string) (Reading, bool) {
	for _, kw := range keywords {
		idx := strings.Index(normalized, strings.ToLower(kw))
		if idx < 0 {
			continue
		}

		raw := numberRe.FindString(windowAt(normalized, idx))
		if raw == "" {
			return Reading{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Reading{}, false
		}
		return Reading{
			Keyword: kw,
			Offset:  utf8.RuneCountInString(normalized[:idx]),
			Raw:     raw,
			Value:   v,
		}, true
	}
	return Reading{}, false
}

// windowAt returns up to WindowSize characters of s starting at byte offset start.
func windowAt(s string, start int) string {
	end := start
	for n := 0; n < WindowSize && end < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[start:end]
}
