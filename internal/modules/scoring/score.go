package scoring

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

const (
	InterviewScale  = 100
	AssessmentScale = 10
)

// labeled matches a score label immediately followed by an integer, allowing
// the punctuation and markdown emphasis reports wrap around it, e.g.
// "Score: 85", "**Final Puanı:** 78/100", "Not = 7".
var labeled = regexp.MustCompile(`(?i)\b(score|puanı|puan|not)[\s:=*_]*(\d{1,3})\b`)

var integer = regexp.MustCompile(`\d+`)

// ExtractScore recovers an integer score in [0, scale] from free-form
// evaluation text. Labeled matches win over bare integers; out-of-range
// candidates are skipped. It returns nil when nothing fits.
func ExtractScore(text string, scale int) *int {
	for _, m := range labeled.FindAllStringSubmatch(text, -1) {
		if v, ok := inRange(m[2], scale); ok {
			return &v
		}
	}
	for _, loc := range integer.FindAllStringIndex(text, -1) {
		if !standalone(text, loc[0], loc[1]) {
			continue
		}
		if v, ok := inRange(text[loc[0]:loc[1]], scale); ok {
			return &v
		}
	}
	return nil
}

func inRange(s string, scale int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > scale {
		return 0, false
	}
	return v, true
}

// standalone rejects digits glued to letters or sitting inside a decimal.
func standalone(text string, start, end int) bool {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(prev) || prev == '_' {
			return false
		}
		if prev == '.' || prev == ',' {
			if start >= 2 && text[start-2] >= '0' && text[start-2] <= '9' {
				return false
			}
		}
	}
	if end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(next) || next == '_' {
			return false
		}
		if (next == '.' || next == ',') && end+1 < len(text) && text[end+1] >= '0' && text[end+1] <= '9' {
			return false
		}
	}
	return true
}
