package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// MaxSearchTermLength bounds search terms in runes.
const MaxSearchTermLength = 100

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if r < 0x20 || r == 0x7f || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}

func truncate(limit int) Strategy {
	return func(s string) string {
		if utf8.RuneCountInString(s) <= limit {
			return s
		}
		return strings.TrimSpace(string([]rune(s)[:limit]))
	}
}

// SanitizeSearchTerm prepares a user-typed name fragment for a
// case-insensitive contains match.
func SanitizeSearchTerm(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
		truncate(MaxSearchTermLength),
	}
	return p.Apply(input)
}

// SanitizeName cleans a display name for storage.
func SanitizeName(input string) string {
	p := Pipeline{
		stripControl,
		NormalizeName,
	}
	return p.Apply(input)
}
