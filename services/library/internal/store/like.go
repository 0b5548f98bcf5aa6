package store

import (
	"regexp"
	"strings"
)

// likeRegexp translates a SQL LIKE pattern into an anchored regular expression.
// '%' matches any run of characters, '_' exactly one, and a backslash escapes
// the next character. Matching is case-sensitive, as in Postgres.
func likeRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?s)^`)
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(`.*`)
		case r == '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		b.WriteString(regexp.QuoteMeta(`\`))
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}

// sqlPattern doubles a trailing lone backslash so Postgres reads it as a
// literal instead of rejecting the pattern, matching likeRegexp.
func sqlPattern(pattern string) string {
	n := 0
	for i := len(pattern) - 1; i >= 0 && pattern[i] == '\\'; i-- {
		n++
	}
	if n%2 == 1 {
		return pattern + `\`
	}
	return pattern
}

// Like reports whether s matches the LIKE pattern.
func Like(s, pattern string) bool {
	return likeRegexp(pattern).MatchString(s)
}
