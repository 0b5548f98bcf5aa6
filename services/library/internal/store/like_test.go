package store

import "testing"

func TestLike(t *testing.T) {
	cases := []struct {
		s, pattern string
		want       bool
	}{
		{"Inception", "Inception", true},
		{"Inception", "inception", false},
		{"Inception", "Incep%", true},
		{"Inception", "%cept%", true},
		{"Inception", "Incept_on", true},
		{"Inception", "Incept_", false},
		{"50% off", `50\% off`, true},
		{"50 off", `50\% off`, false},
		{"a.b", "a.b", true},
		{"axb", "a.b", false},
		{"", "%", true},
		{"multi\nline", "multi%", true},
	}
	for _, c := range cases {
		if got := Like(c.s, c.pattern); got != c.want {
			t.Errorf("Like(%q, %q) = %v, want %v", c.s, c.pattern, got, c.want)
		}
	}
}

func TestSQLPattern_TrailingBackslash(t *testing.T) {
	cases := []struct {
		pattern, want string
	}{
		{`AC\`, `AC\\`},
		{`AC\\`, `AC\\`},
		{`AC\\\`, `AC\\\\`},
		{`AC\%`, `AC\%`},
		{`AC`, `AC`},
		{``, ``},
	}
	for _, c := range cases {
		if got := sqlPattern(c.pattern); got != c.want {
			t.Errorf("sqlPattern(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}

	for _, s := range []string{`AC\`, `AC`, `AC\\`} {
		for _, p := range []string{`AC\`, `AC\\\`} {
			if Like(s, p) != Like(s, sqlPattern(p)) {
				t.Errorf("Like(%q, %q) disagrees with its SQL form %q", s, p, sqlPattern(p))
			}
		}
	}
	if !Like(`AC\`, `AC\`) {
		t.Error("expected a trailing backslash to match literally")
	}
}
