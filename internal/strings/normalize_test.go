package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"one", "one"},
		{"one   two", "one two"},
		{"\tone\n two ", "one two"},
	}

	for _, tc := range cases {
		if got := NormalizeWhitespace(tc.input); got != tc.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\nb", "a\nb"},
		{"a\r\n\rb", "a\n\nb"},
	}

	for _, tc := range cases {
		if got := NormalizeNewlines(tc.input); got != tc.want {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("a\r\n\n"); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
	if got := TrimTrailingNewlines("a\nb"); got != "a\nb" {
		t.Errorf("interior newline should survive, got %q", got)
	}
}

func TestTrimTrailingWhitespace(t *testing.T) {
	if got := TrimTrailingWhitespace("a \t\n"); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
	if got := TrimTrailingWhitespace(" a"); got != " a" {
		t.Errorf("leading whitespace should survive, got %q", got)
	}
}
