package ui

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	out := FormatTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{"1", "short"},
			{"42", "a longer title"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "42  ") {
		t.Fatalf("expected two-space gutter after widest cell, got %q", lines[2])
	}
	titleCol := strings.Index(lines[0], "TITLE")
	for _, line := range lines[1:] {
		cell := line[titleCol:]
		if strings.HasPrefix(cell, " ") {
			t.Fatalf("title column misaligned in %q", line)
		}
	}
}

func TestFormatTableFlattensNewlines(t *testing.T) {
	out := FormatTable([]string{"TITLE"}, [][]string{{"line1\nline2"}})
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("embedded newline should not add a row: %q", out)
	}
}

func TestTruncateTableCell(t *testing.T) {
	if got := TruncateTableCell("short"); got != "short" {
		t.Fatalf("short value should pass through, got %q", got)
	}

	long := strings.Repeat("x", 80)
	got := TruncateTableCell(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if len(got) != 50 {
		t.Fatalf("expected width 50, got %d", len(got))
	}
}

func TestTruncateTableCellKeepsANSI(t *testing.T) {
	styled := "\x1b[31m" + strings.Repeat("y", 80) + "\x1b[0m"
	got := TruncateTableCell(styled)
	if !strings.Contains(got, "\x1b[31m") {
		t.Fatalf("expected escape sequence preserved, got %q", got)
	}
	if displayWidth(got) != 50 {
		t.Fatalf("expected display width 50, got %d", displayWidth(got))
	}
}

func TestTruncateTableCellWideRunes(t *testing.T) {
	long := strings.Repeat("日", 60)
	got := TruncateTableCell(long)
	if displayWidth(got) > 50 {
		t.Fatalf("display width %d exceeds cell max", displayWidth(got))
	}
}
