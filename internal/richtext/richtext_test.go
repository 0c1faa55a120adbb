package richtext

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScripts(t *testing.T) {
	input := `hello <script>alert("x")</script>world`
	out := Sanitize(input)
	if strings.Contains(out, "<script>") || strings.Contains(out, "alert") {
		t.Fatalf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Fatalf("text content lost: %q", out)
	}
}

func TestSanitizeKeepsFormatting(t *testing.T) {
	out := Sanitize("<b>bold</b> and <em>emphasis</em>")
	if !strings.Contains(out, "<b>") || !strings.Contains(out, "<em>") {
		t.Fatalf("formatting elements should survive: %q", out)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	if out := Render(80, 0, nil); out != nil {
		t.Fatalf("expected nil for empty input, got %q", out)
	}
	if out := Render(80, 0, []byte("   \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", out)
	}
}

func TestRenderOnlyUnsafeContent(t *testing.T) {
	if out := Render(80, 0, []byte(`<script>alert("x")</script>`)); out != nil {
		t.Fatalf("expected nil once unsafe content is stripped, got %q", out)
	}
}

func TestRenderIndents(t *testing.T) {
	out := Render(40, 4, []byte("plain text"))
	if out == nil {
		t.Fatal("expected rendered output")
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "    ") {
			t.Fatalf("line not indented: %q", line)
		}
	}
}

func TestRenderNarrowWidthDoesNotPanic(t *testing.T) {
	out := Render(0, 10, []byte("text wider than the render width"))
	if out == nil {
		t.Fatal("expected rendered output")
	}
}
