package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := string(RenderMarkdown("# Title\n\n<script>alert(1)</script>\n\n**bold**"))

	if strings.Contains(html, "<script>") {
		t.Error("script tags should be stripped")
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("markdown should be rendered, got %s", html)
	}
	if !strings.Contains(html, "Title") {
		t.Errorf("heading text missing, got %s", html)
	}
}

func TestRenderMarkdownImageAttributes(t *testing.T) {
	html := string(RenderMarkdown("![alt](https://example.com/a.png)"))

	if !strings.Contains(html, "loading=\"lazy\"") {
		t.Errorf("images should load lazily, got %s", html)
	}
	if !strings.Contains(html, "referrerpolicy=\"no-referrer\"") {
		t.Errorf("images should not leak referrer, got %s", html)
	}
}

func TestRandString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandString(10)
		if len(s) != 10 {
			t.Fatalf("expected length 10, got %d", len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(slugBytes, r) {
				t.Fatalf("unexpected character %q", r)
			}
		}
		seen[s] = true
	}
	if len(seen) < 90 {
		t.Errorf("slugs look non-random: %d unique of 100", len(seen))
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword("hunter22", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password should not verify")
	}
}
