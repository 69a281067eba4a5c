package story

import (
	"strings"
	"testing"
	"time"

	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/models"
)

func TestBuildPromptDeterministic(t *testing.T) {
	topics := []models.Topic{
		{Text: "Solar farm opens", Rank: 1},
		{Text: "New chess record", Rank: 2},
	}
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	first := BuildPrompt(config.ThemeComedy, topics, "happy", now)
	second := BuildPrompt(config.ThemeComedy, topics, "happy", now)
	if first != second {
		t.Fatal("identical inputs produced different prompts")
	}

	for _, want := range []string{
		"1. Solar farm opens",
		"2. New chess record",
		"feeling happy",
		"Monday, June 2, 2025",
		"humorous",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("prompt missing %q:\n%s", want, first)
		}
	}
}

func TestBuildPromptNoMood(t *testing.T) {
	topics := []models.Topic{{Text: "Quiet day online", Rank: 1}}
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	prompt := BuildPrompt(config.ThemeDefault, topics, "", now)
	if strings.Contains(prompt, "feeling") {
		t.Errorf("prompt mentions mood without one:\n%s", prompt)
	}
}

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain headline", "plain headline"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"{{template}} `injection`", "template injection"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := sanitizeField(tt.in); got != tt.want {
			t.Errorf("sanitizeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeOutput(t *testing.T) {
	in := "  <script>alert(1)</script>A fine story.  "
	want := "alert(1)A fine story."
	if got := sanitizeOutput(in); got != want {
		t.Errorf("sanitizeOutput = %q, want %q", got, want)
	}
}
