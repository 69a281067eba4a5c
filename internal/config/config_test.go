package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Trends.CacheTTLMinutes != 15 {
		t.Errorf("cache TTL = %d, want 15", cfg.Trends.CacheTTLMinutes)
	}
	if cfg.Trends.MaxLimit != 10 {
		t.Errorf("max limit = %d, want 10", cfg.Trends.MaxLimit)
	}
	if cfg.Generation.MaxTokens != 512 {
		t.Errorf("max tokens = %d, want 512", cfg.Generation.MaxTokens)
	}
	if cfg.Mood.ConfidenceThreshold != 0.5 {
		t.Errorf("mood threshold = %v, want 0.5", cfg.Mood.ConfidenceThreshold)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9999\ntrends:\n  max_limit: 20\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Trends.MaxLimit != 20 {
		t.Errorf("max limit = %d, want 20", cfg.Trends.MaxLimit)
	}
	// Untouched values keep their defaults.
	if cfg.Trends.DefaultLimit != 5 {
		t.Errorf("default limit = %d, want 5", cfg.Trends.DefaultLimit)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRENDSTORY_SERVER_PORT", "7777")
	t.Setenv("TRENDSTORY_GENERATION_PROVIDER", "gemini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Generation.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Generation.Provider)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in    string
		want  Theme
		valid bool
	}{
		{"", "", true},
		{"comedy", ThemeComedy, true},
		{"sci-fi", ThemeSciFi, true},
		{"default", "", false},
		{"noir", "", false},
		{"Comedy", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTheme(tt.in)
		if ok != tt.valid {
			t.Errorf("ParseTheme(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			continue
		}
		if tt.valid && got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemeForMood(t *testing.T) {
	tests := []struct {
		label string
		want  Theme
	}{
		{"happy", ThemeComedy},
		{"sad", ThemeTragedy},
		{"angry", ThemeSarcasm},
		{"disgust", ThemeSarcasm},
		{"surprise", ThemeMystery},
		{"fear", ThemeMystery},
		{"neutral", ThemeDefault},
		{"unknown", ThemeDefault},
		{"", ThemeDefault},
	}
	for _, tt := range tests {
		if got := ThemeForMood(tt.label); got != tt.want {
			t.Errorf("ThemeForMood(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestPromptTemplateAlwaysHasPlaceholder(t *testing.T) {
	themes := append(SupportedThemes(), ThemeDefault)
	for _, theme := range themes {
		tpl := PromptTemplate(theme)
		if tpl == "" {
			t.Errorf("empty template for %q", theme)
		}
		found := false
		for i := 0; i+1 < len(tpl); i++ {
			if tpl[i] == '%' && tpl[i+1] == 's' {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("template for %q has no topic placeholder", theme)
		}
	}
}
