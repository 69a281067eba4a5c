package config

// Theme is a narrative tone for story generation. The set is closed:
// requests naming anything outside SupportedThemes are rejected up front.
type Theme string

const (
	ThemeComedy  Theme = "comedy"
	ThemeTragedy Theme = "tragedy"
	ThemeSarcasm Theme = "sarcasm"
	ThemeMystery Theme = "mystery"
	ThemeRomance Theme = "romance"
	ThemeSciFi   Theme = "sci-fi"

	// ThemeDefault is used when the caller gives no theme and no usable mood.
	// It is not part of the requestable set.
	ThemeDefault Theme = "default"
)

// SupportedThemes lists the themes a request may name, in display order.
func SupportedThemes() []Theme {
	return []Theme{ThemeComedy, ThemeTragedy, ThemeSarcasm, ThemeMystery, ThemeRomance, ThemeSciFi}
}

// ParseTheme resolves a requested theme string. Empty input is valid and
// signals auto-selection; unknown names are rejected.
func ParseTheme(s string) (Theme, bool) {
	if s == "" {
		return "", true
	}
	for _, t := range SupportedThemes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// moodThemes maps detected facial emotions to themes. Labels follow the
// common seven-emotion set used by face analysis models.
var moodThemes = map[string]Theme{
	"happy":    ThemeComedy,
	"sad":      ThemeTragedy,
	"angry":    ThemeSarcasm,
	"disgust":  ThemeSarcasm,
	"surprise": ThemeMystery,
	"fear":     ThemeMystery,
}

// ThemeForMood returns the theme auto-selected for a detected mood.
// Neutral, unknown, and unmapped labels fall through to the default theme.
func ThemeForMood(label string) Theme {
	if t, ok := moodThemes[label]; ok {
		return t
	}
	return ThemeDefault
}

// promptTemplates holds the per-theme generation instructions. Each template
// receives the formatted topic list via %s.
var promptTemplates = map[Theme]string{
	ThemeDefault: "Create a short story incorporating the following trending topics:\n%s",
	ThemeComedy:  "Write a humorous and lighthearted story that includes these trending topics:\n%s\nMake it funny and witty.",
	ThemeTragedy: "Write a sad and emotional story that incorporates these trending topics:\n%s\nFocus on loss and difficult emotions.",
	ThemeSarcasm: "Write a sarcastic and ironic story that makes fun of these trending topics:\n%s\nDon't hold back on the cynicism.",
	ThemeMystery: "Write a suspenseful mystery story that weaves in these trending topics:\n%s\nInclude a twist ending if possible.",
	ThemeRomance: "Write a romantic story that incorporates these trending topics:\n%s\nFocus on the relationship between characters.",
	ThemeSciFi:   "Write a science fiction story set in the future that references these trending topics:\n%s\nInclude futuristic technology.",
}

// PromptTemplate returns the generation template for a theme.
func PromptTemplate(t Theme) string {
	if tpl, ok := promptTemplates[t]; ok {
		return tpl
	}
	return promptTemplates[ThemeDefault]
}
