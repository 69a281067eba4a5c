package story

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/models"
)

// BuildPrompt assembles the generation prompt for the backend. It is a pure
// function of its arguments: the same theme, topics, mood and timestamp
// always produce byte-identical output.
func BuildPrompt(theme config.Theme, topics []models.Topic, moodLabel string, now time.Time) string {
	lines := make([]string, 0, len(topics))
	for i, t := range topics {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, sanitizeField(t.Text)))
	}
	topicList := strings.Join(lines, "\n")

	var b strings.Builder
	b.WriteString(fmt.Sprintf(config.PromptTemplate(theme), topicList))
	b.WriteString("\n\n")
	if moodLabel != "" {
		b.WriteString(fmt.Sprintf("The reader is currently feeling %s; let that color the telling.\n", sanitizeField(moodLabel)))
	}
	b.WriteString("Keep the story under 500 words with a clear beginning, middle, and end, and close on a memorable final line.\n")
	b.WriteString(fmt.Sprintf("Today's date is %s.", now.Format("Monday, January 2, 2006")))
	return b.String()
}

// sanitizeField strips control characters and template-sensitive braces from
// externally sourced text before it is embedded in the prompt.
func sanitizeField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '{' || r == '}' || r == '`':
			continue
		case unicode.IsControl(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// sanitizeOutput removes markup the backend occasionally echoes back.
func sanitizeOutput(s string) string {
	for _, tag := range []string{"<script>", "</script>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return strings.TrimSpace(s)
}
