package trends

import (
	"sort"
	"strings"

	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/similarity"
)

// Normalize cleans raw topics for one fetch result: whitespace is trimmed,
// empties dropped, duplicates removed case-insensitively (first occurrence
// keeps its original casing), near-duplicate headlines filtered when a
// checker is enabled, and the remainder stable-sorted by rank and truncated
// to limit.
func Normalize(raw []models.Topic, limit int, sim *similarity.Checker) []models.Topic {
	seen := make(map[string]struct{}, len(raw))
	var kept []models.Topic
	var keptTexts []string

	for _, t := range raw {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		folded := strings.ToLower(text)
		if _, dup := seen[folded]; dup {
			continue
		}
		if sim.Enabled() && sim.IsNearDuplicate(text, keptTexts) {
			continue
		}
		seen[folded] = struct{}{}
		t.Text = text
		kept = append(kept, t)
		keptTexts = append(keptTexts, text)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Rank < kept[j].Rank
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
