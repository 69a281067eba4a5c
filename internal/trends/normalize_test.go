package trends

import (
	"reflect"
	"strings"
	"testing"

	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/similarity"
)

func topic(text string, rank int) models.Topic {
	return models.Topic{Text: text, Source: "news", Rank: rank}
}

func texts(topics []models.Topic) []string {
	var out []string
	for _, t := range topics {
		out = append(out, t.Text)
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   []models.Topic
		limit int
		want  []string
	}{
		{
			name:  "trims and drops empties",
			raw:   []models.Topic{topic("  Space telescope  ", 1), topic("   ", 2), topic("", 3)},
			limit: 5,
			want:  []string{"Space telescope"},
		},
		{
			name:  "case-insensitive dedup keeps first casing",
			raw:   []models.Topic{topic("Climate Change", 1), topic("climate change", 2), topic("CLIMATE CHANGE", 3)},
			limit: 5,
			want:  []string{"Climate Change"},
		},
		{
			name:  "sorts by rank",
			raw:   []models.Topic{topic("third", 3), topic("first", 1), topic("second", 2)},
			limit: 5,
			want:  []string{"first", "second", "third"},
		},
		{
			name:  "truncates to limit",
			raw:   []models.Topic{topic("a", 1), topic("b", 2), topic("c", 3), topic("d", 4)},
			limit: 2,
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.limit, nil)
			if !reflect.DeepEqual(texts(got), tt.want) {
				t.Errorf("Normalize() = %v, want %v", texts(got), tt.want)
			}
		})
	}
}

func TestNormalizeNearDuplicates(t *testing.T) {
	sim := similarity.New(0.85, 3)
	raw := []models.Topic{
		topic("NASA's new telescope discoveries", 1),
		topic("NASAs new telescope discoveries!", 2),
		topic("Sustainable fashion trends", 3),
	}

	got := Normalize(raw, 5, sim)
	want := []string{"NASA's new telescope discoveries", "Sustainable fashion trends"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Normalize() = %v, want %v", texts(got), want)
	}
}

func TestNormalizeNoDuplicatesProperty(t *testing.T) {
	raw := []models.Topic{
		topic("One", 5), topic("two", 4), topic("ONE", 3),
		topic("Three", 2), topic(" two ", 1),
	}

	got := Normalize(raw, 10, nil)
	seen := map[string]bool{}
	for _, tp := range got {
		key := strings.ToLower(tp.Text)
		if seen[key] {
			t.Fatalf("duplicate topic %q in normalized output %v", tp.Text, texts(got))
		}
		seen[key] = true
	}
}
