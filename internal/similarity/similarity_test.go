package similarity

import "testing"

func TestJaccardSimilarity(t *testing.T) {
	c := New(0.85, 3)

	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{"identical", "NASA telescope discovery", "NASA telescope discovery", 1.0, 1.0},
		{"punctuation only", "NASA's telescope: discovery!", "nasas telescope discovery", 1.0, 1.0},
		{"unrelated", "celebrity gossip roundup", "quantum computing milestone", 0.0, 0.2},
		{"partial overlap", "new smartphone released today", "new smartphone released", 0.5, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := c.JaccardSimilarity(c.Trigrams(tt.a), c.Trigrams(tt.b))
			if sim < tt.min || sim > tt.max {
				t.Errorf("similarity(%q, %q) = %.3f, want in [%.2f, %.2f]", tt.a, tt.b, sim, tt.min, tt.max)
			}
		})
	}
}

func TestIsNearDuplicate(t *testing.T) {
	c := New(0.85, 3)

	seen := []string{"Climate change affecting coastal cities"}

	if !c.IsNearDuplicate("Climate change affecting coastal cities!", seen) {
		t.Error("expected near-duplicate of seen headline to be detected")
	}
	if c.IsNearDuplicate("Top upcoming video games", seen) {
		t.Error("unrelated headline flagged as near-duplicate")
	}
}

func TestDisabledChecker(t *testing.T) {
	c := New(0, 3)
	if c.Enabled() {
		t.Error("zero-threshold checker should be disabled")
	}
	if c.IsNearDuplicate("anything", []string{"anything"}) {
		t.Error("disabled checker must never flag duplicates")
	}
}
