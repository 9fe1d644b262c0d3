package recon

import "testing"

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  int
	}{
		{"identical", "Acme Corp Ltd", "Acme Corp Ltd", 100},
		{"reordered tokens", "Acme Corp Ltd", "Ltd Acme Corp", 100},
		{"case insensitive", "ACME CORP", "acme corp", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSortRatio(tt.a, tt.b); got < tt.min {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want >= %d", tt.a, tt.b, got, tt.min)
			}
		})
	}
}

func TestTokenSortRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Acme Corp Ltd", "Acme Corporation"},
		{"Globex", "Initech"},
		{"", "something"},
	}
	for _, p := range pairs {
		if TokenSortRatio(p[0], p[1]) != TokenSortRatio(p[1], p[0]) {
			t.Errorf("TokenSortRatio not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestTokenSortRatioMissingWordsReduceScore(t *testing.T) {
	full := TokenSortRatio("Acme Corp Ltd", "Acme Corp Ltd")
	partial := TokenSortRatio("Acme Corp Ltd", "Acme")
	if partial >= full {
		t.Errorf("missing words should reduce score: %d >= %d", partial, full)
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  int
	}{
		{"exact", "widget a", "widget a", 100},
		{"extra trailing context", "widget a", "widget a - blue, qty 10", 100},
		{"extra leading context", "widget a", "item: widget a", 100},
		{"tolerates threshold noise", "widget a", "widgets a, boxed", 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialRatio(tt.a, tt.b); got < tt.min {
				t.Errorf("PartialRatio(%q, %q) = %d, want >= %d", tt.a, tt.b, got, tt.min)
			}
		})
	}
}

func TestRatioEmptyInputs(t *testing.T) {
	if got := Ratio("", ""); got != 0 {
		t.Errorf("Ratio of two empty strings = %d, want 0", got)
	}
	if got := TokenSortRatio("", ""); got != 0 {
		t.Errorf("TokenSortRatio of two empty strings = %d, want 0", got)
	}
	if got := PartialRatio("", ""); got != 0 {
		t.Errorf("PartialRatio of two empty strings = %d, want 0", got)
	}
	if got := PartialRatio("", "widget"); got != 0 {
		t.Errorf("PartialRatio with one empty side = %d, want 0", got)
	}
}

func TestExtractOne(t *testing.T) {
	candidates := []string{"widget a", "widget b", "gadget c"}

	best, ok := ExtractOne("widget b - blue", candidates, PartialRatio)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Value != "widget b" || best.Index != 1 {
		t.Errorf("best = %+v, want widget b at index 1", best)
	}

	if _, ok := ExtractOne("anything", nil, PartialRatio); ok {
		t.Error("empty candidates must report no match")
	}
}

func TestExtractOneTieBreaksEarliest(t *testing.T) {
	// Duplicate candidates score identically; the first must win.
	best, ok := ExtractOne("widget a", []string{"widget a", "widget a"}, PartialRatio)
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Index != 0 {
		t.Errorf("tie resolved to index %d, want 0", best.Index)
	}
}
