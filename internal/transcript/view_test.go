package transcript

import (
	"math"
	"testing"
)

func TestBuildView_HeaderWithTiming(t *testing.T) {
	utts := []Utterance{{Start: 0, End: 2, Speaker: "S1", Text: "hi"}}

	bubbles := BuildView(utts, NewThemeMap())
	if len(bubbles) != 1 {
		t.Fatalf("expected 1 bubble, got %d", len(bubbles))
	}
	if bubbles[0].Header != "S1 • 0:00–0:02" {
		t.Errorf("header = %q, want 'S1 • 0:00–0:02'", bubbles[0].Header)
	}
}

func TestBuildView_BareHeaderWithoutTiming(t *testing.T) {
	utts := []Utterance{
		{Start: math.NaN(), End: math.NaN(), Speaker: "S1", Text: "hi"},
		{Start: 1, End: math.NaN(), Speaker: "S2", Text: "yo"},
	}

	bubbles := BuildView(utts, NewThemeMap())
	for i, b := range bubbles {
		if b.Header != utts[i].Speaker {
			t.Errorf("bubble %d header = %q, want bare speaker %q", i, b.Header, utts[i].Speaker)
		}
	}
}

func TestBuildView_TightSpacing(t *testing.T) {
	utts := []Utterance{
		{Speaker: "A", Text: "one"},
		{Speaker: "A", Text: "two"},
		{Speaker: "B", Text: "three"},
		{Speaker: "B", Text: "four"},
		{Speaker: "A", Text: "five"},
	}

	bubbles := BuildView(utts, NewThemeMap())
	want := []bool{false, true, false, true, false}
	for i, w := range want {
		if bubbles[i].Tight != w {
			t.Errorf("bubble %d tight = %v, want %v", i, bubbles[i].Tight, w)
		}
	}
}

func TestBuildView_TightAfterFilteredGap(t *testing.T) {
	// The dropped utterance in the middle does not break the speaker run.
	utts := []Utterance{
		{Speaker: "A", Text: "one"},
		{Speaker: "B", Text: "[ERROR: x]"},
		{Speaker: "A", Text: "two"},
	}

	bubbles := BuildView(utts, NewThemeMap())
	if len(bubbles) != 2 {
		t.Fatalf("expected 2 bubbles, got %d", len(bubbles))
	}
	if !bubbles[1].Tight {
		t.Error("second A bubble should be tight; spacing follows the filtered order")
	}
}

func TestBuildView_SeekStartClampedToZero(t *testing.T) {
	utts := []Utterance{
		{Start: math.NaN(), End: math.NaN(), Speaker: "A", Text: "no timing"},
		{Start: 7.5, End: 9, Speaker: "A", Text: "timed"},
	}

	bubbles := BuildView(utts, NewThemeMap())
	if bubbles[0].SeekStart != 0 {
		t.Errorf("non-finite start must seek to 0, got %v", bubbles[0].SeekStart)
	}
	if bubbles[1].SeekStart != 7.5 {
		t.Errorf("seek start = %v, want 7.5", bubbles[1].SeekStart)
	}
}

func TestBuildView_MatchesExportDropDecisions(t *testing.T) {
	utts := []Utterance{
		{Start: 0, End: 1, Speaker: "A", Text: "keep"},
		{Start: 1, End: 2, Speaker: "B", Text: "  "},
		{Start: 2, End: 3, Speaker: "C", Text: "ERROR: boom"},
		{Start: 3, End: 4, Speaker: "D", Text: "also keep"},
	}

	bubbles := BuildView(utts, NewThemeMap())
	export := Export(utts)

	kept := Filter(utts)
	if len(bubbles) != len(kept) {
		t.Fatalf("renderer kept %d, filter kept %d", len(bubbles), len(kept))
	}
	lines := 0
	if export != "" {
		lines = 1
		for _, c := range export {
			if c == '\n' {
				lines++
			}
		}
	}
	if lines != len(bubbles) {
		t.Errorf("export has %d lines, renderer has %d bubbles; drop decisions must match", lines, len(bubbles))
	}
}

func TestThemeMap_StableFirstAppearanceOrder(t *testing.T) {
	m := NewThemeMap()

	// Speakers appear in order B, A, B, C; themes are assigned on first
	// sight and never move afterwards.
	themeB := m.Assign("B")
	themeA := m.Assign("A")
	if got := m.Assign("B"); got.Name != themeB.Name {
		t.Errorf("B reassigned from %q to %q", themeB.Name, got.Name)
	}
	themeC := m.Assign("C")

	if got := m.Assign("A"); got.Name != themeA.Name {
		t.Errorf("A reassigned from %q to %q", themeA.Name, got.Name)
	}
	if got := m.Assign("C"); got.Name != themeC.Name {
		t.Errorf("C reassigned from %q to %q", themeC.Name, got.Name)
	}
	if themeB.Name == themeA.Name || themeA.Name == themeC.Name || themeB.Name == themeC.Name {
		t.Errorf("first three speakers should get distinct tones: %q %q %q", themeB.Name, themeA.Name, themeC.Name)
	}
	if m.Speakers() != 3 {
		t.Errorf("Speakers() = %d, want 3", m.Speakers())
	}
}

func TestThemeMap_CyclesPastPalette(t *testing.T) {
	m := NewThemeMap()

	first := m.Assign("spk0")
	for i := 1; i < PaletteSize; i++ {
		m.Assign(string(rune('a' + i)))
	}
	wrapped := m.Assign("overflow")
	if wrapped.Name != first.Name {
		t.Errorf("seventh speaker theme = %q, want cyclic reuse of %q", wrapped.Name, first.Name)
	}
}

func TestClockLabel(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00"},
		{2, "0:02"},
		{59.9, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{3725, "62:05"}, // minutes are unbounded
	}

	for _, tt := range tests {
		if got := ClockLabel(tt.sec); got != tt.want {
			t.Errorf("ClockLabel(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
