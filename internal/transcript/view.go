package transcript

import "fmt"

// Bubble is one rendered transcript unit.
type Bubble struct {
	Speaker string
	Theme   Theme
	Header  string
	Text    string
	// Tight marks an utterance that directly follows another one from the
	// same speaker; the renderer collapses the spacing between them.
	Tight bool
	// SeekStart is where playback jumps when the bubble is selected,
	// clamped to 0 when the utterance carries no timing.
	SeekStart float64
}

// BuildView filters the utterance sequence and arranges it for display.
// Order is never changed here; spacing and theming are purely
// presentational consequences of the canonical order.
func BuildView(utts []Utterance, themes *ThemeMap) []Bubble {
	clean := Filter(utts)
	bubbles := make([]Bubble, 0, len(clean))

	prev := ""
	hasPrev := false
	for _, u := range clean {
		b := Bubble{
			Speaker: u.Speaker,
			Theme:   themes.Assign(u.Speaker),
			Header:  u.Speaker,
			Text:    u.Text,
			Tight:   hasPrev && prev == u.Speaker,
		}
		// Never show NaN or a fabricated time in the header.
		if u.HasTiming() {
			b.Header = fmt.Sprintf("%s • %s–%s", u.Speaker, ClockLabel(u.Start), ClockLabel(u.End))
		}
		if isFinite(u.Start) {
			b.SeekStart = u.Start
		}
		bubbles = append(bubbles, b)
		prev, hasPrev = u.Speaker, true
	}
	return bubbles
}

// ClockLabel formats seconds as M:SS with unbounded minutes.
func ClockLabel(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
