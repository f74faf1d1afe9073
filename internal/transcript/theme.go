package transcript

import "github.com/jedib0t/go-pretty/v6/text"

// Theme is the visual identity of one speaker within a single render.
type Theme struct {
	Name    string
	Heading text.Colors
	Border  text.Colors
}

// palette holds the six speaker tones. When a transcript has more distinct
// speakers than tones, themes repeat cyclically; collisions are expected.
var palette = []Theme{
	{Name: "indigo", Heading: text.Colors{text.FgHiBlue, text.Bold}, Border: text.Colors{text.FgBlue}},
	{Name: "emerald", Heading: text.Colors{text.FgHiGreen, text.Bold}, Border: text.Colors{text.FgGreen}},
	{Name: "rose", Heading: text.Colors{text.FgHiRed, text.Bold}, Border: text.Colors{text.FgRed}},
	{Name: "amber", Heading: text.Colors{text.FgHiYellow, text.Bold}, Border: text.Colors{text.FgYellow}},
	{Name: "cyan", Heading: text.Colors{text.FgHiCyan, text.Bold}, Border: text.Colors{text.FgCyan}},
	{Name: "violet", Heading: text.Colors{text.FgHiMagenta, text.Bold}, Border: text.Colors{text.FgMagenta}},
}

// PaletteSize is the number of distinct speaker tones.
const PaletteSize = 6

// ThemeMap hands out themes in round-robin order of first appearance and
// keeps them stable for the lifetime of one render.
type ThemeMap struct {
	assigned map[string]Theme
	next     int
}

func NewThemeMap() *ThemeMap {
	return &ThemeMap{assigned: make(map[string]Theme)}
}

// Assign returns the speaker's theme, allocating the next palette entry on
// first sight.
func (m *ThemeMap) Assign(speaker string) Theme {
	if th, ok := m.assigned[speaker]; ok {
		return th
	}
	th := palette[m.next%len(palette)]
	m.next++
	m.assigned[speaker] = th
	return th
}

// Speakers reports how many distinct speakers have been themed so far.
func (m *ThemeMap) Speakers() int {
	return len(m.assigned)
}
