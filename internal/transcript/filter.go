package transcript

import (
	"regexp"
	"strings"
)

// errorPrefix recognizes service-reported error payloads leaking into the
// transcript text: an optional bracket, the word "error", then a colon or
// whitespace. This is a prefix shape check; an utterance merely mentioning
// the word mid-sentence does not match.
var errorPrefix = regexp.MustCompile(`(?i)^\s*\[?\s*error[\s:]`)

// Filter removes empty and error-marker utterances, preserving order.
// Filtering an already-filtered list yields the same list.
func Filter(utts []Utterance) []Utterance {
	kept := make([]Utterance, 0, len(utts))
	for _, u := range utts {
		if Dropped(u) {
			continue
		}
		kept = append(kept, u)
	}
	return kept
}

// Dropped reports whether an utterance is discarded. The renderer and the
// exporter both apply this predicate, each on its own.
func Dropped(u Utterance) bool {
	t := strings.TrimSpace(u.Text)
	return t == "" || errorPrefix.MatchString(t)
}
