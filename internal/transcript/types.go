package transcript

import "math"

// Utterance is one normalized, speaker-attributed, time-coded span of
// transcript text. Start/End are seconds from the media origin; NaN means
// no timing is known and must survive normalization untouched, since 0 is
// a real timestamp.
type Utterance struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// HasTiming reports whether both endpoints carry real timestamps.
func (u Utterance) HasTiming() bool {
	return isFinite(u.Start) && isFinite(u.End)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
