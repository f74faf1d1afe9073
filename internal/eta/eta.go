// Package eta estimates how long the remote transcription of a file will
// take and drives the countdown shown while the request is in flight. The
// estimate is display-only; it never gates or times out the actual request.
package eta

import (
	"fmt"
	"math"
)

const (
	defaultDurationSec = 180
	minBaseSec         = 60
	overheadSec        = 25
	bufferPct          = 0.30
	fastFactor         = 0.75
	slowFactor         = 1.25
	fastCPUThreshold   = 8
)

// Estimate returns the expected total wait in seconds for transcribing
// media of the given duration. Unknown durations fall back to three
// minutes, the floor is one minute, and weaker clients get the pessimistic
// multiplier.
func Estimate(durationSec float64, logicalCPUs int) int {
	base := float64(defaultDurationSec)
	if !math.IsNaN(durationSec) && !math.IsInf(durationSec, 0) && durationSec != 0 {
		base = math.Round(durationSec)
	}
	if base < minBaseSec {
		base = minBaseSec
	}

	factor := slowFactor
	if logicalCPUs >= fastCPUThreshold {
		factor = fastFactor
	}

	return int(math.Round((base*factor + overheadSec) * (1 + bufferPct)))
}

// Label formats remaining seconds as M:SS with unbounded minutes.
func Label(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
