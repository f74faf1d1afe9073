// Package playback is the outbound port to the audio transport. The
// transcript side only issues seek-and-resume commands; it never owns the
// transport state.
package playback

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
)

// Player seeks the audio to a position and resumes playback from there.
type Player interface {
	PlayFrom(ctx context.Context, path string, startSec float64) error
}

// FFplay plays audio through the ffplay binary.
type FFplay struct{}

func (FFplay) PlayFrom(ctx context.Context, path string, startSec float64) error {
	if _, err := exec.LookPath("ffplay"); err != nil {
		return fmt.Errorf("ffplay not found: %w", err)
	}
	if math.IsNaN(startSec) || startSec < 0 {
		startSec = 0
	}

	cmd := exec.CommandContext(ctx,
		"ffplay",
		"-nodisp", "-autoexit",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(startSec, 'f', 3, 64),
		path,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Nop ignores playback requests.
type Nop struct{}

func (Nop) PlayFrom(context.Context, string, float64) error { return nil }
