// Package session owns the mutable state of one upload-and-transcribe run:
// the live countdown, the per-render speaker theme map, and the current
// utterance sequence. Nothing persists across runs; Reset replaces all of
// it before a new pipeline invocation begins.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/thapanathk/speech2text-meeting/internal/api"
	"github.com/thapanathk/speech2text-meeting/internal/eta"
	"github.com/thapanathk/speech2text-meeting/internal/media"
	"github.com/thapanathk/speech2text-meeting/internal/notify"
	"github.com/thapanathk/speech2text-meeting/internal/transcript"
)

// Transcriber is the single outbound network call of a run.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string, progress api.ProgressFunc) (map[string]any, error)
}

// Session is the state of one logical upload-and-transcribe flow. It is
// owned by a single flow of control; no locking beyond replace-on-new-run
// is needed.
type Session struct {
	ID       string
	client   Transcriber
	notifier notify.Notifier

	countdown  *eta.Countdown
	themes     *transcript.ThemeMap
	utterances []transcript.Utterance

	// Injectable for tests.
	cpus     int
	probe    func(ctx context.Context, path string) float64
	logMedia func(ctx context.Context, path string) *media.Info
}

// Result is the outcome of one successful run.
type Result struct {
	Utterances []transcript.Utterance
	Bubbles    []transcript.Bubble
	Export     string
}

// New builds a session. onTick receives countdown labels; pass a no-op
// when no countdown display is wanted.
func New(client Transcriber, notifier notify.Notifier, onTick func(label string)) *Session {
	return &Session{
		ID:        uuid.NewString(),
		client:    client,
		notifier:  notifier,
		countdown: eta.NewCountdown(onTick),
		themes:    transcript.NewThemeMap(),
		cpus:      runtime.NumCPU(),
		probe:     media.Duration,
		logMedia:  media.LogInfo,
	}
}

// Reset deterministically clears all per-run state: countdown stopped,
// theme mapping replaced, displayed utterance list cleared. Safe to call at
// any time.
func (s *Session) Reset() {
	s.countdown.Stop()
	s.themes = transcript.NewThemeMap()
	s.utterances = nil
}

// Utterances returns the currently held utterance sequence. Empty until a
// run fully succeeds.
func (s *Session) Utterances() []transcript.Utterance {
	return s.utterances
}

// Run executes one full upload-and-transcribe pass. Utterances are only
// stored after a fully successful parse; on any failure the countdown is
// stopped, a failure notification fires, and the session is left empty and
// re-runnable.
func (s *Session) Run(ctx context.Context, inputPath string) (*Result, error) {
	s.Reset()
	log := slog.With("session", s.ID, "input", filepath.Base(inputPath))

	s.notifier.Notify(notify.Pending, "processing "+filepath.Base(inputPath))

	workingPath, cleanup, err := s.prepareInput(ctx, inputPath, log)
	if err != nil {
		s.notifier.Notify(notify.Failure, err.Error())
		return nil, err
	}
	defer cleanup()

	s.logMedia(ctx, workingPath)

	// Duration feeds the ETA and the fallback segmenter; unknown is fine.
	duration := s.probe(ctx, workingPath)
	s.countdown.Start(eta.Estimate(duration, s.cpus))

	payload, err := s.client.Transcribe(ctx, workingPath, uploadProgress(log))
	if err != nil {
		s.countdown.Stop()
		s.notifier.Notify(notify.Failure, err.Error())
		return nil, err
	}

	utts := transcript.Normalize(payload, duration)
	s.utterances = utts
	s.countdown.Stop()

	bubbles := transcript.BuildView(utts, s.themes)
	result := &Result{
		Utterances: utts,
		Bubbles:    bubbles,
		Export:     transcript.Export(utts),
	}

	if len(bubbles) == 0 {
		s.notifier.Notify(notify.Success, "transcription finished: no usable text")
	} else {
		s.notifier.Notify(notify.Success, "transcription complete")
	}
	log.Info("run complete", "utterances", len(utts), "bubbles", len(bubbles))
	return result, nil
}

// prepareInput extracts the audio track from video inputs before upload.
// Audio inputs pass through untouched.
func (s *Session) prepareInput(ctx context.Context, inputPath string, log *slog.Logger) (string, func(), error) {
	ext := filepath.Ext(inputPath)
	if !media.IsVideoExtension(ext) {
		return inputPath, func() {}, nil
	}
	if !media.Available() {
		return "", func() {}, fmt.Errorf("video input %s needs ffmpeg on the PATH", filepath.Base(inputPath))
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	tempAudio := filepath.Join(filepath.Dir(inputPath), "temp_audio_"+base+".m4a")
	log.Info("extracting audio from video")
	if err := media.ExtractAudio(ctx, inputPath, tempAudio); err != nil {
		return "", func() {}, fmt.Errorf("extract audio: %w", err)
	}
	return tempAudio, func() { os.Remove(tempAudio) }, nil
}

func uploadProgress(log *slog.Logger) api.ProgressFunc {
	return func(read, total int64) {
		pct := 0.0
		if total > 0 {
			pct = math.Min(float64(read)/float64(total)*100, 100)
		}
		log.Debug("upload progress", "percent", fmt.Sprintf("%.1f%%", pct))
	}
}
