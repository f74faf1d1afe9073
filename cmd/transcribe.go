package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thapanathk/speech2text-meeting/internal/api"
	"github.com/thapanathk/speech2text-meeting/internal/config"
	"github.com/thapanathk/speech2text-meeting/internal/eta"
	"github.com/thapanathk/speech2text-meeting/internal/media"
	"github.com/thapanathk/speech2text-meeting/internal/notify"
	"github.com/thapanathk/speech2text-meeting/internal/playback"
	"github.com/thapanathk/speech2text-meeting/internal/session"
	"github.com/thapanathk/speech2text-meeting/internal/transcript"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <input-file>...",
	Short: "Transcribe audio into a chat-style transcript",
	Long: `Transcribe one or more audio/video files through the transcription service.
The response is normalized into speaker-attributed, time-coded utterances,
rendered as chat bubbles, and exported as a plain-text transcript file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

var (
	endpoint      string
	output        string
	noExport      bool
	assumeYes     bool
	noAsync       bool
	maxConcurrent int
	rateLimit     int
	playFrom      int
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVar(&endpoint, "endpoint", "", "transcription endpoint URL (default from config/env)")
	transcribeCmd.Flags().StringVarP(&output, "output", "o", "", "export path (default: <input>-transcription-<timestamp>.txt)")
	transcribeCmd.Flags().BoolVar(&noExport, "no-export", false, "skip writing the export file")
	transcribeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the ETA confirmation prompt")
	transcribeCmd.Flags().BoolVar(&noAsync, "no-async", false, "process a batch sequentially")
	transcribeCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.MaxConcurrent, "max concurrent uploads in batch mode")
	transcribeCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.APIRateLimitPerMin, "API requests per minute")
	transcribeCmd.Flags().IntVar(&playFrom, "play-from", -1, "after rendering, play audio from bubble N")

	rootCmd.AddCommand(transcribeCmd)
}

// validExts are the accepted input types: the audio formats the original
// service takes, plus video containers whose audio track gets extracted.
var validExts = map[string]bool{
	".mp3": true, ".m4a": true, ".wav": true, ".flac": true,
	".ogg": true, ".aac": true, ".mp4": true, ".mov": true,
	".mkv": true, ".avi": true, ".flv": true, ".webm": true,
}

// resolveInputs validates every input up front; nothing is uploaded when
// any input is bad.
func resolveInputs(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", arg)
		}
		ext := strings.ToLower(filepath.Ext(absPath))
		if !validExts[ext] {
			return nil, fmt.Errorf("unsupported file type: %s", ext)
		}
		paths = append(paths, absPath)
	}
	return paths, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	// Flags override the environment only when explicitly set.
	if cmd.Flags().Changed("rate-limit") {
		cfg.APIRateLimitPerMin = rateLimit
	}
	if cmd.Flags().Changed("max-concurrent") {
		cfg.MaxConcurrent = maxConcurrent
	}

	notifier := notify.NewTerminal(os.Stderr)

	paths, err := resolveInputs(args)
	if err != nil {
		// Input errors are reported before any network call is issued.
		notifier.Notify(notify.Failure, err.Error())
		return err
	}

	if output != "" && len(paths) > 1 {
		return fmt.Errorf("--output only applies to a single input")
	}
	if playFrom >= 0 && len(paths) > 1 {
		return fmt.Errorf("--play-from only applies to a single input")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.Endpoint, cfg.UploadTimeout, cfg.APIRateLimitPerMin)

	if len(paths) == 1 {
		if !assumeYes && !confirmETA(ctx, paths[0]) {
			slog.Info("cancelled")
			return nil
		}
		return processOne(ctx, client, notifier, paths[0], true)
	}

	if noAsync || cfg.MaxConcurrent <= 1 {
		for _, path := range paths {
			if err := processOne(ctx, client, notifier, path, false); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrent)
	for _, path := range paths {
		g.Go(func() error {
			return processOne(gctx, client, notifier, path, false)
		})
	}
	return g.Wait()
}

// confirmETA shows the wait estimate and asks before starting, mirroring
// the original confirmation step. Unknown durations still produce an
// estimate.
func confirmETA(ctx context.Context, path string) bool {
	duration := media.Duration(ctx, path)
	est := eta.Estimate(duration, runtime.NumCPU())
	fmt.Fprintf(os.Stderr, "Estimated processing time %s. Continue? [Y/n] ", eta.Label(est))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}

func processOne(ctx context.Context, client session.Transcriber, notifier notify.Notifier, path string, showCountdown bool) error {
	onTick := func(string) {}
	if showCountdown {
		onTick = func(label string) {
			fmt.Fprintf(os.Stderr, "\rETA %s  ", label)
		}
	}

	sess := session.New(client, notifier, onTick)
	result, err := sess.Run(ctx, path)
	if showCountdown {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	printTranscript(os.Stdout, result.Bubbles)

	if !noExport {
		out := output
		if out == "" {
			// Per-input default name; a shared timestamp-only name would
			// let batch exports finishing in the same second overwrite
			// each other.
			out = transcript.FilenameFor(path, time.Now())
		}
		if err := os.WriteFile(out, transcript.FileContent(result.Export), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		slog.Info("transcript saved", "path", out)
	}

	if playFrom >= 0 {
		if playFrom >= len(result.Bubbles) {
			return fmt.Errorf("--play-from %d out of range, transcript has %d bubbles", playFrom, len(result.Bubbles))
		}
		player := playback.FFplay{}
		if err := player.PlayFrom(ctx, path, result.Bubbles[playFrom].SeekStart); err != nil {
			return fmt.Errorf("playback: %w", err)
		}
	}

	return nil
}
