package transcript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// segmentPaths are the known payload locations for structured segment
// arrays, in probe order. The first path holding a non-empty array wins;
// results are never merged across paths.
var segmentPaths = [][]string{
	{"segments"},
	{"data", "segments"},
	{"result", "segments"},
	{"diarization", "segments"},
}

// textKeys are the alternative field names a segment's text may hide under.
var textKeys = []string{"text", "utterance", "sentence"}

// Normalize extracts the canonical utterance sequence from a decoded
// response payload. When no segment path matches, it falls back to
// splitting flat text proportionally across the media duration. An empty
// result is a valid outcome, not an error.
func Normalize(payload map[string]any, durationSec float64) []Utterance {
	for _, path := range segmentPaths {
		segs := lookupArray(payload, path)
		if len(segs) == 0 {
			continue
		}
		utts := make([]Utterance, len(segs))
		for i, raw := range segs {
			utts[i] = normalizeSegment(raw, i)
		}
		return utts
	}

	if text := flatText(payload); text != "" {
		return SegmentText(text, durationSec)
	}
	return nil
}

func lookupArray(payload map[string]any, path []string) []any {
	cur := any(payload)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	arr, _ := cur.([]any)
	return arr
}

func normalizeSegment(raw any, index int) Utterance {
	seg, _ := raw.(map[string]any)
	u := Utterance{
		Start:   numberOrNaN(seg["start"]),
		End:     numberOrNaN(seg["end"]),
		Speaker: defaultSpeaker(index),
	}
	if s, ok := seg["speaker"].(string); ok && s != "" {
		u.Speaker = s
	}
	for _, key := range textKeys {
		if v, present := seg[key]; present && v != nil {
			u.Text = coerceString(v)
			break
		}
	}
	return u
}

// numberOrNaN passes JSON numbers through unchanged and maps everything
// else to NaN. Missing timing must never collapse to 0.
func numberOrNaN(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return math.NaN()
}

func defaultSpeaker(index int) string {
	return fmt.Sprintf("SPEAKER_%02d", index%2)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// flatText pulls the fallback plain text out of a payload with no usable
// segment array: a non-blank top-level text field, else a lines array
// joined with newlines.
func flatText(payload map[string]any) string {
	if s, ok := payload["text"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	lines, ok := payload["lines"].([]any)
	if !ok {
		return ""
	}
	parts := make([]string, len(lines))
	for i, ln := range lines {
		if ln != nil {
			parts[i] = coerceString(ln)
		}
	}
	joined := strings.Join(parts, "\n")
	if strings.TrimSpace(joined) == "" {
		return ""
	}
	return joined
}
