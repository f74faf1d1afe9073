package transcript

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// utf8BOM keeps exported files readable in spreadsheet and editor tools
// that sniff encodings.
const utf8BOM = "\uFEFF"

// emptyExportMarker stands in for the file body when every utterance was
// dropped.
const emptyExportMarker = "[no usable text]"

// Export serializes the utterance sequence as a line-oriented plain-text
// transcript, one line per kept utterance, joined with single newlines and
// no trailing newline. The drop rule is re-applied here independently of
// the renderer. An all-dropped input exports as the empty string.
func Export(utts []Utterance) string {
	var lines []string
	for _, u := range utts {
		if Dropped(u) {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s - %s] %s: %s",
			exportTime(u.Start), exportTime(u.End),
			strings.ToUpper(u.Speaker), strings.TrimSpace(u.Text)))
	}
	return strings.Join(lines, "\n")
}

// exportTime renders seconds as H:MM:SS, dropping the hour segment when it
// is zero, with "--:--" for anything that is not a finite non-negative
// number.
func exportTime(sec float64) string {
	if !isFinite(sec) || sec < 0 {
		return "--:--"
	}
	total := int(sec)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Filename derives the export artifact name from the moment of export,
// UTC, with the timestamp flattened for filesystem safety.
func Filename(now time.Time) string {
	return "transcription-" + now.UTC().Format("2006-01-02-15-04-05") + ".txt"
}

// FilenameFor prefixes Filename with the input's base name. The timestamp
// alone has one-second resolution, so exports from a batch finishing within
// the same second would collide without the per-input prefix.
func FilenameFor(inputPath string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return base + "-" + Filename(now)
}

// FileContent builds the bytes written to the export artifact: a UTF-8 BOM
// followed by the export text, with a fixed marker substituted when the
// export is empty so the file is never a bare BOM.
func FileContent(export string) []byte {
	if export == "" {
		export = emptyExportMarker
	}
	return []byte(utf8BOM + export)
}
