package transcript

import (
	"math"
	"regexp"
	"strings"
)

// paragraphBreak matches runs of two or more consecutive line breaks.
var paragraphBreak = regexp.MustCompile(`\n{2,}|\r{2,}`)

// sentenceEnd matches a sentence terminator followed by whitespace: Latin
// punctuation, the ellipsis glyph, the Thai paiyannoi, and CJK full-width
// terminators. The terminator stays attached to the preceding sentence.
// Mixed-script edge cases (periods inside abbreviations and the like) are an
// accepted heuristic limitation.
var sentenceEnd = regexp.MustCompile(`([.?!…ฯ]|[。！？])\s+`)

// SegmentText splits raw transcript text into pseudo-utterances, spreading
// timestamps uniformly across the media duration and alternating synthetic
// speaker labels. No diarization happens here.
func SegmentText(text string, durationSec float64) []Utterance {
	chunks := splitParagraphs(text)
	if len(chunks) <= 1 {
		chunks = splitSentences(text)
	}
	if len(chunks) == 0 {
		chunks = []string{strings.TrimSpace(text)}
	}

	step := math.NaN()
	if isFinite(durationSec) && durationSec > 0 {
		step = durationSec / float64(len(chunks))
	}

	utts := make([]Utterance, len(chunks))
	for i, chunk := range chunks {
		start, end := math.NaN(), math.NaN()
		if isFinite(step) {
			start = math.Max(0, float64(i)*step)
			end = math.Max(0, float64(i+1)*step)
		}
		utts[i] = Utterance{
			Start:   start,
			End:     end,
			Speaker: defaultSpeaker(i),
			Text:    chunk,
		}
	}
	return utts
}

func splitParagraphs(text string) []string {
	var chunks []string
	for _, part := range paragraphBreak.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

func splitSentences(text string) []string {
	var chunks []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringSubmatchIndex(text, -1) {
		// loc[3] is the end of the terminator group; trailing whitespace is
		// consumed but not kept.
		if sent := strings.TrimSpace(text[last:loc[3]]); sent != "" {
			chunks = append(chunks, sent)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
