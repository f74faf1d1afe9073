package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/thapanathk/speech2text-meeting/internal/transcript"
)

// printTranscript renders the chat-style bubbles, left-aligned, with a
// per-speaker gutter down the left edge and reduced spacing between
// consecutive turns of the same speaker. Colors are applied only on a
// terminal.
func printTranscript(w io.Writer, bubbles []transcript.Bubble) {
	if len(bubbles) == 0 {
		fmt.Fprintln(w, "no usable text")
		return
	}

	colored := writerIsTerminal(w)
	for i, b := range bubbles {
		if i > 0 && !b.Tight {
			fmt.Fprintln(w)
		}
		header := b.Header
		gutter := "│ "
		if colored {
			header = b.Theme.Heading.Sprint(header)
			gutter = b.Theme.Border.Sprint(gutter)
		}
		fmt.Fprintf(w, "%s\n%s%s\n", header, gutter, b.Text)
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
