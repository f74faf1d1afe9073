// Package notify carries the three user-facing event kinds of a
// transcription run. Display timing and removal policy belong to whatever
// surface consumes the notifications, not to the emitters.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Kind is the semantic weight of a notification.
type Kind int

const (
	Pending Kind = iota
	Success
	Failure
)

// Notifier receives run-status events with a display string.
type Notifier interface {
	Notify(kind Kind, msg string)
}

var styles = map[Kind]struct {
	icon  string
	color text.Colors
}{
	Pending: {"⏳", text.Colors{text.FgYellow}},
	Success: {"✓", text.Colors{text.FgGreen}},
	Failure: {"!", text.Colors{text.FgRed}},
}

// Terminal prints toast-style one-liners with a per-kind icon, colored only
// when the stream is a terminal.
type Terminal struct {
	out   io.Writer
	color bool
}

func NewTerminal(out io.Writer) *Terminal {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Terminal{out: out, color: color}
}

func (t *Terminal) Notify(kind Kind, msg string) {
	st := styles[kind]
	line := st.icon + " " + msg
	if t.color {
		line = st.color.Sprint(line)
	}
	fmt.Fprintln(t.out, line)
}

// Discard drops every notification. Useful in tests and batch workers.
type Discard struct{}

func (Discard) Notify(Kind, string) {}
