// Package presentation renders the merged event stream to the console.
package presentation

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/cloudwatcher/internal/core/model"
	"github.com/penwyp/cloudwatcher/internal/util"
)

// Options controls how events are rendered.
type Options struct {
	// Color enables ANSI coloring. Auto-detected via TerminalOptions.
	Color bool
	// ShowStream adds the stream name to each line.
	ShowStream bool
	// Width truncates messages so lines fit the terminal; 0 disables.
	Width int
	// JSON emits one JSON object per event instead of text.
	JSON bool
}

// TerminalOptions fills the auto-detected parts of Options for stdout:
// color when stdout is a terminal, and the width for truncation.
func TerminalOptions(truncate bool) Options {
	opts := Options{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		opts.Color = true
		if truncate {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				opts.Width = w
			}
		}
	}
	return opts
}

// Printer writes events to a shared sink. Concurrent group workers call Print
// simultaneously; a mutex keeps one round's lines contiguous and unscrambled.
type Printer struct {
	out  io.Writer
	mu   sync.Mutex
	opts Options
	tp   *util.TimeProvider
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, opts Options) *Printer {
	return &Printer{out: out, opts: opts, tp: util.GetTimeProvider()}
}

// SetColor toggles coloring; applied from config live-reload.
func (p *Printer) SetColor(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Color = on
}

// Print renders the events in the order given. The whole batch is written
// under one lock so output from concurrent groups never interleaves mid-round.
func (p *Printer) Print(events []model.RawEvent) error {
	if len(events) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		var line string
		if p.opts.JSON {
			data, err := marshalEvent(e)
			if err != nil {
				return fmt.Errorf("encode event %s: %w", e.ID, err)
			}
			line = string(data)
		} else {
			line = p.formatText(e)
		}
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) formatText(e model.RawEvent) string {
	ts := p.tp.FormatMillis(e.Timestamp, util.EventTimeLayout)

	prefix := fmt.Sprintf("%s %s", ts, e.Group)
	if p.opts.ShowStream && e.Stream != "" {
		prefix += " " + e.Stream
	}
	prefix += ":"

	msg := e.Message
	if p.opts.Width > 0 {
		avail := p.opts.Width - runewidth.StringWidth(prefix) - 1
		if avail > 1 {
			msg = runewidth.Truncate(msg, avail, "…")
		}
	}

	if !p.opts.Color {
		return prefix + " " + msg
	}

	colored := fmt.Sprintf("%s%s%s %s%s%s", util.ColorGreen, ts, util.ColorReset,
		util.ColorMagenta, e.Group, util.ColorReset)
	if p.opts.ShowStream && e.Stream != "" {
		colored += fmt.Sprintf(" %s%s%s", util.ColorCyan, e.Stream, util.ColorReset)
	}
	return colored + ": " + colorizeMessage(msg)
}

// colorizeMessage picks a color from the severity token in the message body,
// matching on substrings since the payload format is opaque.
func colorizeMessage(msg string) string {
	switch {
	case strings.Contains(msg, "INFO"):
		return util.ColorBlue + msg + util.ColorReset
	case strings.Contains(msg, "ERROR"):
		return util.ColorRed + msg + util.ColorReset
	case strings.Contains(msg, "WARN"):
		return util.ColorYellow + msg + util.ColorReset
	default:
		return msg
	}
}
