// Package ui renders user-facing messages with Lip Gloss.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	symCheck = "✓"
	symCross = "✖"
)

// Printer writes results to Out and failures to Err.
type Printer struct {
	Out, Err io.Writer
	Theme    Theme

	outR, errR *lipgloss.Renderer
}

// NewPrinter builds renderers bound to each writer. In auto mode the color
// profile is detected from the writer, so pipes and buffers get plain text.
func NewPrinter(out, errw io.Writer, mode string, theme Theme) *Printer {
	p := &Printer{
		Out:   out,
		Err:   errw,
		Theme: theme,
		outR:  lipgloss.NewRenderer(out),
		errR:  lipgloss.NewRenderer(errw),
	}
	if theme.Monochrome {
		mode = ColorNever
	}
	switch mode {
	case ColorAlways:
		p.outR.SetColorProfile(termenv.ANSI256)
		p.errR.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		p.outR.SetColorProfile(termenv.Ascii)
		p.errR.SetColorProfile(termenv.Ascii)
	}
	return p
}

// OK prints a success confirmation.
func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.outR.NewStyle().Foreground(p.Theme.Success).Render(symCheck+" "+msg))
}

// Info prints a neutral message.
func (p *Printer) Info(msg string) { fmt.Fprintln(p.Out, msg) }

// Muted prints a faint message.
func (p *Printer) Muted(msg string) {
	fmt.Fprintln(p.Out, p.outR.NewStyle().Faint(true).Render(msg))
}

// Fail prints an error to Err.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.errR.NewStyle().Foreground(p.Theme.Error).Bold(true).Render(symCross+" "+msg))
}

// Success colors s for inline use on stdout.
func (p *Printer) Success(s string) string {
	return p.outR.NewStyle().Foreground(p.Theme.Success).Render(s)
}
