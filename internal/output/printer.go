// Package output renders command results as styled text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// defaultWidth is used when the writer is not a terminal.
const defaultWidth = 120

// Printer writes command results to w.
type Printer struct {
	w      io.Writer
	format string
	width  int
	styles Styles
}

// New creates a Printer. Unknown formats fall back to text.
func New(w io.Writer, format, color string) *Printer {
	r := lipgloss.NewRenderer(w)
	width := defaultWidth

	tty := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}

	switch {
	case color == ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case color == ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case !tty:
		r.SetColorProfile(termenv.Ascii)
	}

	switch format {
	case FormatJSON, FormatYAML:
	default:
		format = FormatText
	}

	return &Printer{
		w:      w,
		format: format,
		width:  width,
		styles: NewStyles(r),
	}
}

// Format returns the effective output format.
func (p *Printer) Format() string {
	return p.format
}

// structured writes v as JSON or YAML and reports whether it did.
func (p *Printer) structured(v any) (bool, error) {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) println(s string) {
	_, _ = io.WriteString(p.w, s+"\n")
}

func (p *Printer) rule(width int) string {
	if width > p.width {
		width = p.width
	}
	return p.styles.Muted.Render(strings.Repeat("─", width))
}
