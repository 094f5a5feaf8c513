package term

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kjstillabower/weather-panel/internal/render"
)

// Screen writes rendered panels and status lines to a terminal-like
// writer, mapping style tokens to colors. Color choice lives here;
// the formatter only knows tokens.
type Screen struct {
	out     io.Writer
	noColor bool
	palette map[render.Style]*color.Color
}

// NewScreen creates a Screen writing to out. With noColor set, style
// tokens are dropped and plain text is written; otherwise escape codes
// are emitted unconditionally, regardless of TTY detection.
func NewScreen(out io.Writer, noColor bool) *Screen {
	s := &Screen{out: out, noColor: noColor}
	if !noColor {
		s.palette = newPalette()
	}
	return s
}

func newPalette() map[render.Style]*color.Color {
	p := map[render.Style]*color.Color{
		render.StyleBorder:   color.New(color.FgBlue),
		render.StyleTitle:    color.New(color.FgMagenta, color.Bold),
		render.StyleLabel:    color.New(color.FgYellow),
		render.StyleValue:    color.New(color.FgWhite),
		render.StyleIcon:     color.New(color.FgCyan),
		render.StyleTempCold: color.New(color.FgCyan),
		render.StyleTempMild: color.New(color.FgGreen),
		render.StyleTempHot:  color.New(color.FgRed),
		render.StyleNeutral:  color.New(color.FgWhite),
		render.StyleNotice:   color.New(color.FgCyan),
		render.StyleFarewell: color.New(color.FgYellow),
		render.StyleError:    color.New(color.FgRed),
	}
	// Override the package-level TTY sniffing so output is deterministic
	// whether stdout is a terminal, a pipe, or a test buffer.
	for _, c := range p {
		c.EnableColor()
	}
	return p
}

// Clear erases the display and homes the cursor.
func (s *Screen) Clear() {
	fmt.Fprint(s.out, "\033[2J\033[H")
}

// PrintPanel writes each panel line with its palette colors applied,
// followed by a trailing newline.
func (s *Screen) PrintPanel(p render.Panel) {
	for _, line := range p.Lines {
		for _, seg := range line {
			fmt.Fprint(s.out, s.paint(seg.Style, seg.Text))
		}
		fmt.Fprintln(s.out)
	}
}

// PrintStatus writes a single styled status line (startup and updated
// notices, fetch diagnostics, the farewell).
func (s *Screen) PrintStatus(style render.Style, text string) {
	fmt.Fprintln(s.out, s.paint(style, text))
}

func (s *Screen) paint(style render.Style, text string) string {
	if s.noColor {
		return text
	}
	c, ok := s.palette[style]
	if !ok {
		return text
	}
	return c.Sprint(text)
}
