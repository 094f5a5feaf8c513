package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kjstillabower/weather-panel/internal/compass"
	"github.com/kjstillabower/weather-panel/internal/models"
)

const (
	// innerWidth is the span between the two border glyphs; contentWidth
	// leaves a one-column margin on each side. Labeled rows split the
	// content into a fixed label column and a fixed value column so every
	// row lines up regardless of which fields are absent.
	innerWidth   = 48
	contentWidth = innerWidth - 2
	labelWidth   = 15
	valueWidth   = contentWidth - labelWidth - 2

	title   = " WEATHER FORECAST PANEL "
	iconRow = "☁  ☀  ☂  ☃"
)

// Segment is a run of text with one style applied.
type Segment struct {
	Style Style
	Text  string
}

// Line is an ordered sequence of segments forming one panel row.
type Line []Segment

// Panel is the rendered weather block for one cycle. It is computed
// fresh each refresh, printed, and discarded.
type Panel struct {
	Lines []Line
}

// Plain returns the panel text with style tokens stripped. Used for
// no-color output and for asserting layout in tests.
func (p Panel) Plain() string {
	var b strings.Builder
	for i, line := range p.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, seg := range line {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Format renders a snapshot into a bordered, fixed-width panel. It is
// pure: no I/O, no escape sequences, and absent fields degrade to
// "N/A" without error.
func Format(coord models.Coordinate, snap models.Snapshot) Panel {
	timeStr := "N/A"
	if snap.ObservedAt != nil {
		timeStr = *snap.ObservedAt
	}
	tempStr := "N/A"
	if snap.Temperature != nil {
		tempStr = fmt.Sprintf("%.1f °C", *snap.Temperature)
	}
	windStr := "N/A"
	if snap.WindSpeed != nil {
		windStr = fmt.Sprintf("%.1f km/h", *snap.WindSpeed)
	}
	dirStr := compass.Label(snap.WindBearing)

	var p Panel
	p.add(titleLine())
	p.add(contentLine(StyleLabel, fmt.Sprintf("Location: lat=%.4f, lon=%.4f", coord.Latitude, coord.Longitude)))
	p.add(contentLine(StyleLabel, "Time: "+timeStr))
	p.add(separatorLine('═'))
	p.add(labeledLine("Temperature", tempStr, TemperatureStyle(snap.Temperature)))
	p.add(labeledLine("Wind Speed", windStr, StyleValue))
	p.add(labeledLine("Wind Direction", dirStr, StyleValue))
	p.add(separatorLine('─'))
	p.add(contentLine(StyleIcon, center(iconRow, contentWidth)))
	p.add(Line{{StyleBorder, "╚" + strings.Repeat("═", innerWidth) + "╝"}})
	return p
}

func (p *Panel) add(l Line) {
	p.Lines = append(p.Lines, l)
}

func titleLine() Line {
	fill := innerWidth - utf8.RuneCountInString(title)
	left := fill / 2
	return Line{
		{StyleBorder, "╔" + strings.Repeat("═", left)},
		{StyleTitle, title},
		{StyleBorder, strings.Repeat("═", fill-left) + "╗"},
	}
}

func separatorLine(fill rune) Line {
	return Line{{StyleBorder, "╠" + strings.Repeat(string(fill), innerWidth) + "╣"}}
}

func contentLine(style Style, text string) Line {
	return Line{
		{StyleBorder, "║ "},
		{style, padRight(text, contentWidth)},
		{StyleBorder, " ║"},
	}
}

func labeledLine(label, value string, valueStyle Style) Line {
	return Line{
		{StyleBorder, "║ "},
		{StyleLabel, padRight(label, labelWidth) + ": "},
		{valueStyle, padRight(value, valueWidth)},
		{StyleBorder, " ║"},
	}
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func center(s string, width int) string {
	fill := width - utf8.RuneCountInString(s)
	if fill <= 0 {
		return s
	}
	left := fill / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", fill-left)
}
