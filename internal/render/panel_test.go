package render

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kjstillabower/weather-panel/internal/models"
)

func f64(v float64) *float64 { return &v }

func str(s string) *string { return &s }

var sintra = models.Coordinate{Latitude: 38.8029, Longitude: -9.3817}

func TestFormat_FullSnapshot(t *testing.T) {
	snap := models.Snapshot{
		ObservedAt:  str("2024-01-01T12:00"),
		Temperature: f64(22.5),
		WindSpeed:   f64(14.3),
		WindBearing: f64(90),
	}

	p := Format(sintra, snap)
	plain := p.Plain()

	for _, want := range []string{
		"Location: lat=38.8029, lon=-9.3817",
		"Time: 2024-01-01T12:00",
		"22.5 °C",
		"14.3 km/h",
		"→ E",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("panel missing %q:\n%s", want, plain)
		}
	}

	tempRow := findLabeledLine(t, p, "Temperature")
	if got := tempRow[2].Style; got != StyleTempMild {
		t.Errorf("temperature value style = %q, want %q", got, StyleTempMild)
	}
	dirRow := findLabeledLine(t, p, "Wind Direction")
	if !strings.Contains(dirRow[2].Text, "→ E") {
		t.Errorf("wind direction value = %q, want east label", dirRow[2].Text)
	}
}

func TestFormat_AllFieldsAbsent(t *testing.T) {
	p := Format(sintra, models.Snapshot{})
	plain := p.Plain()

	if got := strings.Count(plain, "N/A"); got != 4 {
		t.Errorf("panel shows %d N/A placeholders, want 4 (time, temperature, wind speed, wind direction):\n%s", got, plain)
	}
	if !strings.Contains(plain, "Time: N/A") {
		t.Errorf("time row should degrade to N/A:\n%s", plain)
	}
	tempRow := findLabeledLine(t, p, "Temperature")
	if got := tempRow[2].Style; got != StyleNeutral {
		t.Errorf("absent temperature style = %q, want %q", got, StyleNeutral)
	}
}

func TestFormat_RowsAlign(t *testing.T) {
	snapshots := []models.Snapshot{
		{},
		{Temperature: f64(-3.2)},
		{ObservedAt: str("2024-06-15T08:30"), Temperature: f64(31.0), WindSpeed: f64(7.5), WindBearing: f64(200)},
	}
	for _, snap := range snapshots {
		p := Format(sintra, snap)
		for i, line := range p.Lines {
			var width int
			for _, seg := range line {
				width += utf8.RuneCountInString(seg.Text)
			}
			if width != innerWidth+2 {
				t.Errorf("line %d width = %d runes, want %d (snapshot %+v)", i, width, innerWidth+2, snap)
			}
		}
	}
}

func TestFormat_Pure(t *testing.T) {
	snap := models.Snapshot{Temperature: f64(12.0), WindBearing: f64(45)}
	a := Format(sintra, snap)
	b := Format(sintra, snap)
	if !reflect.DeepEqual(a, b) {
		t.Error("Format is not deterministic for identical inputs")
	}
}

func TestTemperatureStyle_Bands(t *testing.T) {
	tests := []struct {
		name string
		temp *float64
		want Style
	}{
		{"below cold boundary", f64(9.9), StyleTempCold},
		{"at mild lower boundary", f64(10.0), StyleTempMild},
		{"below hot boundary", f64(24.9), StyleTempMild},
		{"at hot lower boundary", f64(25.0), StyleTempHot},
		{"well below freezing", f64(-15.5), StyleTempCold},
		{"heat wave", f64(40.0), StyleTempHot},
		{"absent", nil, StyleNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemperatureStyle(tt.temp); got != tt.want {
				t.Errorf("TemperatureStyle = %q, want %q", got, tt.want)
			}
		})
	}
}

// findLabeledLine returns the segments of the row whose label column
// starts with the given label.
func findLabeledLine(t *testing.T, p Panel, label string) Line {
	t.Helper()
	for _, line := range p.Lines {
		if len(line) == 4 && strings.HasPrefix(line[1].Text, label) {
			return line
		}
	}
	t.Fatalf("no row labeled %q in panel:\n%s", label, p.Plain())
	return nil
}
