package render

// Style names a presentation treatment for a panel segment. The
// formatter emits only these tokens; mapping them to terminal escape
// sequences is the term package's job, so formatted output can be
// asserted against without parsing ANSI codes.
type Style string

const (
	StyleBorder   Style = "border"
	StyleTitle    Style = "title"
	StyleLabel    Style = "label"
	StyleValue    Style = "value"
	StyleIcon     Style = "icon"
	StyleTempCold Style = "temp_cold"
	StyleTempMild Style = "temp_mild"
	StyleTempHot  Style = "temp_hot"
	StyleNeutral  Style = "neutral"
	StyleNotice   Style = "notice"
	StyleFarewell Style = "farewell"
	StyleError    Style = "error"
)

// TemperatureStyle selects the presentation band for a temperature in
// °C: below 10 is cold, 10 up to but excluding 25 is mild, 25 and above
// is hot. An absent temperature renders neutral.
func TemperatureStyle(temp *float64) Style {
	switch {
	case temp == nil:
		return StyleNeutral
	case *temp < 10:
		return StyleTempCold
	case *temp < 25:
		return StyleTempMild
	default:
		return StyleTempHot
	}
}
