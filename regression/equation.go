package regression

import (
	"strconv"
	"strings"
)

// Equation returns the line as "y = mx + b" with coefficients rounded to places.
//
// The sign of the intercept is folded into the operator ("y = 2x - 3"), a unit
// slope is written as "x" and zero terms are dropped. Terms are dropped after
// rounding, so a slope smaller than half a unit in the last place prints as
// "y = b" with no x term.
//
// Example:
//
//	Line{Slope: 0.6, Intercept: 2.2}.Equation(3)  // "y = 0.6x + 2.2"
//	Line{Slope: -1, Intercept: -0.25}.Equation(3) // "y = -x - 0.25"
func (l Line) Equation(places int) string {
	return l.format(places, "")
}

// LaTeX returns the line in LaTeX math notation, e.g. "y = 0.6 x + 2.2".
func (l Line) LaTeX(places int) string {
	return l.format(places, " ")
}

// String returns the equation at DisplayPrecision.
func (l Line) String() string {
	return l.Equation(DisplayPrecision)
}

func (l Line) format(places int, mulSep string) string {
	m := RoundValue(l.Slope, places)
	b := RoundValue(l.Intercept, places)

	var sb strings.Builder
	sb.WriteString("y = ")

	switch m {
	case 0:
		sb.WriteString(formatNumber(b))
		return sb.String()
	case 1:
		sb.WriteString("x")
	case -1:
		sb.WriteString("-x")
	default:
		sb.WriteString(formatNumber(m))
		sb.WriteString(mulSep)
		sb.WriteString("x")
	}

	switch {
	case b > 0:
		sb.WriteString(" + ")
		sb.WriteString(formatNumber(b))
	case b < 0:
		sb.WriteString(" - ")
		sb.WriteString(formatNumber(-b))
	}

	return sb.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
