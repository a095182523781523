package sweep

import (
	"fmt"
	"math"

	"gopower/domain/power"
)

// Axis names the single parameter a grid varies while the others stay at
// their defaults.
type Axis string

const (
	AxisMDE      Axis = "mde"
	AxisAlpha    Axis = "alpha"
	AxisBaseline Axis = "baseline"
)

// ParseAxis maps a user-supplied axis name onto an Axis.
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisMDE, AxisAlpha, AxisBaseline:
		return Axis(s), nil
	default:
		return "", fmt.Errorf("unknown sweep axis %q (want mde, alpha or baseline)", s)
	}
}

// Point is one row of a parameter grid: the varying axis value plus the
// fully-resolved power query it induces.
type Point struct {
	Value float64     `json:"value"`
	Query power.Query `json:"query"`
}

// Grid is an ordered sequence of power queries varying exactly one parameter.
// Order is generation order; chart layers rely on it.
type Grid struct {
	Axis   Axis    `json:"axis"`
	Points []Point `json:"points"`
}

// Fixed holds the parameters a grid keeps constant. The zero value is not
// useful; use Defaults.
type Fixed struct {
	Baseline float64
	MDE      float64
	Alpha    float64
	Power    float64
}

// Defaults are the documented fixed parameters: power=0.8, significance=0.05,
// baseline=0.5, MDE=0.05.
func Defaults() Fixed {
	return Fixed{
		Baseline: power.DefaultBaseline,
		MDE:      power.DefaultMDE,
		Alpha:    power.DefaultAlpha,
		Power:    power.DefaultPower,
	}
}

// MDEGrid varies the relative minimum detectable effect over values, holding
// baseline, alpha and power fixed.
func MDEGrid(fixed Fixed, values []float64) Grid {
	g := Grid{Axis: AxisMDE, Points: make([]Point, 0, len(values))}
	for _, mde := range values {
		g.Points = append(g.Points, Point{
			Value: mde,
			Query: power.FromRelativeMDE(fixed.Baseline, mde, fixed.Alpha, fixed.Power),
		})
	}
	return g
}

// AlphaGrid varies the two-sided significance level.
func AlphaGrid(fixed Fixed, values []float64) Grid {
	g := Grid{Axis: AxisAlpha, Points: make([]Point, 0, len(values))}
	for _, alpha := range values {
		g.Points = append(g.Points, Point{
			Value: alpha,
			Query: power.FromRelativeMDE(fixed.Baseline, fixed.MDE, alpha, fixed.Power),
		})
	}
	return g
}

// BaselineGrid varies the control-group conversion rate. The treatment rate
// moves with it, since the MDE is relative to baseline.
func BaselineGrid(fixed Fixed, values []float64) Grid {
	g := Grid{Axis: AxisBaseline, Points: make([]Point, 0, len(values))}
	for _, baseline := range values {
		g.Points = append(g.Points, Point{
			Value: baseline,
			Query: power.FromRelativeMDE(baseline, fixed.MDE, fixed.Alpha, fixed.Power),
		})
	}
	return g
}

// NewGrid builds the grid for an axis using the documented value ranges
// (MDE 1%-10%, alpha 1%-10%, baseline 5%-50%) around the given fixed
// parameters.
func NewGrid(axis Axis, fixed Fixed) (Grid, error) {
	switch axis {
	case AxisMDE:
		return MDEGrid(fixed, Range(0.01, 0.10, 0.005)), nil
	case AxisAlpha:
		return AlphaGrid(fixed, Range(0.01, 0.10, 0.005)), nil
	case AxisBaseline:
		return BaselineGrid(fixed, Range(0.05, 0.50, 0.025)), nil
	default:
		return Grid{}, fmt.Errorf("unknown sweep axis %q", axis)
	}
}

// Range produces an inclusive arithmetic progression. The step count is
// derived up front so float accumulation cannot drop the final value, and
// every value is snapped to the step's decimal grain so grid points carry
// the canonical decimals (0.1, not 0.09999999999999999) into JSON, charts
// and workbooks.
func Range(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}

	// Two digits beyond the step's leading decimal cover steps like 0.025.
	grain := 1.0
	for grain*step < 1 && grain < 1e12 {
		grain *= 10
	}
	grain *= 100

	n := int(math.Round((to-from)/step)) + 1
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, math.Round((from+float64(i)*step)*grain)/grain)
	}
	return values
}
