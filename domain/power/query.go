package power

// Default planning parameters used across the sweep grids and the CLI.
// These match the conventional experimentation defaults: an even-odds
// baseline, a 5% relative lift, 5% two-sided significance and 80% power.
const (
	DefaultBaseline = 0.5
	DefaultMDE      = 0.05
	DefaultAlpha    = 0.05
	DefaultPower    = 0.8
)

// Query is an immutable two-proportion power query. P1 is the control-group
// success rate, P2 the treatment-group rate, Alpha the two-sided Type-I error
// bound and Power the desired detection probability (1 - beta).
type Query struct {
	P1    float64 `json:"p1"`
	P2    float64 `json:"p2"`
	Alpha float64 `json:"alpha"`
	Power float64 `json:"power"`
}

// FromRelativeMDE builds a query where the treatment rate is derived from a
// relative minimum detectable effect: p2 = baseline * (1 + mde).
func FromRelativeMDE(baseline, mde, alpha, pw float64) Query {
	return Query{
		P1:    baseline,
		P2:    baseline * (1 + mde),
		Alpha: alpha,
		Power: pw,
	}
}

// Validate checks the calculator preconditions. Every probability must lie
// strictly inside (0,1), and the two rates must differ: a zero effect size
// makes the required sample size undefined.
func (q Query) Validate() error {
	if err := checkProbability("p1", q.P1); err != nil {
		return err
	}
	if err := checkProbability("p2", q.P2); err != nil {
		return err
	}
	if err := checkProbability("alpha", q.Alpha); err != nil {
		return err
	}
	if err := checkProbability("power", q.Power); err != nil {
		return err
	}
	if q.P1 == q.P2 {
		return newInvalidParameter("p2", q.P2, "p1 equals p2, effect size is zero and sample size is undefined")
	}
	return nil
}

func checkProbability(name string, v float64) error {
	if v <= 0 || v >= 1 {
		return newInvalidParameter(name, v, "probability must lie strictly in (0,1)")
	}
	return nil
}
