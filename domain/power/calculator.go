package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// SampleSize computes the minimum per-group sample size for a two-proportion
// z-test using the standard normal-approximation formula:
//
//	n = [ z_{1-alpha/2} * sqrt(2*pbar*(1-pbar)) + z_{power} * sqrt(p1(1-p1) + p2(1-p2)) ]^2 / delta^2
//
// where pbar = (p1+p2)/2 and delta = |p2-p1|. The raw fractional value is
// returned so chart layers can plot a continuous curve; use
// RequiredSampleSize for the whole-observation count.
func SampleSize(q Query) (float64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	zAlpha := distuv.UnitNormal.Quantile(1 - q.Alpha/2)
	zBeta := distuv.UnitNormal.Quantile(q.Power)

	pBar := (q.P1 + q.P2) / 2
	delta := math.Abs(q.P2 - q.P1)

	num := zAlpha*math.Sqrt(2*pBar*(1-pBar)) +
		zBeta*math.Sqrt(q.P1*(1-q.P1)+q.P2*(1-q.P2))

	return num * num / (delta * delta), nil
}

// RequiredSampleSize is the ceiling of SampleSize: observations come in whole
// counts, so the raw value is always rounded up.
func RequiredSampleSize(q Query) (int, error) {
	n, err := SampleSize(q)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(n)), nil
}
