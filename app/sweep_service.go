package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"gopower/domain/power"
	"gopower/domain/sweep"
	"gopower/internal/errors"
)

// Evaluation is one grid row with its computed sample sizes. RawN is the
// fractional formula output for continuous charting; RequiredN its ceiling.
type Evaluation struct {
	Point     sweep.Point `json:"point"`
	RawN      float64     `json:"raw_n"`
	RequiredN int         `json:"required_n"`
}

// Summary aggregates the required sample sizes across a sweep.
type Summary struct {
	MinN    float64 `json:"min_n"`
	MaxN    float64 `json:"max_n"`
	MedianN float64 `json:"median_n"`
}

// SweepResult contains the complete output of a sweep run.
type SweepResult struct {
	RunID       string       `json:"run_id"`
	Axis        sweep.Axis   `json:"axis"`
	Fixed       sweep.Fixed  `json:"fixed"`
	Evaluations []Evaluation `json:"evaluations"`
	Summary     Summary      `json:"summary"`
	RuntimeMs   int64        `json:"runtime_ms"`
}

// SweepService evaluates parameter grids against the sample-size calculator.
type SweepService struct {
	fixed sweep.Fixed
}

// NewSweepService creates a sweep service with the given fixed parameters.
func NewSweepService(fixed sweep.Fixed) *SweepService {
	return &SweepService{fixed: fixed}
}

// Fixed returns the service's fixed planning parameters.
func (s *SweepService) Fixed() sweep.Fixed {
	return s.fixed
}

// RunAxis builds the default grid for the axis and evaluates it.
func (s *SweepService) RunAxis(ctx context.Context, axis sweep.Axis) (*SweepResult, error) {
	grid, err := sweep.NewGrid(axis, s.fixed)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return s.Run(ctx, grid)
}

// Run evaluates every grid point. Points are independent, so evaluation is
// parallel; results are written by index to preserve grid order.
func (s *SweepService) Run(ctx context.Context, grid sweep.Grid) (*SweepResult, error) {
	startTime := time.Now()

	evaluations := make([]Evaluation, len(grid.Points))
	g, ctx := errgroup.WithContext(ctx)
	for i, point := range grid.Points {
		i, point := i, point
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := power.SampleSize(point.Query)
			if err != nil {
				return errors.Wrapf(err, "grid point %s=%v", grid.Axis, point.Value)
			}
			n, err := power.RequiredSampleSize(point.Query)
			if err != nil {
				return err
			}
			evaluations[i] = Evaluation{Point: point, RawN: raw, RequiredN: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if power.IsInvalidParameter(err) {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return nil, err
	}

	summary, err := summarize(evaluations)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize sweep")
	}

	return &SweepResult{
		RunID:       uuid.NewString(),
		Axis:        grid.Axis,
		Fixed:       s.fixed,
		Evaluations: evaluations,
		Summary:     summary,
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}, nil
}

func summarize(evaluations []Evaluation) (Summary, error) {
	sizes := make([]float64, len(evaluations))
	for i, ev := range evaluations {
		sizes[i] = float64(ev.RequiredN)
	}

	minN, err := stats.Min(sizes)
	if err != nil {
		return Summary{}, err
	}
	maxN, err := stats.Max(sizes)
	if err != nil {
		return Summary{}, err
	}
	medianN, err := stats.Median(sizes)
	if err != nil {
		return Summary{}, err
	}

	return Summary{MinN: minN, MaxN: maxN, MedianN: medianN}, nil
}

// Narrative renders a short markdown summary of a sweep result for the
// dashboard and CLI output.
func Narrative(result *SweepResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Required sample size by %s\n\n", axisLabel(result.Axis))
	fmt.Fprintf(&b, "Holding the other parameters fixed (baseline %.0f%%, MDE %.0f%%, alpha %.0f%%, power %.0f%%), ",
		result.Fixed.Baseline*100, result.Fixed.MDE*100, result.Fixed.Alpha*100, result.Fixed.Power*100)
	fmt.Fprintf(&b, "the per-group sample size ranges from **%s** to **%s** (median %s) across %d grid points.\n",
		kiloLabel(result.Summary.MinN), kiloLabel(result.Summary.MaxN), kiloLabel(result.Summary.MedianN), len(result.Evaluations))

	if len(result.Evaluations) > 1 {
		first := result.Evaluations[0]
		last := result.Evaluations[len(result.Evaluations)-1]
		fmt.Fprintf(&b, "\nAt %s=%.1f%% you need %s per group; at %s=%.1f%% you need %s.\n",
			result.Axis, first.Point.Value*100, kiloLabel(float64(first.RequiredN)),
			result.Axis, last.Point.Value*100, kiloLabel(float64(last.RequiredN)))
	}

	return b.String()
}

func axisLabel(axis sweep.Axis) string {
	switch axis {
	case sweep.AxisMDE:
		return "minimum detectable effect"
	case sweep.AxisAlpha:
		return "significance level"
	case sweep.AxisBaseline:
		return "baseline conversion rate"
	default:
		return string(axis)
	}
}

// kiloLabel formats a sample size in thousands with one decimal, matching
// the chart point labels ("6.3k"). Values under a thousand keep their count.
func kiloLabel(n float64) string {
	if n < 1000 {
		return fmt.Sprintf("%.0f", n)
	}
	return fmt.Sprintf("%.1fk", n/1000)
}
