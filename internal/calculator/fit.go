package calculator

import (
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// Solver defaults.
const (
	DefaultMaxEvaluations = 5000
	DefaultTolerance      = 1e-10
)

// FitOptions bounds the nonlinear solver. Zero values take the defaults.
type FitOptions struct {
	MaxEvaluations int
	Tolerance      float64
}

func (o FitOptions) withDefaults() FitOptions {
	if o.MaxEvaluations <= 0 {
		o.MaxEvaluations = DefaultMaxEvaluations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// DefaultGuess returns the conventional starting parameters for a fit:
// the first observed rate, a 10% monthly decline, and b=0.5 when hyperbolic.
func DefaultGuess(kind model.ModelKind, points []model.RatePoint) []float64 {
	q0 := 0.0
	if len(points) > 0 {
		q0 = points[0].Rate
	}
	if kind == model.Hyperbolic {
		return []float64{q0, 0.1, 0.5}
	}
	return []float64{q0, 0.1}
}

// FitDecline fits the decline family to observed (month, rate) points by
// least squares. A nil guess uses DefaultGuess. The returned fit never
// carries NaN parameters; failures are reported instead.
func FitDecline(points []model.RatePoint, kind model.ModelKind, guess []float64, opt FitOptions) (*model.DeclineFit, error) {
	opt = opt.withDefaults()

	need := kind.ParamCount()
	if len(points) < need {
		return nil, util.BadDataf("%s fit needs at least %d points, got %d", kind, need, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Month <= points[i-1].Month {
			return nil, util.BadDataf("time values must be strictly increasing (month %g repeats or goes backwards)", points[i].Month)
		}
	}
	if guess == nil {
		guess = DefaultGuess(kind, points)
	}
	if len(guess) != need {
		return nil, util.BadInputf("%s fit expects %d initial parameters, got %d", kind, need, len(guess))
	}

	residual := func(p []float64) []float64 {
		b := 0.0
		if kind == model.Hyperbolic {
			b = p[2]
		}
		out := make([]float64, len(points))
		for i, pt := range points {
			out[i] = pt.Rate - Rate(kind, p[0], p[1], b, pt.Month)
		}
		return out
	}

	solution, sse, evals, err := levenbergMarquardt(residual, guess, solverOptions(opt))
	if err != nil {
		return nil, err
	}

	fit := &model.DeclineFit{
		Kind:        kind,
		Qi:          solution[0],
		Di:          solution[1],
		SSE:         sse,
		RSquared:    rSquaredOf(points, sse),
		Evaluations: evals,
	}
	if kind == model.Hyperbolic {
		fit.B = solution[2]
	}
	return fit, nil
}

// rSquaredOf compares the residual sum against the rate variance. Flat
// observations have zero variance; report 0 rather than NaN.
func rSquaredOf(points []model.RatePoint, sse float64) float64 {
	mean := 0.0
	for _, p := range points {
		mean += p.Rate
	}
	mean /= float64(len(points))

	ssTot := 0.0
	for _, p := range points {
		d := p.Rate - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - sse/ssTot
}
