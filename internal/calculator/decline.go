package calculator

import (
	"math"

	"ReservoirBench/internal/model"
)

// bEpsilon is the threshold below which the hyperbolic family is evaluated
// as its exponential limit, keeping the family continuous in b.
const bEpsilon = 1e-9

// ExponentialDecline returns qi * exp(-di*t).
func ExponentialDecline(t, qi, di float64) float64 {
	return qi * math.Exp(-di*t)
}

// HarmonicDecline returns qi / (1 + di*t).
func HarmonicDecline(t, qi, di float64) float64 {
	return qi / (1 + di*t)
}

// HyperbolicDecline returns qi / (1 + b*di*t)^(1/b). For |b| < 1e-9 it
// evaluates the exponential limit of the family instead of dividing by b.
// Outside the domain (1 + b*di*t <= 0) the result is NaN; callers must
// treat a non-finite rate as a failure rather than propagate it.
func HyperbolicDecline(t, qi, di, b float64) float64 {
	if math.Abs(b) < bEpsilon {
		return ExponentialDecline(t, qi, di)
	}
	base := 1 + b*di*t
	if base <= 0 {
		return math.NaN()
	}
	return qi / math.Pow(base, 1/b)
}

// Rate evaluates the decline family at time t. Unknown kinds yield NaN so
// the error surfaces through the callers' finiteness checks.
func Rate(kind model.ModelKind, qi, di, b, t float64) float64 {
	switch kind {
	case model.Exponential:
		return ExponentialDecline(t, qi, di)
	case model.Harmonic:
		return HarmonicDecline(t, qi, di)
	case model.Hyperbolic:
		return HyperbolicDecline(t, qi, di, b)
	}
	return math.NaN()
}

// FitRate evaluates a fitted model at time t.
func FitRate(fit *model.DeclineFit, t float64) float64 {
	return Rate(fit.Kind, fit.Qi, fit.Di, fit.B, t)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
