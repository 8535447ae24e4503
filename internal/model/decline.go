package model

import "strings"

// ModelKind identifies a decline-curve family.
type ModelKind string

const (
	Exponential ModelKind = "exponential"
	Harmonic    ModelKind = "harmonic"
	Hyperbolic  ModelKind = "hyperbolic"
)

// ParseModelKind maps a user-typed name to a ModelKind, ignoring case.
func ParseModelKind(s string) (ModelKind, bool) {
	switch k := ModelKind(strings.ToLower(s)); k {
	case Exponential, Harmonic, Hyperbolic:
		return k, true
	}
	return "", false
}

// ParamCount returns the length of the parameter vector for the family.
func (k ModelKind) ParamCount() int {
	if k == Hyperbolic {
		return 3
	}
	return 2
}

// DeclineFit is a fitted decline model, consumed by the forecaster.
type DeclineFit struct {
	Kind        ModelKind
	Qi          float64 // initial rate
	Di          float64 // nominal decline rate, per month
	B           float64 // hyperbolic exponent, zero for the other families
	SSE         float64 // sum of squared residuals at the solution
	RSquared    float64 // coefficient of determination against the observations
	Evaluations int     // objective evaluations spent by the solver
}

// Params returns the parameter vector in solver order.
func (f *DeclineFit) Params() []float64 {
	if f.Kind == Hyperbolic {
		return []float64{f.Qi, f.Di, f.B}
	}
	return []float64{f.Qi, f.Di}
}

// ForecastPoint is one forecast month.
type ForecastPoint struct {
	Month int
	Rate  float64
}

// ForecastSeries is a finite forecast; a pure function of the fit and the
// horizon, so re-running reproduces it exactly.
type ForecastSeries []ForecastPoint

// Cumulative sums the monthly rates over the series.
func (s ForecastSeries) Cumulative() float64 {
	total := 0.0
	for _, p := range s {
		total += p.Rate
	}
	return total
}
