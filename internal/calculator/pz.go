package calculator

import (
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// PZRegression fits the no-intercept material-balance line relating pressure
// drawdown (p0/z0 - p/z) to cumulative production and derives OGIP from the
// slope. The first record supplies the initial reservoir conditions.
func PZRegression(records []model.ProductionRecord) (*model.RegressionResult, error) {
	if len(records) == 0 {
		return nil, util.BadData("no production records to regress")
	}
	p0 := records[0].Pressure
	z0 := records[0].ZFactor
	if p0 <= 0 || z0 <= 0 {
		return nil, util.BadDataf("initial record needs positive pressure and z-factor, got p=%g z=%g", p0, z0)
	}
	pz0 := p0 / z0

	// Pairs with a non-finite drawdown or cumulative value are dropped.
	var xs, ys []float64
	for _, r := range records {
		x := pz0 - r.Pressure/r.ZFactor
		y := r.CumProduction
		if !finite(x) || !finite(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	var sumXX, sumXY float64
	for i := range xs {
		sumXX += xs[i] * xs[i]
		sumXY += xs[i] * ys[i]
	}
	if sumXX == 0 {
		return nil, util.BadData("sum of squared drawdown is zero; no pressure decline to regress against")
	}
	slope := sumXY / sumXX

	meanY := 0.0
	for _, y := range ys {
		meanY += y
	}
	meanY /= float64(len(ys))

	var ssRes, ssTot float64
	for i := range xs {
		r := ys[i] - slope*xs[i]
		ssRes += r * r
		d := ys[i] - meanY
		ssTot += d * d
	}
	// Flat production has zero total variance; report 0 rather than NaN.
	rSquared := 0.0
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return &model.RegressionResult{
		Slope:    slope,
		OGIP:     slope * p0,
		RSquared: rSquared,
		Points:   len(xs),
	}, nil
}
