package calculator

import (
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// maxHorizonYears bounds the series length against runaway user input.
const maxHorizonYears = 1000

// Forecast evaluates the fitted model at every month in [0, horizonYears*12).
// Deterministic: identical inputs reproduce the identical series.
func Forecast(fit *model.DeclineFit, horizonYears int) (model.ForecastSeries, error) {
	if fit == nil {
		return nil, util.BadInput("no fitted model to forecast from")
	}
	if horizonYears <= 0 {
		return nil, util.BadInputf("forecast horizon must be a positive number of years, got %d", horizonYears)
	}
	if horizonYears > maxHorizonYears {
		return nil, util.BadInputf("forecast horizon of %d years exceeds the %d year limit", horizonYears, maxHorizonYears)
	}

	months := horizonYears * 12
	series := make(model.ForecastSeries, 0, months)
	for m := 0; m < months; m++ {
		rate := FitRate(fit, float64(m))
		if !finite(rate) {
			return nil, util.BadDataf("%s model leaves its numeric domain at month %d; shorten the horizon or refit", fit.Kind, m)
		}
		series = append(series, model.ForecastPoint{Month: m, Rate: rate})
	}
	return series, nil
}
