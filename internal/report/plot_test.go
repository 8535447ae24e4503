package report

import (
	"strings"
	"testing"
	"time"

	"ReservoirBench/internal/model"
)

func TestPZPlot(t *testing.T) {
	records := []model.ProductionRecord{
		{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Pressure: 3000, ZFactor: 0.85, CumProduction: 0},
		{Date: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), Pressure: 2900, ZFactor: 0.84, CumProduction: 65000},
		{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Pressure: 2800, ZFactor: 0.83, CumProduction: 131000},
	}
	res := &model.RegressionResult{Slope: 1180, OGIP: 1180 * 3000, RSquared: 0.999, Points: 3}

	s := PZPlot(records, res)
	if !strings.Contains(s, "slope = 1,180.00 scf/psia") {
		t.Errorf("legend missing:\n%s", s)
	}
	if !strings.Contains(s, "+") {
		t.Errorf("no data marks plotted:\n%s", s)
	}
	if got := strings.Count(s, "\n"); got != plotHeight+4 {
		t.Errorf("plot spans %d lines, want %d", got, plotHeight+4)
	}
}

func TestPZPlot_Empty(t *testing.T) {
	if s := PZPlot(nil, nil); s != "no points to plot\n" {
		t.Errorf("empty plot = %q", s)
	}
}

func TestDeclinePlot(t *testing.T) {
	points := []model.RatePoint{{Month: 0, Rate: 1000}, {Month: 6, Rate: 740}, {Month: 12, Rate: 549}}
	fit := &model.DeclineFit{Kind: model.Exponential, Qi: 1000, Di: 0.05}
	forecast := model.ForecastSeries{{Month: 23, Rate: 316.6}}

	s := DeclinePlot(points, fit, forecast)
	if !strings.Contains(s, "Fitted Exponential Curve") {
		t.Errorf("title missing:\n%s", s)
	}
	if !strings.Contains(s, "x: Month  [0 .. 23]") {
		t.Errorf("x axis should extend to the forecast tail:\n%s", s)
	}
	if !strings.Contains(s, ".") || !strings.Contains(s, "+") {
		t.Errorf("curve or data marks missing:\n%s", s)
	}
}
