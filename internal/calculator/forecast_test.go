package calculator

import (
	"math"
	"reflect"
	"testing"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

func TestForecast_EvaluatesModelPerMonth(t *testing.T) {
	fit := &model.DeclineFit{Kind: model.Exponential, Qi: 1000, Di: 0.05}
	series, err := Forecast(fit, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 24 {
		t.Fatalf("series length = %d, want 24 for a 2-year horizon", len(series))
	}
	for i, p := range series {
		if p.Month != i {
			t.Fatalf("point %d carries month %d", i, p.Month)
		}
		if want := ExponentialDecline(float64(i), 1000, 0.05); p.Rate != want {
			t.Errorf("month %d: rate %.10f, want %.10f", i, p.Rate, want)
		}
	}
}

func TestForecast_Deterministic(t *testing.T) {
	fit := &model.DeclineFit{Kind: model.Hyperbolic, Qi: 1200, Di: 0.07, B: 0.5}
	a, err := Forecast(fit, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Forecast(fit, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two forecasts from identical inputs differ")
	}
}

func TestForecast_InvalidInputs(t *testing.T) {
	fit := &model.DeclineFit{Kind: model.Exponential, Qi: 1000, Di: 0.05}
	for _, horizon := range []int{0, -3} {
		if _, err := Forecast(fit, horizon); err == nil || util.KindOf(err) != util.KindInput {
			t.Errorf("horizon %d: want an input error, got %v", horizon, err)
		}
	}
	if _, err := Forecast(nil, 1); err == nil || util.KindOf(err) != util.KindInput {
		t.Error("nil fit: want an input error")
	}
}

func TestForecast_DomainFailureSurfaces(t *testing.T) {
	// b = -1 with di = 0.1 leaves the domain at month 10.
	fit := &model.DeclineFit{Kind: model.Hyperbolic, Qi: 1000, Di: 0.1, B: -1}
	_, err := Forecast(fit, 1)
	if err == nil {
		t.Fatal("expected a domain failure")
	}
	if kind := util.KindOf(err); kind != util.KindData {
		t.Errorf("error kind = %s, want %s", kind, util.KindData)
	}
}

func TestForecastSeries_Cumulative(t *testing.T) {
	s := model.ForecastSeries{{Month: 0, Rate: 100}, {Month: 1, Rate: 60}, {Month: 2, Rate: 40}}
	if got := s.Cumulative(); math.Abs(got-200) > 1e-12 {
		t.Errorf("cumulative = %.6f, want 200", got)
	}
}
