package calculator

import (
	"math"
	"testing"
	"time"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

func monthlyRecords(pressures, zs, cums []float64) []model.ProductionRecord {
	recs := make([]model.ProductionRecord, len(pressures))
	for i := range pressures {
		recs[i] = model.ProductionRecord{
			Date:          time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Pressure:      pressures[i],
			ZFactor:       zs[i],
			CumProduction: cums[i],
		}
	}
	return recs
}

func TestPZRegression_RecoversExactSlope(t *testing.T) {
	// Synthetic dataset generated from a known slope: y_i = S * x_i exactly.
	const slope = 150.0
	pressures := []float64{3000, 2850, 2700, 2500, 2300}
	zs := []float64{0.85, 0.85, 0.85, 0.85, 0.85}
	pz0 := pressures[0] / zs[0]
	cums := make([]float64, len(pressures))
	for i := range pressures {
		cums[i] = slope * (pz0 - pressures[i]/zs[i])
	}

	res, err := PZRegression(monthlyRecords(pressures, zs, cums))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel := math.Abs(res.Slope-slope) / slope; rel > 1e-9 {
		t.Errorf("slope = %.9f, want %.1f (relative gap %.2e)", res.Slope, slope, rel)
	}
	if want := slope * pressures[0]; math.Abs(res.OGIP-want)/want > 1e-9 {
		t.Errorf("OGIP = %.2f, want %.2f", res.OGIP, want)
	}
	if res.RSquared < 0.999999 || res.RSquared > 1.0000001 {
		t.Errorf("R² = %.9f, want 1.0 for an exact linear dataset", res.RSquared)
	}
	if res.Points != len(pressures) {
		t.Errorf("points = %d, want %d", res.Points, len(pressures))
	}
}

func TestPZRegression_NoDrawdownFails(t *testing.T) {
	// Identical p/z throughout means sum of squared drawdown is zero.
	recs := monthlyRecords(
		[]float64{3000, 3000, 3000},
		[]float64{0.85, 0.85, 0.85},
		[]float64{0, 50000, 90000},
	)
	_, err := PZRegression(recs)
	if err == nil {
		t.Fatal("expected an error for zero drawdown")
	}
	if kind := util.KindOf(err); kind != util.KindData {
		t.Errorf("error kind = %s, want %s", kind, util.KindData)
	}
}

func TestPZRegression_RejectsBadInitialRecord(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		z        float64
	}{
		{"zero pressure", 0, 0.85},
		{"zero z-factor", 3000, 0},
		{"negative z-factor", 3000, -0.5},
	}
	for _, tt := range tests {
		recs := monthlyRecords([]float64{tt.pressure, 2900}, []float64{tt.z, 0.84}, []float64{0, 1000})
		if _, err := PZRegression(recs); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestPZRegression_EmptyInputFails(t *testing.T) {
	if _, err := PZRegression(nil); err == nil {
		t.Fatal("expected an error for an empty record set")
	}
}

func TestPZRegression_DropsNonFinitePairs(t *testing.T) {
	recs := monthlyRecords(
		[]float64{3000, 2900, 2800, 2700, 2600},
		[]float64{0.85, 0.84, 0.83, 0.82, 0.81},
		[]float64{0, 50000, 110000, 180000, 260000},
	)
	recs[2].Pressure = math.NaN()

	res, err := PZRegression(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points != len(recs)-1 {
		t.Errorf("points = %d, want %d with the non-finite pair dropped", res.Points, len(recs)-1)
	}
	if !(res.Slope > 0) || math.IsNaN(res.OGIP) {
		t.Errorf("result %+v polluted by the dropped pair", res)
	}
}

func TestPZRegression_FlatProductionReportsZeroRSquared(t *testing.T) {
	// Real drawdown but constant cumulative production: total variance is
	// zero and R² is defined as 0, not NaN.
	recs := monthlyRecords(
		[]float64{3000, 2800, 2600},
		[]float64{0.85, 0.84, 0.83},
		[]float64{120000, 120000, 120000},
	)
	res, err := PZRegression(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RSquared != 0 {
		t.Errorf("R² = %.6f, want exactly 0 for flat production", res.RSquared)
	}
	if math.IsNaN(res.Slope) {
		t.Error("slope must stay finite for flat production")
	}
}

func TestPZRegression_EndToEndScenario(t *testing.T) {
	// Five months of steady drawdown with rising cumulative production.
	recs := monthlyRecords(
		[]float64{3000, 2900, 2800, 2700, 2600},
		[]float64{0.85, 0.84, 0.83, 0.82, 0.81},
		[]float64{0, 50000, 110000, 180000, 260000},
	)
	res, err := PZRegression(recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Slope <= 0 {
		t.Errorf("slope = %.4f, want positive", res.Slope)
	}
	if res.OGIP <= 260000 {
		t.Errorf("OGIP = %.2f, want greater than final cumulative production 260000", res.OGIP)
	}
	if res.RSquared < 0 || res.RSquared > 1 {
		t.Errorf("R² = %.6f, want within [0, 1]", res.RSquared)
	}
}
