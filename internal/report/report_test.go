package report

import (
	"strings"
	"testing"

	"ReservoirBench/internal/model"
)

func TestBuildRegressionReport_Formats(t *testing.T) {
	res := &model.RegressionResult{
		Slope:    1234.5,
		OGIP:     3900000000,
		RSquared: 0.9876,
		Points:   5,
	}
	rep := BuildRegressionReport(res)

	want := []Row{
		{"Regression Slope (scf/psia)", "1,234.50"},
		{"Estimated OGIP (scf)", "3,900,000,000.00"},
		{"R-Squared", "0.9876"},
		{"Data Points", "5"},
		{"Fit Quality", "excellent"},
	}
	if len(rep.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rep.Rows), len(want))
	}
	for i, w := range want {
		if rep.Rows[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, rep.Rows[i], w)
		}
	}
}

func TestBuildDeclineReport_HyperbolicWithForecast(t *testing.T) {
	fit := &model.DeclineFit{
		Kind:        model.Hyperbolic,
		Qi:          1200,
		Di:          0.07,
		B:           0.5,
		SSE:         1.5e-8,
		RSquared:    0.995,
		Evaluations: 120,
	}
	forecast := model.ForecastSeries{{Month: 0, Rate: 1200}, {Month: 1, Rate: 1160}}
	rep := BuildDeclineReport(fit, forecast)

	find := func(param string) string {
		for _, r := range rep.Rows {
			if r.Parameter == param {
				return r.Value
			}
		}
		t.Fatalf("row %q missing from %+v", param, rep.Rows)
		return ""
	}

	if got := find("Decline Model"); got != "Hyperbolic" {
		t.Errorf("model row = %q", got)
	}
	if got := find("Hyperbolic Exponent b"); got != "0.5000" {
		t.Errorf("b row = %q", got)
	}
	if got := find("Initial Rate qi (scf/month)"); got != "1,200.00" {
		t.Errorf("qi row = %q", got)
	}
	if got := find("Fit Quality"); got != "excellent" {
		t.Errorf("quality row = %q", got)
	}
	if got := find("Forecast Horizon (months)"); got != "2" {
		t.Errorf("horizon row = %q", got)
	}
	if got := find("Forecast Cumulative (scf)"); got != "2,360.00" {
		t.Errorf("cumulative row = %q", got)
	}
}

func TestBuildDeclineReport_NoForecastNoBRow(t *testing.T) {
	fit := &model.DeclineFit{Kind: model.Exponential, Qi: 1000, Di: 0.05, RSquared: 0.6}
	rep := BuildDeclineReport(fit, nil)
	for _, r := range rep.Rows {
		if strings.HasPrefix(r.Parameter, "Forecast") {
			t.Errorf("unexpected forecast row %+v without a forecast", r)
		}
		if strings.HasPrefix(r.Parameter, "Hyperbolic") {
			t.Errorf("unexpected b row %+v for an exponential fit", r)
		}
	}
}

func TestReportString(t *testing.T) {
	rep := &Report{
		Title: "Results",
		Rows:  []Row{{"Slope", "1.50"}, {"R-Squared", "0.9000"}},
	}
	s := rep.String()
	if !strings.HasPrefix(s, "Results\n-------\n") {
		t.Errorf("missing title and underline:\n%s", s)
	}
	if !strings.Contains(s, "Slope      1.50") {
		t.Errorf("parameter column not aligned:\n%s", s)
	}
}

func TestQualityTier(t *testing.T) {
	cases := []struct {
		r2   float64
		want string
	}{
		{1.0, "excellent"},
		{0.98, "excellent"},
		{0.95, "good"},
		{0.90, "good"},
		{0.85, "fair"},
		{0.70, "fair"},
		{0.50, "poor"},
		{-2.0, "poor"},
	}
	for _, c := range cases {
		if got := QualityTier(c.r2); got != c.want {
			t.Errorf("QualityTier(%g) = %s, want %s", c.r2, got, c.want)
		}
	}
}
