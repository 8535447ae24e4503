// Package report renders analysis results as a two-column parameter table
// and writes it to CSV, XLSX or PDF.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"ReservoirBench/internal/model"
)

// Row is one Parameter/Value pair of the result table.
type Row struct {
	Parameter string
	Value     string
}

// Report is the exportable result table of one analysis.
type Report struct {
	Title string
	Rows  []Row
}

// String renders the table for the shell, parameters left-aligned.
func (r *Report) String() string {
	width := 0
	for _, row := range r.Rows {
		if len(row.Parameter) > width {
			width = len(row.Parameter)
		}
	}

	var b strings.Builder
	b.WriteString(r.Title + "\n")
	b.WriteString(strings.Repeat("-", len(r.Title)) + "\n")
	for _, row := range r.Rows {
		b.WriteString(fmt.Sprintf("%-*s  %s\n", width, row.Parameter, row.Value))
	}
	return b.String()
}

// commaFixed renders with thousands separators and exactly two decimals.
func commaFixed(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildRegressionReport lays out the material-balance results. The data
// point count is the pairs the regression used, not the rows mapped.
func BuildRegressionReport(res *model.RegressionResult) *Report {
	return &Report{
		Title: "Material Balance (p/Z) Results",
		Rows: []Row{
			{"Regression Slope (scf/psia)", commaFixed(res.Slope)},
			{"Estimated OGIP (scf)", commaFixed(res.OGIP)},
			{"R-Squared", fmt.Sprintf("%.4f", res.RSquared)},
			{"Data Points", strconv.Itoa(res.Points)},
			{"Fit Quality", QualityTier(res.RSquared)},
		},
	}
}

// BuildDeclineReport lays out the decline fit, plus the forecast summary
// when one has been computed.
func BuildDeclineReport(fit *model.DeclineFit, forecast model.ForecastSeries) *Report {
	rows := []Row{
		{"Decline Model", titleCase(string(fit.Kind))},
		{"Initial Rate qi (scf/month)", commaFixed(fit.Qi)},
		{"Decline Rate di (1/month)", fmt.Sprintf("%.6f", fit.Di)},
	}
	if fit.Kind == model.Hyperbolic {
		rows = append(rows, Row{"Hyperbolic Exponent b", fmt.Sprintf("%.4f", fit.B)})
	}
	rows = append(rows,
		Row{"R-Squared", fmt.Sprintf("%.4f", fit.RSquared)},
		Row{"Residual SSE", fmt.Sprintf("%.6g", fit.SSE)},
		Row{"Solver Evaluations", strconv.Itoa(fit.Evaluations)},
		Row{"Fit Quality", QualityTier(fit.RSquared)},
	)
	if len(forecast) > 0 {
		last := forecast[len(forecast)-1]
		rows = append(rows,
			Row{"Forecast Horizon (months)", strconv.Itoa(len(forecast))},
			Row{"Forecast Final Rate (scf/month)", commaFixed(last.Rate)},
			Row{"Forecast Cumulative (scf)", commaFixed(forecast.Cumulative())},
		)
	}
	return &Report{Title: "Decline Curve Analysis Results", Rows: rows}
}
