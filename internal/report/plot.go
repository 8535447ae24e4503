package report

import (
	"fmt"
	"math"
	"strings"

	"ReservoirBench/internal/calculator"
	"ReservoirBench/internal/model"
)

// Plot dimensions in character cells.
const (
	plotWidth  = 64
	plotHeight = 16
)

// PZPlot draws the drawdown scatter with the fitted no-intercept line,
// drawdown on x and cumulative production on y.
func PZPlot(records []model.ProductionRecord, res *model.RegressionResult) string {
	if len(records) == 0 || res == nil {
		return "no points to plot\n"
	}
	pz0 := records[0].Pressure / records[0].ZFactor

	var xs, ys []float64
	for _, r := range records {
		x := pz0 - r.Pressure/r.ZFactor
		y := r.CumProduction
		if !finitePair(x, y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return "no points to plot\n"
	}

	xmin, xmax := rangeOf(xs)
	ymin, ymax := rangeOf(ys)
	// Keep the fitted line in frame.
	for _, y := range []float64{res.Slope * xmin, res.Slope * xmax} {
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}

	grid := newGrid()
	for c := 0; c < plotWidth; c++ {
		x := unscale(c, plotWidth, xmin, xmax)
		mark(grid, x, res.Slope*x, xmin, xmax, ymin, ymax, '.')
	}
	for i := range xs {
		mark(grid, xs[i], ys[i], xmin, xmax, ymin, ymax, '+')
	}

	var b strings.Builder
	fmt.Fprintf(&b, "p/Z Plot and Regression (slope = %s scf/psia)\n", commaFixed(res.Slope))
	fmt.Fprintf(&b, "y: Cumulative Production (scf)  [%.4g .. %.4g]\n", ymin, ymax)
	renderGrid(&b, grid)
	fmt.Fprintf(&b, "x: (pi/zi - p/z) (psia)  [%.4g .. %.4g]\n", xmin, xmax)
	return b.String()
}

// DeclinePlot draws observed rates against the fitted curve. When a
// forecast exists the x axis extends to cover its tail.
func DeclinePlot(points []model.RatePoint, fit *model.DeclineFit, forecast model.ForecastSeries) string {
	if len(points) == 0 || fit == nil {
		return "no points to plot\n"
	}

	xmax := points[len(points)-1].Month
	if n := len(forecast); n > 0 && float64(forecast[n-1].Month) > xmax {
		xmax = float64(forecast[n-1].Month)
	}
	if xmax <= 0 {
		xmax = 1
	}

	ymin, ymax := 0.0, 0.0
	for _, p := range points {
		ymax = math.Max(ymax, p.Rate)
	}
	for c := 0; c < plotWidth; c++ {
		if v := calculator.FitRate(fit, unscale(c, plotWidth, 0, xmax)); !math.IsNaN(v) && !math.IsInf(v, 0) {
			ymax = math.Max(ymax, v)
		}
	}
	if ymax == 0 {
		ymax = 1
	}

	grid := newGrid()
	for c := 0; c < plotWidth; c++ {
		x := unscale(c, plotWidth, 0, xmax)
		mark(grid, x, calculator.FitRate(fit, x), 0, xmax, ymin, ymax, '.')
	}
	for _, p := range points {
		mark(grid, p.Month, p.Rate, 0, xmax, ymin, ymax, '+')
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Decline History and Fitted %s Curve\n", titleCase(string(fit.Kind)))
	fmt.Fprintf(&b, "y: Rate (scf/month)  [%.4g .. %.4g]\n", ymin, ymax)
	renderGrid(&b, grid)
	fmt.Fprintf(&b, "x: Month  [0 .. %.4g]\n", xmax)
	return b.String()
}

func newGrid() [][]byte {
	grid := make([][]byte, plotHeight)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", plotWidth))
	}
	return grid
}

// mark plots one point, silently dropping anything outside the frame.
func mark(grid [][]byte, x, y, xmin, xmax, ymin, ymax float64, ch byte) {
	if !finitePair(x, y) {
		return
	}
	col := scale(x, xmin, xmax, plotWidth)
	row := scale(y, ymin, ymax, plotHeight)
	if col < 0 || col >= plotWidth || row < 0 || row >= plotHeight {
		return
	}
	grid[plotHeight-1-row][col] = ch
}

// scale maps v in [lo, hi] onto [0, cells).
func scale(v, lo, hi float64, cells int) int {
	if hi <= lo {
		return cells / 2
	}
	return int(math.Round((v - lo) / (hi - lo) * float64(cells-1)))
}

// unscale maps a cell index back to the value at its center.
func unscale(cell, cells int, lo, hi float64) float64 {
	if cells <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(cell)/float64(cells-1)
}

func rangeOf(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func finitePair(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

func renderGrid(b *strings.Builder, grid [][]byte) {
	for _, row := range grid {
		b.WriteString("  |")
		b.Write(row)
		b.WriteByte('\n')
	}
	b.WriteString("  +" + strings.Repeat("-", plotWidth) + "\n")
}
