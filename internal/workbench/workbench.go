// Package workbench is the interactive boundary of the analysis tools. It
// parses shell commands, drives the session, and renders every failure as
// a one-line message instead of dying.
package workbench

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"ReservoirBench/internal/config"
	"ReservoirBench/internal/history"
	"ReservoirBench/internal/loader"
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/report"
	"ReservoirBench/internal/session"
	"ReservoirBench/internal/util"
)

// Workbench wires one session to the recorder and configuration.
type Workbench struct {
	Session  *session.Session
	Recorder history.Recorder
	Config   *config.Config
}

// New creates a workbench around an existing session.
func New(sess *session.Session, rec history.Recorder, cfg *config.Config) *Workbench {
	return &Workbench{Session: sess, Recorder: rec, Config: cfg}
}

// HandleCommand processes one command line and returns the reply.
func (w *Workbench) HandleCommand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "help":
		return w.helpText()
	case "load":
		return w.cmdLoad(fields[1:])
	case "preview":
		return w.cmdPreview()
	case "columns":
		return w.cmdColumns()
	case "map":
		return w.cmdMap(fields[1:])
	case "run":
		return w.cmdRun()
	case "fit":
		return w.cmdFit(fields[1:])
	case "forecast":
		return w.cmdForecast(fields[1:])
	case "plot":
		return w.cmdPlot()
	case "report":
		return w.cmdReport(fields[1:])
	case "history":
		return w.cmdHistory(fields[1:])
	case "snapshot":
		return w.cmdSnapshot(fields[1:])
	}
	return fmt.Sprintf("unknown command %q\n\n%s", fields[0], w.helpText())
}

func (w *Workbench) helpText() string {
	common := `  help                      show this text
  load <path>               read a .csv, .xlsx or .dbf table
  preview                   show the first rows of the dataset
  columns                   list the dataset columns
  history [n]               list recent recorded runs
  snapshot <run-id>         reload the dataset recorded with a run
  quit                      leave the shell`

	if w.Session.Tool() == session.ToolMaterialBalance {
		return `material balance (p/Z) commands:
  map [date=.. pressure=.. z=.. cum=..]   map columns (defaults: Date, Pressure, Z, CumProduction)
  run                       fit the p/Z line and estimate OGIP
  plot                      draw the drawdown scatter and fitted line
  report <path>             save results as .csv, .xlsx or .pdf
` + common
	}
	return `decline curve commands:
  map time=<col> rate=<col>               map the time and rate columns
  fit <exponential|harmonic|hyperbolic> [qi di [b]]
                            fit a decline model, optionally from a guess
  forecast [years]          project monthly rates over the horizon
  plot                      draw observed rates and the fitted curve
  report <path>             save results as .csv, .xlsx or .pdf
` + common
}

func (w *Workbench) cmdLoad(args []string) string {
	if len(args) != 1 {
		return "usage: load <path>"
	}
	ds, err := loader.Load(args[0])
	if err != nil {
		return renderError(err)
	}
	if err := w.Session.AttachDataset(ds); err != nil {
		return renderError(err)
	}
	return fmt.Sprintf("loaded %d rows, %d columns from %s\nnext: map", len(ds.Rows), len(ds.Columns), ds.Source)
}

func (w *Workbench) cmdPreview() string {
	ds := w.Session.Dataset()
	if ds == nil {
		return renderError(util.BadInput("no dataset loaded, use load first"))
	}
	n := w.Config.Preview.Rows
	if n > len(ds.Rows) {
		n = len(ds.Rows)
	}

	var b strings.Builder
	b.WriteString(strings.Join(ds.Columns, " | ") + "\n")
	for i := 0; i < n; i++ {
		b.WriteString(strings.Join(ds.Rows[i], " | ") + "\n")
	}
	if n < len(ds.Rows) {
		fmt.Fprintf(&b, "... %d more rows\n", len(ds.Rows)-n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Workbench) cmdColumns() string {
	ds := w.Session.Dataset()
	if ds == nil {
		return renderError(util.BadInput("no dataset loaded, use load first"))
	}
	var b strings.Builder
	for i, c := range ds.Columns {
		fmt.Fprintf(&b, "%2d  %s\n", i+1, c)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Workbench) cmdMap(args []string) string {
	if w.Session.Tool() == session.ToolMaterialBalance {
		cols, err := parseGasArgs(args)
		if err != nil {
			return renderError(err)
		}
		if err := w.Session.MapGasColumns(cols); err != nil {
			return renderError(err)
		}
		return fmt.Sprintf("mapped %d records (date=%s pressure=%s z=%s cum=%s)\nnext: run",
			len(w.Session.GasRecords()), cols.Date, cols.Pressure, cols.Z, cols.Cum)
	}

	cols, err := parseDeclineArgs(args)
	if err != nil {
		return renderError(err)
	}
	if err := w.Session.MapDeclineColumns(cols); err != nil {
		return renderError(err)
	}
	return fmt.Sprintf("mapped %d observations (time=%s rate=%s)\nnext: fit",
		len(w.Session.RatePoints()), cols.Time, cols.Rate)
}

func (w *Workbench) cmdRun() string {
	res, err := w.Session.RunRegression()
	if err != nil {
		return renderError(err)
	}

	reply := w.reportText()
	ds := w.Session.Dataset()
	id, rerr := w.Recorder.RecordRegression(&history.RegressionRun{
		Source:   ds.Source,
		Points:   res.Points,
		Slope:    res.Slope,
		OGIP:     res.OGIP,
		RSquared: res.RSquared,
	}, ds)
	if rerr != nil {
		log.Printf("[ERROR] record regression run: %v", rerr)
	} else if id != "" {
		reply += "\nrun recorded: " + id
	}
	return reply
}

func (w *Workbench) cmdFit(args []string) string {
	if len(args) == 0 {
		return "usage: fit <exponential|harmonic|hyperbolic> [qi di [b]]"
	}
	kind, ok := model.ParseModelKind(args[0])
	if !ok {
		return renderError(util.BadInputf("unknown decline model %q", args[0]))
	}

	var guess []float64
	if len(args) > 1 {
		for _, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return renderError(util.BadInputf("initial parameter %q is not a number", a))
			}
			guess = append(guess, v)
		}
	}

	fit, err := w.Session.RunDeclineFit(kind, guess)
	if err != nil {
		return renderError(err)
	}

	reply := w.reportText()
	ds := w.Session.Dataset()
	id, rerr := w.Recorder.RecordDeclineFit(&history.DeclineRun{
		Source:      ds.Source,
		Model:       fit.Kind,
		Qi:          fit.Qi,
		Di:          fit.Di,
		B:           fit.B,
		SSE:         fit.SSE,
		RSquared:    fit.RSquared,
		Evaluations: fit.Evaluations,
	}, ds)
	if rerr != nil {
		log.Printf("[ERROR] record decline run: %v", rerr)
	} else if id != "" {
		reply += "\nrun recorded: " + id
	}
	return reply
}

func (w *Workbench) cmdForecast(args []string) string {
	years := w.Config.Forecast.DefaultHorizonYears
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return renderError(util.BadInputf("horizon %q is not a whole number of years", args[0]))
		}
		years = v
	}

	series, err := w.Session.RunForecast(years)
	if err != nil {
		return renderError(err)
	}

	fit := w.Session.Fit()
	last := series[len(series)-1]
	reply := fmt.Sprintf("forecast over %d months: final rate %.2f, cumulative %.2f scf\nnext: plot or report",
		len(series), last.Rate, series.Cumulative())

	id, rerr := w.Recorder.RecordForecast(&history.ForecastRun{
		Source:       w.Session.Dataset().Source,
		Model:        fit.Kind,
		HorizonYears: years,
		Months:       len(series),
		Cumulative:   series.Cumulative(),
	})
	if rerr != nil {
		log.Printf("[ERROR] record forecast run: %v", rerr)
	} else if id != "" {
		reply += "\nrun recorded: " + id
	}
	return reply
}

func (w *Workbench) cmdPlot() string {
	if w.Session.Tool() == session.ToolMaterialBalance {
		res := w.Session.Regression()
		if res == nil {
			return renderError(util.BadInput("nothing computed yet, use run first"))
		}
		return report.PZPlot(w.Session.GasRecords(), res)
	}

	fit := w.Session.Fit()
	if fit == nil {
		return renderError(util.BadInput("nothing computed yet, use fit first"))
	}
	return report.DeclinePlot(w.Session.RatePoints(), fit, w.Session.Forecast())
}

func (w *Workbench) cmdReport(args []string) string {
	if len(args) != 1 {
		return "usage: report <path.csv|path.xlsx|path.pdf>"
	}
	rep, err := w.Session.BuildReport()
	if err != nil {
		return renderError(err)
	}
	if err := report.Save(rep, args[0]); err != nil {
		return renderError(err)
	}
	return "report written to " + args[0]
}

func (w *Workbench) cmdHistory(args []string) string {
	limit := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return renderError(util.BadInputf("history expects a positive count, got %q", args[0]))
		}
		limit = v
	}

	runs, err := w.Recorder.RecentRuns(limit)
	if err != nil {
		return renderError(util.IOFailure("list runs", err))
	}
	if len(runs) == 0 {
		return "no recorded runs"
	}

	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s  %-12s %s  %s (%s)\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Kind, r.ID, r.Headline, r.Source)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Workbench) cmdSnapshot(args []string) string {
	if len(args) != 1 {
		return "usage: snapshot <run-id>"
	}
	ds, err := w.Recorder.SnapshotByRun(args[0])
	if err != nil {
		return renderError(err)
	}
	if err := w.Session.AttachDataset(ds); err != nil {
		return renderError(err)
	}
	return fmt.Sprintf("restored %d rows, %d columns recorded with run %s\nnext: map",
		len(ds.Rows), len(ds.Columns), args[0])
}

// reportText builds the result table via the session so the state machine
// observes that results were presented.
func (w *Workbench) reportText() string {
	rep, err := w.Session.BuildReport()
	if err != nil {
		return renderError(err)
	}
	return strings.TrimRight(rep.String(), "\n")
}

func parseGasArgs(args []string) (loader.GasColumns, error) {
	cols := loader.DefaultGasColumns()
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok || value == "" {
			return cols, util.BadInputf("expected key=column, got %q", a)
		}
		switch key {
		case "date":
			cols.Date = value
		case "pressure":
			cols.Pressure = value
		case "z":
			cols.Z = value
		case "cum":
			cols.Cum = value
		default:
			return cols, util.BadInputf("unknown mapping key %q, expected date, pressure, z or cum", key)
		}
	}
	return cols, nil
}

func parseDeclineArgs(args []string) (loader.DeclineColumns, error) {
	var cols loader.DeclineColumns
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok || value == "" {
			return cols, util.BadInputf("expected key=column, got %q", a)
		}
		switch key {
		case "time":
			cols.Time = value
		case "rate":
			cols.Rate = value
		default:
			return cols, util.BadInputf("unknown mapping key %q, expected time or rate", key)
		}
	}
	if cols.Time == "" || cols.Rate == "" {
		return cols, util.BadInput("both time=<col> and rate=<col> are required")
	}
	return cols, nil
}

// renderError turns any failure into the one-line boundary message.
func renderError(err error) string {
	var ae *util.AppError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return fmt.Sprintf("%s error: %v", util.KindOf(err), err)
}
