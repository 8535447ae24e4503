// Package session owns the analysis state of one interactive tool run.
// Every step mutates state only after its computation succeeds, so a
// failed step always leaves the session at the last good point.
package session

import (
	"sync"

	"ReservoirBench/internal/calculator"
	"ReservoirBench/internal/loader"
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/report"
	"ReservoirBench/internal/util"
)

// Tool selects which analysis a session performs.
type Tool string

const (
	ToolMaterialBalance Tool = "mbal"
	ToolDecline         Tool = "dca"
)

// State is the session's position in the analysis pipeline.
type State string

const (
	StateNoData        State = "NO_DATA"
	StateDataLoaded    State = "DATA_LOADED"
	StateColumnsMapped State = "COLUMNS_MAPPED"
	StateFitComputed   State = "FIT_COMPUTED"
	StateReportReady   State = "REPORT_READY"
)

// Session carries one tool's dataset, column mapping and results.
type Session struct {
	mu     sync.Mutex
	tool   Tool
	state  State
	solver calculator.FitOptions

	dataset *model.Dataset

	gasCols    loader.GasColumns
	gasRecords []model.ProductionRecord
	regression *model.RegressionResult

	declineCols loader.DeclineColumns
	ratePoints  []model.RatePoint
	fit         *model.DeclineFit
	forecast    model.ForecastSeries
}

// New creates an empty session for the given tool.
func New(tool Tool, solver calculator.FitOptions) *Session {
	return &Session{tool: tool, state: StateNoData, solver: solver}
}

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dataset returns the attached table, or nil. Callers must not modify it.
func (s *Session) Dataset() *model.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

func (s *Session) GasRecords() []model.ProductionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gasRecords
}

func (s *Session) RatePoints() []model.RatePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratePoints
}

func (s *Session) Regression() *model.RegressionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regression
}

func (s *Session) Fit() *model.DeclineFit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fit
}

func (s *Session) Forecast() model.ForecastSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forecast
}

// AttachDataset replaces the working table and invalidates everything
// computed from the previous one.
func (s *Session) AttachDataset(ds *model.Dataset) error {
	if ds == nil || len(ds.Columns) == 0 {
		return util.BadInput("dataset has no columns")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.gasRecords = nil
	s.regression = nil
	s.ratePoints = nil
	s.fit = nil
	s.forecast = nil
	s.state = StateDataLoaded
	return nil
}

// MapGasColumns extracts material-balance records using the named columns.
// Earlier results are dropped only when extraction succeeds.
func (s *Session) MapGasColumns(cols loader.GasColumns) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(ToolMaterialBalance, StateDataLoaded); err != nil {
		return err
	}
	records, err := loader.ExtractGasRecords(s.dataset, cols)
	if err != nil {
		return err
	}

	s.gasCols = cols
	s.gasRecords = records
	s.regression = nil
	s.state = StateColumnsMapped
	return nil
}

// MapDeclineColumns extracts (month, rate) points using the named columns.
func (s *Session) MapDeclineColumns(cols loader.DeclineColumns) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(ToolDecline, StateDataLoaded); err != nil {
		return err
	}
	points, err := loader.ExtractRatePoints(s.dataset, cols)
	if err != nil {
		return err
	}

	s.declineCols = cols
	s.ratePoints = points
	s.fit = nil
	s.forecast = nil
	s.state = StateColumnsMapped
	return nil
}

// RunRegression fits the p/Z straight line through the mapped records.
func (s *Session) RunRegression() (*model.RegressionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(ToolMaterialBalance, StateColumnsMapped); err != nil {
		return nil, err
	}
	result, err := calculator.PZRegression(s.gasRecords)
	if err != nil {
		return nil, err
	}

	s.regression = result
	s.state = StateFitComputed
	return result, nil
}

// RunDeclineFit fits the chosen decline family to the mapped points.
// A nil guess uses the conventional starting parameters.
func (s *Session) RunDeclineFit(kind model.ModelKind, guess []float64) (*model.DeclineFit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(ToolDecline, StateColumnsMapped); err != nil {
		return nil, err
	}
	fit, err := calculator.FitDecline(s.ratePoints, kind, guess, s.solver)
	if err != nil {
		return nil, err
	}

	s.fit = fit
	s.forecast = nil
	s.state = StateFitComputed
	return fit, nil
}

// RunForecast projects the fitted model over the horizon in years.
func (s *Session) RunForecast(horizonYears int) (model.ForecastSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(ToolDecline, StateFitComputed); err != nil {
		return nil, err
	}
	series, err := calculator.Forecast(s.fit, horizonYears)
	if err != nil {
		return nil, err
	}

	s.forecast = series
	return series, nil
}

// BuildReport assembles the result table for the current tool.
func (s *Session) BuildReport() (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFitComputed && s.state != StateReportReady {
		return nil, util.BadInput(stepHint(s.tool, s.state))
	}

	var rep *report.Report
	switch s.tool {
	case ToolMaterialBalance:
		rep = report.BuildRegressionReport(s.regression)
	case ToolDecline:
		rep = report.BuildDeclineReport(s.fit, s.forecast)
	default:
		return nil, util.BadInputf("unknown tool %q", s.tool)
	}

	s.state = StateReportReady
	return rep, nil
}

// require checks tool identity and pipeline position. Callers hold the lock.
func (s *Session) require(tool Tool, atLeast State) error {
	if s.tool != tool {
		return util.BadInputf("this is a %s session, the command belongs to %s", s.tool, tool)
	}
	if rank(s.state) < rank(atLeast) {
		return util.BadInput(stepHint(s.tool, s.state))
	}
	return nil
}

func rank(st State) int {
	switch st {
	case StateNoData:
		return 0
	case StateDataLoaded:
		return 1
	case StateColumnsMapped:
		return 2
	case StateFitComputed:
		return 3
	case StateReportReady:
		return 4
	}
	return -1
}

func stepHint(tool Tool, st State) string {
	switch st {
	case StateNoData:
		return "no dataset loaded, use load first"
	case StateDataLoaded:
		return "columns not mapped yet, use map first"
	case StateColumnsMapped:
		if tool == ToolMaterialBalance {
			return "nothing computed yet, use run first"
		}
		return "nothing computed yet, use fit first"
	}
	return "step not available in state " + string(st)
}
