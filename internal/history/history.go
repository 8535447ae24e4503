// Package history keeps an append-only log of analysis runs so results can
// be traced back to the exact dataset that produced them.
package history

import (
	"time"

	"ReservoirBench/internal/model"
)

// RegressionRun holds the result of one material-balance run.
type RegressionRun struct {
	Source   string
	Points   int
	Slope    float64
	OGIP     float64
	RSquared float64
}

// DeclineRun holds the result of one decline fit.
type DeclineRun struct {
	Source      string
	Model       model.ModelKind
	Qi          float64
	Di          float64
	B           float64
	SSE         float64
	RSquared    float64
	Evaluations int
}

// ForecastRun holds the summary of one forecast.
type ForecastRun struct {
	Source       string
	Model        model.ModelKind
	HorizonYears int
	Months       int
	Cumulative   float64
}

// RunSummary is one line of the recent-runs listing.
type RunSummary struct {
	ID        string
	Kind      string // "regression", "decline_fit" or "forecast"
	Source    string
	Headline  string
	CreatedAt time.Time
}

// Recorder persists runs. Fit runs carry a compressed copy of the mapped
// dataset; SnapshotByRun restores it.
type Recorder interface {
	RecordRegression(run *RegressionRun, snapshot *model.Dataset) (string, error)
	RecordDeclineFit(run *DeclineRun, snapshot *model.Dataset) (string, error)
	RecordForecast(run *ForecastRun) (string, error)
	RecentRuns(limit int) ([]RunSummary, error)
	SnapshotByRun(id string) (*model.Dataset, error)
	Close() error
}
