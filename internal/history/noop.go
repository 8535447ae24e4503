package history

import (
	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// NoopRecorder is used when SQLite is not configured or fails to open.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRegression(_ *RegressionRun, _ *model.Dataset) (string, error) {
	return "", nil
}
func (n *NoopRecorder) RecordDeclineFit(_ *DeclineRun, _ *model.Dataset) (string, error) {
	return "", nil
}
func (n *NoopRecorder) RecordForecast(_ *ForecastRun) (string, error) { return "", nil }
func (n *NoopRecorder) RecentRuns(_ int) ([]RunSummary, error)        { return nil, nil }
func (n *NoopRecorder) SnapshotByRun(_ string) (*model.Dataset, error) {
	return nil, util.BadInput("run history is not configured")
}
func (n *NoopRecorder) Close() error { return nil }
