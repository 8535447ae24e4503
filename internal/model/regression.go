package model

// RegressionResult holds a p/Z material-balance estimate. Immutable once
// computed; re-running the regression replaces it wholesale.
type RegressionResult struct {
	Slope    float64 // scf per psia
	OGIP     float64 // scf
	RSquared float64 // 0 when total variance is zero
	Points   int     // records used after dropping non-finite pairs
}
