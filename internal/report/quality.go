package report

// qualityTiers maps a minimum R-squared to a label, best first.
var qualityTiers = []struct {
	MinR2 float64
	Label string
}{
	{0.98, "excellent"},
	{0.90, "good"},
	{0.70, "fair"},
}

// QualityTier labels a coefficient of determination.
func QualityTier(r2 float64) string {
	for _, t := range qualityTiers {
		if r2 >= t.MinR2 {
			return t.Label
		}
	}
	return "poor"
}
