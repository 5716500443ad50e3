package services

// AnalyticsConfig carries every tunable the engines need. The values are
// heuristic constants inherited from the product, so they are passed in
// explicitly instead of being read from ambient state.
type AnalyticsConfig struct {
	// MinCyclesForStats is the minimum number of tracked cycles before
	// statistics or predictions are produced.
	MinCyclesForStats int

	// OvulationOffsetDays is how many days before the predicted period
	// start ovulation is assumed to happen.
	OvulationOffsetDays int

	// FertileWindowRadius widens the fertile window around ovulation.
	FertileWindowRadius int

	// ConfidenceStdDevCeiling is the stddev (in days) at which prediction
	// confidence bottoms out at zero.
	ConfidenceStdDevCeiling float64

	// RegularityStdDevCeiling is the stddev at which the regularity score
	// bottoms out at zero.
	RegularityStdDevCeiling float64

	// IrregularityThreshold is the regularity score below which an
	// irregular-cycle insight is emitted.
	IrregularityThreshold float64

	// SymptomPhaseShare is the fraction of cycles in which a symptom must
	// appear within one phase to trigger a symptom-phase insight.
	SymptomPhaseShare float64

	// NegativeMoodShare is the fraction of recent logs with bad or
	// terrible mood that triggers a mood insight.
	NegativeMoodShare float64

	// RecentLogWindow is how many of the latest daily logs the mood rule
	// looks at.
	RecentLogWindow int

	DefaultCycleLength  int
	DefaultPeriodLength int
}

func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		MinCyclesForStats:       3,
		OvulationOffsetDays:     14,
		FertileWindowRadius:     2,
		ConfidenceStdDevCeiling: 7,
		RegularityStdDevCeiling: 10,
		IrregularityThreshold:   0.5,
		SymptomPhaseShare:       0.6,
		NegativeMoodShare:       0.5,
		RecentLogWindow:         30,
		DefaultCycleLength:      28,
		DefaultPeriodLength:     5,
	}
}
