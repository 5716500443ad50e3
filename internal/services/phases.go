package services

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

// CyclePhases lists the phases in chronological order.
func CyclePhases() []string {
	return []string{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}
}

// PhaseForCycleDay buckets a 1-based day offset within a cycle into a phase.
// The ovulation day is anchored cfg.OvulationOffsetDays before the cycle's
// end, mirroring the prediction heuristic. An offset outside the cycle
// returns "".
func PhaseForCycleDay(dayOfCycle int, cycleLength int, periodLength int, cfg AnalyticsConfig) string {
	if cycleLength <= 0 {
		cycleLength = cfg.DefaultCycleLength
	}
	if periodLength <= 0 {
		periodLength = cfg.DefaultPeriodLength
	}
	if dayOfCycle < 1 || dayOfCycle > cycleLength {
		return ""
	}
	if dayOfCycle <= periodLength {
		return PhaseMenstrual
	}

	ovulationDay := cycleLength - cfg.OvulationOffsetDays
	if ovulationDay <= periodLength {
		// Cycle too short for the heuristic; everything after the period
		// counts as luteal.
		return PhaseLuteal
	}

	diff := dayOfCycle - ovulationDay
	if diff >= -cfg.FertileWindowRadius && diff <= cfg.FertileWindowRadius {
		return PhaseOvulation
	}
	if dayOfCycle < ovulationDay {
		return PhaseFollicular
	}
	return PhaseLuteal
}
