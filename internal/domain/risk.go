package domain

// Reasons attached to an assessment, in the order they can be appended.
const (
	ReasonHeavyHourlyRain = "Rainfall > 5mm/hr"
	ReasonHeavy3hRain     = "Rainfall > 10mm in 3 hours"
	ReasonLightRain       = "Light rainfall detected"
	ReasonNewsHigh        = "Google News detected HIGH alert keywords"
	ReasonNewsMedium      = "Google News detected MEDIUM alert keywords"
	ReasonNoIndicators    = "No risk indicators detected"
)

// AssessRisk combines rainfall thresholds with headline severities into a
// risk level and the ordered reasons behind it. Reasons is never empty.
func AssessRisk(weather WeatherSnapshot, alerts []NewsAlert) (RiskLevel, []string) {
	level := RiskSafe
	var reasons []string

	switch {
	case weather.Rain1h > 5:
		level = RiskHigh
		reasons = append(reasons, ReasonHeavyHourlyRain)
	case weather.Rain3h > 10:
		level = RiskMedium
		reasons = append(reasons, ReasonHeavy3hRain)
	case weather.Rain1h > 1:
		level = RiskLow
		reasons = append(reasons, ReasonLightRain)
	}

	// A HIGH headline always wins, even over a weather-derived level.
	switch {
	case hasLevel(alerts, AlertHigh):
		level = RiskHigh
		reasons = append(reasons, ReasonNewsHigh)
	case hasLevel(alerts, AlertMedium):
		if level != RiskHigh {
			level = RiskMedium
		}
		reasons = append(reasons, ReasonNewsMedium)
	}

	if len(reasons) == 0 {
		return RiskSafe, []string{ReasonNoIndicators}
	}
	return level, reasons
}

func hasLevel(alerts []NewsAlert, level AlertLevel) bool {
	for _, a := range alerts {
		if a.Level == level {
			return true
		}
	}
	return false
}
