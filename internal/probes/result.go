package probes

import "time"

// DefaultDegradedAfter is the latency above which a passing probe still
// reports the service as degraded, unless the probe config overrides it.
const DefaultDegradedAfter = time.Second

// Classify maps one probe run onto a health-check status.
func Classify(err error, elapsed, degradedAfter time.Duration) string {
	if err != nil {
		return "unhealthy"
	}

	if degradedAfter <= 0 {
		degradedAfter = DefaultDegradedAfter
	}

	if elapsed > degradedAfter {
		return "degraded"
	}

	return "healthy"
}
