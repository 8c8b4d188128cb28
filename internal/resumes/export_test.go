package resumes

import (
	"github.com/prometheus/client_golang/prometheus"

	"resume-builder/internal/shared/metrics"
)

func coercionCounter(kind string) prometheus.Collector {
	return metrics.DocumentCoercions(kind)
}
