package conflictkit

import "time"

// MetricsCollector provides hooks for collecting resolution metrics.
type MetricsCollector interface {
	// RecordResolveDuration records how long a single resolution took.
	RecordResolveDuration(strategy string, duration time.Duration)

	// RecordCases records the number of fixtures run for a suite.
	RecordCases(suite string, total int)

	// RecordFailures records the number of failed fixtures for a suite.
	RecordFailures(suite string, failed int)

	// RecordResolution records one resolution outcome by tag.
	RecordResolution(tag Resolution)
}

// NoOpMetricsCollector is a default implementation that does nothing.
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordResolveDuration(strategy string, duration time.Duration) {}
func (n *NoOpMetricsCollector) RecordCases(suite string, total int)                           {}
func (n *NoOpMetricsCollector) RecordFailures(suite string, failed int)                       {}
func (n *NoOpMetricsCollector) RecordResolution(tag Resolution)                               {}
