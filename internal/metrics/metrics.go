// Package metrics exposes run statistics as Prometheus metrics.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"mathcheck/internal/domain"
)

// RunMetrics contains the metrics recorded for a test run
type RunMetrics struct {
	registry *prometheus.Registry

	// Counters
	SuitesTotal     *prometheus.CounterVec
	CasesTotal      *prometheus.CounterVec
	AssertionsTotal *prometheus.CounterVec

	// Histograms
	SuiteDuration prometheus.Histogram
}

// New creates the run metrics on a private registry
func New() *RunMetrics {
	m := &RunMetrics{registry: prometheus.NewRegistry()}

	m.SuitesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mathcheck_suites_total",
		Help: "Total number of suites executed, by result",
	}, []string{"result"})

	m.CasesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mathcheck_test_cases_total",
		Help: "Total number of test cases, by status",
	}, []string{"status"})

	m.AssertionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mathcheck_assertions_total",
		Help: "Total number of assertions evaluated, by result",
	}, []string{"result"})

	m.SuiteDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mathcheck_suite_duration_seconds",
		Help:    "Time taken to execute a suite",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	m.registry.MustRegister(m.SuitesTotal, m.CasesTotal, m.AssertionsTotal, m.SuiteDuration)
	return m
}

// ObserveSuite records one suite result
func (m *RunMetrics) ObserveSuite(result domain.SuiteResult) {
	switch {
	case result.Error != nil:
		m.SuitesTotal.WithLabelValues("error").Inc()
	case result.Success:
		m.SuitesTotal.WithLabelValues("passed").Inc()
	default:
		m.SuitesTotal.WithLabelValues("failed").Inc()
	}

	for _, tc := range result.Cases {
		m.CasesTotal.WithLabelValues(string(tc.Status)).Inc()
		for _, a := range tc.Assertions {
			if a.Passed {
				m.AssertionsTotal.WithLabelValues("passed").Inc()
			} else {
				m.AssertionsTotal.WithLabelValues("failed").Inc()
			}
		}
	}

	m.SuiteDuration.Observe(result.Duration.Seconds())
}

// Gatherer returns the registry holding the run metrics
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format used by the
// node_exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
