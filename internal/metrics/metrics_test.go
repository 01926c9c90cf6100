package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcheck/internal/domain"
)

func TestRunMetrics_ObserveSuite(t *testing.T) {
	m := New()

	m.ObserveSuite(domain.SuiteResult{
		Success:  true,
		Duration: 2 * time.Millisecond,
		Cases: []domain.TestCaseResult{
			{Status: domain.StatusPassed, Assertions: []domain.Assertion{{Passed: true}, {Passed: true}}},
			{Status: domain.StatusSkipped},
		},
	})
	m.ObserveSuite(domain.SuiteResult{
		Cases: []domain.TestCaseResult{
			{Status: domain.StatusFailed, Assertions: []domain.Assertion{{Passed: true}, {Passed: false}}},
		},
	})
	m.ObserveSuite(domain.SuiteResult{Error: errors.New("bad yaml")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuitesTotal.WithLabelValues("passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuitesTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuitesTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CasesTotal.WithLabelValues("passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CasesTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CasesTotal.WithLabelValues("skipped")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AssertionsTotal.WithLabelValues("passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssertionsTotal.WithLabelValues("failed")))

	count, err := testutil.GatherAndCount(m.Gatherer(), "mathcheck_suites_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRunMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveSuite(domain.SuiteResult{Success: true, Cases: []domain.TestCaseResult{{Status: domain.StatusPassed}}})

	path := filepath.Join(t.TempDir(), "nested", "mathcheck.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mathcheck_suites_total{result="passed"} 1`)
	assert.Contains(t, string(data), "mathcheck_suite_duration_seconds_count 1")
}
