package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/observability"
)

func compilation() *domain.Compilation {
	return &domain.Compilation{
		Document: domain.Document{
			&domain.Dialogue{Type: domain.KindTitle},
			&domain.Question{},
			&domain.Dialogue{Type: domain.KindDialogue},
		},
		Warnings: []domain.Diagnostic{{Severity: domain.SeverityWarning}},
	}
}

func TestMetrics_ObserveCompile(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveCompile(observability.CacheMiss, compilation())
	m.ObserveCompile(observability.CacheHit, compilation())

	expected := `
# HELP timescript_compilations_total Total number of compile requests by cache outcome
# TYPE timescript_compilations_total counter
timescript_compilations_total{cache="hit"} 1
timescript_compilations_total{cache="miss"} 1
# HELP timescript_nodes_total Total number of top-level nodes produced by fresh compilations
# TYPE timescript_nodes_total counter
timescript_nodes_total{kind="dialogue"} 1
timescript_nodes_total{kind="question"} 1
timescript_nodes_total{kind="title"} 1
# HELP timescript_diagnostics_total Total number of diagnostics reported
# TYPE timescript_diagnostics_total counter
timescript_diagnostics_total{severity="warning",source="compiler"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"timescript_compilations_total", "timescript_nodes_total", "timescript_diagnostics_total")
	require.NoError(t, err)
}

func TestMetrics_Duration(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveDuration("validate", time.Now())

	count, err := testutil.GatherAndCount(m.Registry(), "timescript_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveDiagnostics(observability.SourceValidator, []domain.Diagnostic{{Severity: domain.SeverityError}})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `timescript_diagnostics_total{severity="error",source="validator"} 1`)
}
