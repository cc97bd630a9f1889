package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSnapshot(t *testing.T) {
	before := testutil.ToFloat64(DefaultMetrics.SnapshotsEvicted)

	RecordSnapshot(false, 10)
	RecordSnapshot(true, 200)

	assert.Equal(t, before+1, testutil.ToFloat64(DefaultMetrics.SnapshotsEvicted))
	assert.Equal(t, 200.0, testutil.ToFloat64(DefaultMetrics.HistoryLength))
}

func TestRecordExport_ErrorStatus(t *testing.T) {
	c := DefaultMetrics.ExportsTotal.WithLabelValues("csv", "error")
	before := testutil.ToFloat64(c)

	RecordExport("csv", 0.01, errors.New("disk full"))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestHandler_ServesMetrics(t *testing.T) {
	RecordComprehensive(72.5)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "city_stats_reports_overall_score 72.5"))
}
