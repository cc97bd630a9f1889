package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city-stats/internal/reporting"
	"city-stats/internal/storage/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.SnapshotArchive) {
	t.Helper()
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := reporting.NewManager(reporting.ManagerOptions{
		Clock:       func() time.Time { return fixedTime },
		IDGenerator: func() string { return "report-1" },
		ExportDir:   t.TempDir(),
		Logger:      log.New(io.Discard, "", 0),
	})
	archive := memory.NewSnapshotArchive()
	return NewServer(manager, memory.NewSaveStore(), archive, "session-1", log.New(io.Discard, "", 0)), archive
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServer_RecordTurnAndAggregate(t *testing.T) {
	s, archive := newTestServer(t)
	h := s.Routes()

	for i, pop := range []int{1000, 1100} {
		body := fmt.Sprintf(`{"turn": %d, "state": {"population": %d, "income": 500, "expenses": 200}}`, i+1, pop)
		rec := do(t, h, http.MethodPost, "/turns", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/aggregate/population", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "Population Report", out["title"])

	archived, err := archive.Turns(t.Context(), "session-1")
	require.NoError(t, err)
	assert.Len(t, archived, 2)
}

func TestServer_BadTurn(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodPost, "/turns", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UnknownNames(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/reports/weather", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/reports/comprehensive", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/aggregate/weather", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/charts/weather", "").Code)
}

func TestServer_DomainReportUsesEngine(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodPut, "/engine", `{"money": 5000, "income": 1200, "expenses": 700}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/reports/financial", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, 500.0, out["net_income"])
}

func TestServer_Comprehensive(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	rec := do(t, h, http.MethodGet, "/comprehensive", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/comprehensive?format=md", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# City Report #2")
}

func TestServer_StateRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	do(t, h, http.MethodPost, "/turns", `{"turn": 1, "state": {"population": 900}}`)
	rec := do(t, h, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	saved := rec.Body.String()

	other, _ := newTestServer(t)
	oh := other.Routes()
	rec = do(t, oh, http.MethodPut, "/state", saved)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, other.manager.History().Len())

	rec = do(t, oh, http.MethodPut, "/state", `{"historical_data": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SaveSlots(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Routes()

	do(t, h, http.MethodPost, "/turns", `{"turn": 1, "state": {"population": 900}}`)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/saves/autosave", "").Code)

	rec := do(t, h, http.MethodGet, "/saves", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var slots []map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&slots))
	require.Len(t, slots, 1)
	assert.Equal(t, "autosave", slots[0]["slot"])

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/saves/autosave/load", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/saves/missing/load", "").Code)
}
