package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/engine"
	"city-stats/internal/export"
	"city-stats/internal/observability"
	"city-stats/internal/pipeline"
	"city-stats/internal/reporting"
	"city-stats/internal/storage"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Server exposes one report manager over HTTP. All manager access is
// serialized by mu.
type Server struct {
	mu      sync.Mutex
	manager *reporting.Manager
	engine  engine.Engine
	saves   storage.SaveStore // optional
	archive storage.SnapshotArchive
	session string
	logger  *log.Logger

	started time.Time
	turns   int
}

// NewServer creates a server around manager. saves and archive may be nil.
func NewServer(manager *reporting.Manager, saves storage.SaveStore, archive storage.SnapshotArchive, session string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		manager: manager,
		saves:   saves,
		archive: archive,
		session: session,
		logger:  logger,
		started: time.Now(),
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", observability.Handler())

	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /turns", s.handleRecordTurn)
	mux.HandleFunc("PUT /engine", s.handleSetEngine)
	mux.HandleFunc("GET /reports/{kind}", s.handleReport)
	mux.HandleFunc("GET /aggregate/{name}", s.handleAggregate)
	mux.HandleFunc("GET /charts/{name}", s.handleChart)
	mux.HandleFunc("GET /comprehensive", s.handleComprehensive)
	mux.HandleFunc("GET /score", s.handleScore)
	mux.HandleFunc("GET /state", s.handleGetState)
	mux.HandleFunc("PUT /state", s.handlePutState)
	mux.HandleFunc("GET /saves", s.handleListSaves)
	mux.HandleFunc("PUT /saves/{slot}", s.handleSave)
	mux.HandleFunc("POST /saves/{slot}/load", s.handleLoadSave)

	return mux
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	TurnsRecorded    int    `json:"turns_recorded"`
	HistoryLength    int    `json:"history_length"`
	ReportsGenerated int    `json:"reports_generated"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:           "running",
		Uptime:           time.Since(s.started).Round(time.Second).String(),
		TurnsRecorded:    s.turns,
		HistoryLength:    s.manager.History().Len(),
		ReportsGenerated: s.manager.History().ReportsGenerated(),
	})
}

// handleRecordTurn records one completed turn and returns its snapshot.
func (s *Server) handleRecordTurn(w http.ResponseWriter, r *http.Request) {
	turn, err := pipeline.DecodeTurn(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	snap := s.manager.RecordTurn(turn.Turn, turn.State)
	s.turns++
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Append(r.Context(), s.session, []domain.TurnSnapshot{snap}); err != nil {
			s.logger.Printf("archive turn %d: %v", snap.Turn, err)
		}
	}

	writeJSON(w, http.StatusCreated, snap)
}

// handleSetEngine replaces the engine snapshot used by /reports.
func (s *Server) handleSetEngine(w http.ResponseWriter, r *http.Request) {
	var static engine.Static
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&static); err != nil {
		writeError(w, http.StatusBadRequest, "invalid engine snapshot: "+err.Error())
		return
	}

	s.mu.Lock()
	s.engine = static.Engine()
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind := domain.ReportKind(r.PathValue("kind"))

	s.mu.Lock()
	report, err := s.manager.GenerateReport(kind, s.engine)
	if err == nil {
		s.manager.SaveToHistory(report)
	}
	s.mu.Unlock()

	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Fields())
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report, err := s.manager.Aggregate(r.PathValue("name"))
	s.mu.Unlock()

	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Fields())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	spec, err := s.manager.Chart(r.PathValue("name"))
	s.mu.Unlock()

	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// handleComprehensive builds the comprehensive report. With ?format=md the
// Markdown rendering is returned instead of JSON.
func (s *Server) handleComprehensive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	c, err := s.manager.Comprehensive()
	s.mu.Unlock()

	if err != nil {
		writeManagerError(w, err)
		return
	}
	if r.URL.Query().Get("format") == string(export.FormatMarkdown) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, export.RenderMarkdown(c))
		return
	}
	writeJSON(w, http.StatusOK, c.Fields())
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	score, err := s.manager.Score()
	s.mu.Unlock()

	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score.Fields())
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.manager.SaveState()
	s.mu.Unlock()

	data, err := storage.MarshalState(state)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handlePutState replaces the recorded history with a persisted state.
func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := storage.UnmarshalState(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.manager.LoadState(state)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusNotImplemented, "no save store configured")
		return
	}
	slots, err := s.saves.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if slots == nil {
		slots = []storage.SaveSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusNotImplemented, "no save store configured")
		return
	}

	s.mu.Lock()
	state := s.manager.SaveState()
	s.mu.Unlock()

	if err := s.saves.Save(r.Context(), r.PathValue("slot"), state); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoadSave(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusNotImplemented, "no save store configured")
		return
	}

	state, err := s.saves.Load(r.Context(), r.PathValue("slot"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.mu.Lock()
	s.manager.LoadState(state)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeManagerError(w http.ResponseWriter, err error) {
	if errors.Is(err, reporting.ErrUnknownReportType) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := export.MarshalJSON(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
