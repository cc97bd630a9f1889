package reporting

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"city-stats/internal/chart"
	"city-stats/internal/decision"
	"city-stats/internal/domain"
	"city-stats/internal/engine"
	"city-stats/internal/export"
	"city-stats/internal/history"
	"city-stats/internal/metrics"
	"city-stats/internal/observability"
	"city-stats/internal/scoring"
)

// Manager owns the statistics of one game session: the bounded snapshot
// history, the reports-generated counter and the audit list of built
// reports. It is not safe for concurrent use; callers serialize access.
type Manager struct {
	store      *history.Store
	builder    *Builder
	aggregator *Aggregator
	calculator *scoring.Calculator
	emitter    *chart.Emitter
	exportDir  string
	now        func() time.Time
	newID      func() string
	logger     *log.Logger

	reportsHistory []domain.Report
}

// ManagerOptions contains configuration for creating a Manager.
type ManagerOptions struct {
	HistoryCapacity      int // Default: 200
	PersistLimit         int // Default: 50
	Thresholds           *decision.Thresholds
	Breakpoints          *scoring.Breakpoints
	MaintenanceThreshold float64 // Default: 70
	MaxLineSeries        int     // Default: 5
	ExportDir            string  // Default: "exports"
	Clock                func() time.Time
	IDGenerator          func() string
	Logger               *log.Logger
}

// DefaultExportDir is the directory default export file names live in.
const DefaultExportDir = "exports"

// NewManager creates a report manager.
func NewManager(opts ManagerOptions) *Manager {
	now := opts.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	thresholds := decision.DefaultThresholds()
	if opts.Thresholds != nil {
		thresholds = *opts.Thresholds
	}

	breakpoints := scoring.DefaultBreakpoints()
	if opts.Breakpoints != nil {
		breakpoints = *opts.Breakpoints
	}

	maintenance := opts.MaintenanceThreshold
	if maintenance == 0 {
		maintenance = DefaultMaintenanceThreshold
	}

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = DefaultExportDir
	}

	newID := opts.IDGenerator
	if newID == nil {
		newID = uuid.NewString
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	store := history.NewStore(opts.HistoryCapacity).
		WithClock(now).
		WithPersistLimit(opts.PersistLimit).
		OnRecord(observability.RecordSnapshot)

	aggregator := NewAggregator(decision.NewAdvisor(thresholds)).
		OnAdvisory(func(a decision.Advisory) { observability.RecordRecommendation(a.Rule) })

	return &Manager{
		store: store,
		builder: NewBuilder().
			WithClock(now).
			WithMaintenanceThreshold(maintenance).
			WithHistory(store),
		aggregator: aggregator,
		calculator: scoring.NewCalculator(breakpoints),
		emitter:    chart.NewEmitter(opts.MaxLineSeries),
		exportDir:  exportDir,
		now:        now,
		newID:      newID,
		logger:     logger,
	}
}

// History returns the underlying snapshot store.
func (m *Manager) History() *history.Store {
	return m.store
}

// RecordTurn records the state of a completed turn.
func (m *Manager) RecordTurn(turn int, state domain.TurnState) domain.TurnSnapshot {
	return m.store.Record(turn, state)
}

// GenerateReport builds the domain report of the given kind from eng.
func (m *Manager) GenerateReport(kind domain.ReportKind, eng engine.Engine) (domain.Report, error) {
	r, err := m.builder.Build(kind, eng)
	if err != nil {
		return nil, err
	}
	observability.RecordDomainReport(string(kind))
	return r, nil
}

// SaveToHistory appends r to the in-memory audit list.
func (m *Manager) SaveToHistory(r domain.Report) {
	m.reportsHistory = append(m.reportsHistory, r)
}

// ReportsHistory returns the audit list, oldest first.
func (m *Manager) ReportsHistory() []domain.Report {
	out := make([]domain.Report, len(m.reportsHistory))
	copy(out, m.reportsHistory)
	return out
}

// Aggregate builds the named aggregate report from recorded history.
func (m *Manager) Aggregate(name string) (*domain.AggregateReport, error) {
	r, err := m.aggregator.Build(name, m.store.Snapshots())
	if err != nil {
		return nil, err
	}
	observability.RecordAggregateReport(name)
	return r, nil
}

// Chart returns the chart specification of the named aggregate report.
func (m *Manager) Chart(name string) (domain.ChartSpec, error) {
	r, err := m.Aggregate(name)
	if err != nil {
		return domain.ChartSpec{}, err
	}
	return m.emitter.Emit(r), nil
}

// Score evaluates the city from the population and economic aggregates.
func (m *Manager) Score() (domain.ScoreResult, error) {
	pop, err := m.Aggregate(AggregatePopulation)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	econ, err := m.Aggregate(AggregateEconomic)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	return m.calculator.FromReports(pop, econ), nil
}

// Comprehensive builds every aggregate report with its chart specification
// and the overall score, and increments the reports-generated counter.
func (m *Manager) Comprehensive() (*domain.ComprehensiveReport, error) {
	reports := make([]domain.NamedReport, 0, len(AggregateNames))
	for _, name := range AggregateNames {
		r, err := m.Aggregate(name)
		if err != nil {
			return nil, fmt.Errorf("build %s report: %w", name, err)
		}
		reports = append(reports, domain.NamedReport{Name: name, Report: r})
	}

	c := &domain.ComprehensiveReport{
		ID:          m.newID(),
		GeneratedAt: m.now(),
		Reports:     reports,
		Charts:      m.emitter.EmitAll(reports),
	}
	pop, _ := c.Report(AggregatePopulation)
	econ, _ := c.Report(AggregateEconomic)
	c.Score = m.calculator.FromReports(pop, econ)
	c.Number = m.store.IncrementReports()

	observability.RecordComprehensive(c.Score.Overall)
	return c, nil
}

// Advisories returns every recommendation rule evaluated over the
// recorded history.
func (m *Manager) Advisories() []decision.Advisory {
	return m.aggregator.Advisories(m.store.Snapshots())
}

// FinancialTrend returns the first-to-last growth of net income over
// recorded history; 0 for fewer than two turns.
func (m *Manager) FinancialTrend() float64 {
	return metrics.NetIncomeTrend(m.store.Snapshots())
}

// PredictPopulation extrapolates population turnsAhead turns past the
// latest recorded turn along the linear trend.
func (m *Manager) PredictPopulation(turnsAhead int) float64 {
	return metrics.PredictPopulation(m.store.Snapshots(), turnsAhead)
}

// SaveState returns the persisted state: the last recorded turns and the
// reports-generated counter.
func (m *Manager) SaveState() domain.ReportState {
	return m.store.ToState()
}

// LoadState replaces the recorded history and counter with state.
func (m *Manager) LoadState(state domain.ReportState) {
	m.store.LoadState(state)
	observability.RecordStateLoad(m.store.Len())
	m.logger.Printf("loaded report state: %d turns, %d reports generated",
		m.store.Len(), m.store.ReportsGenerated())
}

// ExportReport writes a domain report as JSON or flat CSV. An empty
// filename uses the default name in the export directory. Failures are
// logged and returned; in-memory state is never affected.
func (m *Manager) ExportReport(r domain.Report, format export.Format, filename string) (string, error) {
	if filename == "" {
		filename = export.DefaultFilename(m.exportDir, string(r.Kind())+"_report", format, m.now())
	}
	return filename, m.recordExport(format, filename, func() error {
		return export.Report(filename, format, r)
	})
}

// ExportAggregate writes an aggregate report as JSON, tabular CSV or
// Markdown.
func (m *Manager) ExportAggregate(r *domain.AggregateReport, format export.Format, filename string) (string, error) {
	if filename == "" {
		filename = export.DefaultFilename(m.exportDir, r.Title, format, m.now())
	}
	return filename, m.recordExport(format, filename, func() error {
		return export.Aggregate(filename, format, r)
	})
}

// ExportComprehensive writes a comprehensive report as JSON or Markdown.
func (m *Manager) ExportComprehensive(c *domain.ComprehensiveReport, format export.Format, filename string) (string, error) {
	if filename == "" {
		filename = export.DefaultFilename(m.exportDir, "comprehensive_report", format, m.now())
	}
	return filename, m.recordExport(format, filename, func() error {
		return export.Comprehensive(filename, format, c)
	})
}

// ExportChart writes a chart specification as JSON for an external renderer.
func (m *Manager) ExportChart(name string, spec domain.ChartSpec, filename string) (string, error) {
	if filename == "" {
		filename = export.DefaultFilename(m.exportDir, name+"_chart", export.FormatJSON, m.now())
	}
	return filename, m.recordExport(export.FormatJSON, filename, func() error {
		return export.WriteFile(filename, func(w io.Writer) error { return export.WriteJSON(w, spec) })
	})
}

func (m *Manager) recordExport(format export.Format, filename string, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.RecordExport(string(format), time.Since(start).Seconds(), err)
	if err != nil {
		m.logger.Printf("export %s failed: %v", filename, err)
	}
	return err
}
