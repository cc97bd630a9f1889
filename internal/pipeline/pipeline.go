// Package pipeline runs one reporting pass: record turns, build every
// report, write the exports and optionally persist the resulting state.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"city-stats/internal/decision"
	"city-stats/internal/domain"
	"city-stats/internal/engine"
	"city-stats/internal/export"
	"city-stats/internal/idhash"
	"city-stats/internal/reporting"
	"city-stats/internal/storage"
)

// Pipeline orchestrates report generation and export for a Manager.
type Pipeline struct {
	manager   *reporting.Manager
	outputDir string
	engine    *engine.Engine
	logger    *log.Logger

	saveStore storage.SaveStore
	saveSlot  string

	archive   storage.SnapshotArchive
	sessionID string
}

// Result lists what a run produced.
type Result struct {
	TurnsRecorded int
	InputDigest   string // digest of the recorded turns, stable across runs
	Files         []string
	Report        *domain.ComprehensiveReport
}

// New creates a pipeline writing into outputDir.
func New(manager *reporting.Manager, outputDir string) *Pipeline {
	return &Pipeline{
		manager:   manager,
		outputDir: outputDir,
		logger:    log.Default(),
	}
}

// WithLogger sets the logger.
func (p *Pipeline) WithLogger(logger *log.Logger) *Pipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithEngine enables the per-turn domain reports built from eng.
func (p *Pipeline) WithEngine(eng engine.Engine) *Pipeline {
	p.engine = &eng
	return p
}

// WithSaveStore persists the report state under slot after the run.
func (p *Pipeline) WithSaveStore(store storage.SaveStore, slot string) *Pipeline {
	p.saveStore = store
	p.saveSlot = slot
	return p
}

// WithArchive appends the recorded turns to archive under sessionID.
func (p *Pipeline) WithArchive(archive storage.SnapshotArchive, sessionID string) *Pipeline {
	p.archive = archive
	p.sessionID = sessionID
	return p
}

// Run records turns and writes output files:
// - <kind>_report.json for each domain report (with an engine)
// - <name>_report.csv and <name>_chart.json for each aggregate report
// - comprehensive_report.json and comprehensive_report.md
// - advisories.md
func (p *Pipeline) Run(ctx context.Context, turns []TurnInput) (*Result, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	// 1. Record turns
	recorded := make([]domain.TurnSnapshot, 0, len(turns))
	for _, t := range turns {
		recorded = append(recorded, p.manager.RecordTurn(t.Turn, t.State))
	}
	result := &Result{
		TurnsRecorded: len(recorded),
		InputDigest:   idhash.ComputeHistoryDigest(recorded),
	}

	// 2. Domain reports
	if p.engine != nil {
		for _, kind := range domain.DomainReportKinds {
			r, err := p.manager.GenerateReport(kind, *p.engine)
			if err != nil {
				return nil, fmt.Errorf("build %s report: %w", kind, err)
			}
			p.manager.SaveToHistory(r)
			path, err := p.manager.ExportReport(r, export.FormatJSON, p.path(string(kind)+"_report", export.FormatJSON))
			if err != nil {
				return nil, err
			}
			result.Files = append(result.Files, path)
		}
	}

	// 3. Comprehensive report with its parts
	c, err := p.manager.Comprehensive()
	if err != nil {
		return nil, err
	}
	result.Report = c

	for _, nr := range c.Reports {
		path, err := p.manager.ExportAggregate(nr.Report, export.FormatCSV, p.path(nr.Name+"_report", export.FormatCSV))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	for _, nc := range c.Charts {
		path, err := p.manager.ExportChart(nc.Name, nc.Spec, p.path(nc.Name+"_chart", export.FormatJSON))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	for _, format := range []export.Format{export.FormatJSON, export.FormatMarkdown} {
		path, err := p.manager.ExportComprehensive(c, format, p.path("comprehensive_report", format))
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	advisoriesPath := filepath.Join(p.outputDir, "advisories.md")
	md := decision.RenderMarkdown(p.manager.Advisories())
	if err := export.WriteFile(advisoriesPath, func(w io.Writer) error {
		_, err := io.WriteString(w, md)
		return err
	}); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, advisoriesPath)

	// 4. Persistence
	if p.saveStore != nil {
		if err := p.saveStore.Save(ctx, p.saveSlot, p.manager.SaveState()); err != nil {
			return nil, fmt.Errorf("save state to slot %s: %w", p.saveSlot, err)
		}
		p.logger.Printf("saved report state to slot %s", p.saveSlot)
	}
	if p.archive != nil && len(recorded) > 0 {
		if err := p.archive.Append(ctx, p.sessionID, recorded); err != nil {
			return nil, fmt.Errorf("archive turns: %w", err)
		}
		p.logger.Printf("archived %d turns for session %s", len(recorded), p.sessionID)
	}

	return result, nil
}

func (p *Pipeline) path(name string, format export.Format) string {
	return filepath.Join(p.outputDir, name+"."+format.Extension())
}
