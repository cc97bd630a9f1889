// Package reporting builds domain reports from the engine, aggregate
// reports from recorded history, and owns the per-session ReportManager.
package reporting

import (
	"fmt"
	"sort"
	"time"

	"city-stats/internal/domain"
	"city-stats/internal/engine"
	"city-stats/internal/metrics"
)

// Defaults for the building and performance builders.
const (
	DefaultMaintenanceThreshold = 70.0
	LowFrameRate                = 30.0
	HighMemoryUsageMB           = 1024.0
	SlowLoadSeconds             = 5.0
)

// HistoryView is the read side of the snapshot store the builders use for
// history-derived fields.
type HistoryView interface {
	Snapshots() []domain.TurnSnapshot
}

// Builder maps a read-only engine view into domain reports. Missing engine
// sources resolve to default adapters, so every build succeeds for a known
// kind.
type Builder struct {
	now                  func() time.Time
	maintenanceThreshold float64
	history              HistoryView
}

// NewBuilder creates a builder with the default maintenance threshold.
func NewBuilder() *Builder {
	return &Builder{
		now:                  func() time.Time { return time.Now().UTC() },
		maintenanceThreshold: DefaultMaintenanceThreshold,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithMaintenanceThreshold sets the condition below which a building is
// listed as needing maintenance.
func (b *Builder) WithMaintenanceThreshold(threshold float64) *Builder {
	b.maintenanceThreshold = threshold
	return b
}

// WithHistory sets the history used for the population growth rate.
func (b *Builder) WithHistory(h HistoryView) *Builder {
	b.history = h
	return b
}

// Build produces the report of the given kind.
// Returns ErrUnknownReportType for kinds without a domain builder,
// including the comprehensive kind.
func (b *Builder) Build(kind domain.ReportKind, eng engine.Engine) (domain.Report, error) {
	eng = eng.Resolve()
	switch kind {
	case domain.ReportFinancial:
		return b.Financial(eng), nil
	case domain.ReportPopulation:
		return b.Population(eng), nil
	case domain.ReportBuildings:
		return b.Buildings(eng), nil
	case domain.ReportResources:
		return b.Resources(eng), nil
	case domain.ReportPerformance:
		return b.Performance(eng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, kind)
	}
}

// Financial builds the financial report.
func (b *Builder) Financial(eng engine.Engine) domain.FinancialReport {
	eng = eng.Resolve()
	return domain.NewFinancialReport(
		b.now(),
		eng.Resources.Money(),
		eng.Finance.TotalIncome(),
		eng.Finance.TotalExpenses(),
	)
}

// Population builds the population report. The growth rate is taken over
// the recorded history when one is attached.
func (b *Builder) Population(eng engine.Engine) domain.PopulationReport {
	eng = eng.Resolve()

	demographics := map[string]int{}
	if ds, ok := eng.Population.(engine.DemographicsSource); ok {
		for k, v := range ds.Demographics() {
			demographics[k] = v
		}
	}

	var growth float64
	if b.history != nil {
		growth = metrics.GrowthRate(domain.SeriesOf(b.history.Snapshots(), domain.MetricPopulation))
	}

	return domain.PopulationReport{
		Timestamp:        b.now(),
		TotalPopulation:  eng.Population.TotalPopulation(),
		Satisfaction:     eng.Population.Satisfaction(),
		UnemploymentRate: eng.Population.UnemploymentRate(),
		GrowthRate:       growth,
		Demographics:     demographics,
	}
}

// Buildings builds the building report in a single pass over the
// collection. An empty collection reports an average condition of 100.
func (b *Builder) Buildings(eng engine.Engine) domain.BuildingReport {
	eng = eng.Resolve()
	buildings := eng.Buildings.Buildings()

	byType := make(map[string]int)
	maintenance := []domain.MaintenanceItem{}
	var totalCondition float64
	for _, bld := range buildings {
		category := bld.Category()
		condition := bld.Condition()

		byType[category]++
		totalCondition += condition
		if condition < b.maintenanceThreshold {
			maintenance = append(maintenance, domain.MaintenanceItem{
				ID:        bld.ID(),
				Category:  category,
				Condition: condition,
			})
		}
	}

	avg := engine.DefaultCondition
	if len(buildings) > 0 {
		avg = totalCondition / float64(len(buildings))
	}

	return domain.BuildingReport{
		Timestamp:         b.now(),
		BuildingsByType:   byType,
		TotalBuildings:    len(buildings),
		AverageCondition:  avg,
		MaintenanceNeeded: maintenance,
	}
}

// Resources builds the resource report. Efficiency is utilization:
// consumption / max(available, 1).
func (b *Builder) Resources(eng engine.Engine) domain.ResourceReport {
	eng = eng.Resolve()
	power := eng.Resources.Power()
	water := eng.Resources.Water()
	powerUse := eng.Consumption.PowerConsumption()
	waterUse := eng.Consumption.WaterConsumption()

	return domain.ResourceReport{
		Timestamp:        b.now(),
		PowerAvailable:   power,
		WaterAvailable:   water,
		PowerConsumption: powerUse,
		WaterConsumption: waterUse,
		Efficiency: map[string]float64{
			"power": utilization(powerUse, power),
			"water": utilization(waterUse, water),
		},
	}
}

// Performance builds the performance report and lists bottlenecks.
func (b *Builder) Performance(eng engine.Engine) domain.PerformanceReport {
	eng = eng.Resolve()
	fps := eng.Performance.FrameRate()
	mem := eng.Performance.MemoryUsageMB()
	loadTimes := eng.Performance.LoadTimes()
	if loadTimes == nil {
		loadTimes = map[string]float64{}
	}

	return domain.PerformanceReport{
		Timestamp:   b.now(),
		FPS:         fps,
		MemoryUsage: mem,
		LoadTimes:   loadTimes,
		Bottlenecks: bottlenecks(fps, mem, loadTimes),
	}
}

func utilization(consumption, available float64) float64 {
	if available < 1 {
		available = 1
	}
	return consumption / available
}

func bottlenecks(fps, mem float64, loadTimes map[string]float64) []string {
	out := []string{}
	if fps < LowFrameRate {
		out = append(out, "low frame rate")
	}
	if mem > HighMemoryUsageMB {
		out = append(out, "high memory usage")
	}

	names := make([]string, 0, len(loadTimes))
	for name := range loadTimes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if loadTimes[name] > SlowLoadSeconds {
			out = append(out, "slow load: "+name)
		}
	}
	return out
}
