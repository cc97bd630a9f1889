package domain

import "time"

// ReportKind identifies a report variant.
type ReportKind string

const (
	ReportFinancial     ReportKind = "financial"
	ReportPopulation    ReportKind = "population"
	ReportBuildings     ReportKind = "buildings"
	ReportResources     ReportKind = "resources"
	ReportPerformance   ReportKind = "performance"
	ReportComprehensive ReportKind = "comprehensive"
)

// DomainReportKinds lists the kinds produced by the report builders.
var DomainReportKinds = []ReportKind{
	ReportFinancial,
	ReportPopulation,
	ReportBuildings,
	ReportResources,
	ReportPerformance,
}

// Report is a point-in-time domain report. The set of implementations is
// closed: FinancialReport, PopulationReport, BuildingReport, ResourceReport
// and PerformanceReport.
type Report interface {
	Kind() ReportKind
	GeneratedAt() time.Time
	// Fields returns the report's field mapping in export order.
	Fields() Fields
	sealed()
}

func baseFields(at time.Time, typeName string) Fields {
	return Fields{
		{Key: "timestamp", Value: at},
		{Key: "type", Value: typeName},
	}
}

// FinancialReport holds the city's current financial totals.
type FinancialReport struct {
	Timestamp     time.Time
	CurrentMoney  float64
	TotalIncome   float64
	TotalExpenses float64
	NetIncome     float64 // TotalIncome - TotalExpenses
}

// NewFinancialReport creates a financial report; net income is derived.
func NewFinancialReport(at time.Time, money, income, expenses float64) FinancialReport {
	return FinancialReport{
		Timestamp:     at,
		CurrentMoney:  money,
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetIncome:     income - expenses,
	}
}

// NetIncomeRecomputed returns income minus expenses from the totals.
func (r FinancialReport) NetIncomeRecomputed() float64 {
	return r.TotalIncome - r.TotalExpenses
}

func (r FinancialReport) Kind() ReportKind       { return ReportFinancial }
func (r FinancialReport) GeneratedAt() time.Time { return r.Timestamp }
func (FinancialReport) sealed()                  {}

// Fields implements Report.
func (r FinancialReport) Fields() Fields {
	return append(baseFields(r.Timestamp, "FinancialReport"),
		Field{Key: "current_money", Value: r.CurrentMoney},
		Field{Key: "total_income", Value: r.TotalIncome},
		Field{Key: "total_expenses", Value: r.TotalExpenses},
		Field{Key: "net_income", Value: r.NetIncome},
	)
}

// FinancialComparison holds the deltas between two financial reports.
type FinancialComparison struct {
	MoneyChange     float64
	IncomeChange    float64
	ExpensesChange  float64
	NetIncomeChange float64
}

// CompareFinancial returns after minus before for every financial total.
func CompareFinancial(before, after FinancialReport) FinancialComparison {
	return FinancialComparison{
		MoneyChange:     after.CurrentMoney - before.CurrentMoney,
		IncomeChange:    after.TotalIncome - before.TotalIncome,
		ExpensesChange:  after.TotalExpenses - before.TotalExpenses,
		NetIncomeChange: after.NetIncome - before.NetIncome,
	}
}

// PopulationReport holds the current population metrics.
type PopulationReport struct {
	Timestamp        time.Time
	TotalPopulation  int
	Satisfaction     float64
	UnemploymentRate float64
	GrowthRate       float64 // first-to-last growth over recorded history
	Demographics     map[string]int
}

func (r PopulationReport) Kind() ReportKind       { return ReportPopulation }
func (r PopulationReport) GeneratedAt() time.Time { return r.Timestamp }
func (PopulationReport) sealed()                  {}

// Fields implements Report.
func (r PopulationReport) Fields() Fields {
	demographics := r.Demographics
	if demographics == nil {
		demographics = map[string]int{}
	}
	return append(baseFields(r.Timestamp, "PopulationReport"),
		Field{Key: "total_population", Value: r.TotalPopulation},
		Field{Key: "satisfaction", Value: r.Satisfaction},
		Field{Key: "unemployment_rate", Value: r.UnemploymentRate},
		Field{Key: "growth_rate", Value: r.GrowthRate},
		Field{Key: "demographics", Value: demographics},
	)
}

// MaintenanceItem is a building whose condition fell below the
// maintenance threshold.
type MaintenanceItem struct {
	ID        string  `json:"id,omitempty"`
	Category  string  `json:"category"`
	Condition float64 `json:"condition"`
}

// BuildingReport holds building counts and condition.
type BuildingReport struct {
	Timestamp         time.Time
	BuildingsByType   map[string]int
	TotalBuildings    int
	AverageCondition  float64
	MaintenanceNeeded []MaintenanceItem
}

func (r BuildingReport) Kind() ReportKind       { return ReportBuildings }
func (r BuildingReport) GeneratedAt() time.Time { return r.Timestamp }
func (BuildingReport) sealed()                  {}

// Fields implements Report.
func (r BuildingReport) Fields() Fields {
	byType := r.BuildingsByType
	if byType == nil {
		byType = map[string]int{}
	}
	maintenance := r.MaintenanceNeeded
	if maintenance == nil {
		maintenance = []MaintenanceItem{}
	}
	return append(baseFields(r.Timestamp, "BuildingReport"),
		Field{Key: "buildings_by_type", Value: byType},
		Field{Key: "total_buildings", Value: r.TotalBuildings},
		Field{Key: "average_condition", Value: r.AverageCondition},
		Field{Key: "maintenance_needed", Value: maintenance},
	)
}

// ResourceReport holds utility availability and consumption.
type ResourceReport struct {
	Timestamp        time.Time
	PowerAvailable   float64
	WaterAvailable   float64
	PowerConsumption float64
	WaterConsumption float64
	Efficiency       map[string]float64 // utilization per utility
}

func (r ResourceReport) Kind() ReportKind       { return ReportResources }
func (r ResourceReport) GeneratedAt() time.Time { return r.Timestamp }
func (ResourceReport) sealed()                  {}

// Fields implements Report.
func (r ResourceReport) Fields() Fields {
	efficiency := r.Efficiency
	if efficiency == nil {
		efficiency = map[string]float64{}
	}
	return append(baseFields(r.Timestamp, "ResourceReport"),
		Field{Key: "power_available", Value: r.PowerAvailable},
		Field{Key: "water_available", Value: r.WaterAvailable},
		Field{Key: "power_consumption", Value: r.PowerConsumption},
		Field{Key: "water_consumption", Value: r.WaterConsumption},
		Field{Key: "efficiency", Value: efficiency},
	)
}

// PerformanceReport holds runtime performance of the simulation client.
type PerformanceReport struct {
	Timestamp   time.Time
	FPS         float64
	MemoryUsage float64 // MB
	LoadTimes   map[string]float64
	Bottlenecks []string
}

func (r PerformanceReport) Kind() ReportKind       { return ReportPerformance }
func (r PerformanceReport) GeneratedAt() time.Time { return r.Timestamp }
func (PerformanceReport) sealed()                  {}

// Fields implements Report.
func (r PerformanceReport) Fields() Fields {
	loadTimes := r.LoadTimes
	if loadTimes == nil {
		loadTimes = map[string]float64{}
	}
	bottlenecks := r.Bottlenecks
	if bottlenecks == nil {
		bottlenecks = []string{}
	}
	return append(baseFields(r.Timestamp, "PerformanceReport"),
		Field{Key: "fps", Value: r.FPS},
		Field{Key: "memory_usage", Value: r.MemoryUsage},
		Field{Key: "load_times", Value: loadTimes},
		Field{Key: "bottlenecks", Value: bottlenecks},
	)
}

var (
	_ Report = FinancialReport{}
	_ Report = PopulationReport{}
	_ Report = BuildingReport{}
	_ Report = ResourceReport{}
	_ Report = PerformanceReport{}
)
