package engine

// Defaults reported by the null adapters.
const (
	DefaultSatisfaction     = 50.0
	DefaultFrameRate        = 60.0
	DefaultBuildingCategory = "unknown"
	DefaultCondition        = 100.0
)

// NullPopulation reports an empty population.
type NullPopulation struct{}

func (NullPopulation) TotalPopulation() int      { return 0 }
func (NullPopulation) Satisfaction() float64     { return DefaultSatisfaction }
func (NullPopulation) UnemploymentRate() float64 { return 0 }

// NullResources reports no stock.
type NullResources struct{}

func (NullResources) Money() float64 { return 0 }
func (NullResources) Power() float64 { return 0 }
func (NullResources) Water() float64 { return 0 }

// NullConsumption reports no consumption.
type NullConsumption struct{}

func (NullConsumption) PowerConsumption() float64 { return 0 }
func (NullConsumption) WaterConsumption() float64 { return 0 }

// NullFinance reports no income or expenses.
type NullFinance struct{}

func (NullFinance) TotalIncome() float64   { return 0 }
func (NullFinance) TotalExpenses() float64 { return 0 }

// NullBuildings reports no buildings.
type NullBuildings struct{}

func (NullBuildings) Buildings() []Building { return nil }

// NullPerformance reports the nominal frame rate and nothing else.
type NullPerformance struct{}

func (NullPerformance) FrameRate() float64            { return DefaultFrameRate }
func (NullPerformance) MemoryUsageMB() float64        { return 0 }
func (NullPerformance) LoadTimes() map[string]float64 { return nil }

var (
	_ PopulationSource  = NullPopulation{}
	_ ResourceSource    = NullResources{}
	_ ConsumptionSource = NullConsumption{}
	_ FinanceSource     = NullFinance{}
	_ BuildingSource    = NullBuildings{}
	_ PerformanceSource = NullPerformance{}
)
