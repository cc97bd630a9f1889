// Package engine defines the read-only views the report builders take of
// the simulation engine. A partially initialized engine leaves fields nil;
// Resolve substitutes default adapters so builders never see a nil source.
package engine

// PopulationSource exposes the population subsystem.
type PopulationSource interface {
	TotalPopulation() int
	Satisfaction() float64
	UnemploymentRate() float64
}

// DemographicsSource is optionally implemented by a PopulationSource that
// tracks age cohorts.
type DemographicsSource interface {
	Demographics() map[string]int
}

// ResourceSource exposes the resource subsystem.
type ResourceSource interface {
	Money() float64
	Power() float64
	Water() float64
}

// ConsumptionSource exposes utility consumption.
type ConsumptionSource interface {
	PowerConsumption() float64
	WaterConsumption() float64
}

// FinanceSource exposes financial totals.
type FinanceSource interface {
	TotalIncome() float64
	TotalExpenses() float64
}

// Building is one building of the city.
type Building interface {
	ID() string
	Category() string
	Condition() float64
}

// BuildingSource exposes the building collection.
type BuildingSource interface {
	Buildings() []Building
}

// PerformanceSource exposes client runtime performance.
type PerformanceSource interface {
	FrameRate() float64
	MemoryUsageMB() float64
	LoadTimes() map[string]float64
}

// Engine is the composite view of the simulation engine.
type Engine struct {
	Population  PopulationSource
	Resources   ResourceSource
	Consumption ConsumptionSource
	Finance     FinanceSource
	Buildings   BuildingSource
	Performance PerformanceSource
}

// Resolve returns a copy of e with nil sources replaced by default adapters.
func (e Engine) Resolve() Engine {
	if e.Population == nil {
		e.Population = NullPopulation{}
	}
	if e.Resources == nil {
		e.Resources = NullResources{}
	}
	if e.Consumption == nil {
		e.Consumption = NullConsumption{}
	}
	if e.Finance == nil {
		e.Finance = NullFinance{}
	}
	if e.Buildings == nil {
		e.Buildings = NullBuildings{}
	}
	if e.Performance == nil {
		e.Performance = NullPerformance{}
	}
	return e
}
