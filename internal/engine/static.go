package engine

// BuildingInfo is a plain Building. An empty category reports
// DefaultBuildingCategory; a nil condition reports DefaultCondition.
type BuildingInfo struct {
	BuildingID   string   `json:"id,omitempty"`
	BuildingType string   `json:"category,omitempty"`
	Cond         *float64 `json:"condition,omitempty"`
}

// NewBuilding creates a building with a known condition.
func NewBuilding(id, category string, condition float64) BuildingInfo {
	return BuildingInfo{BuildingID: id, BuildingType: category, Cond: &condition}
}

func (b BuildingInfo) ID() string { return b.BuildingID }

func (b BuildingInfo) Category() string {
	if b.BuildingType == "" {
		return DefaultBuildingCategory
	}
	return b.BuildingType
}

func (b BuildingInfo) Condition() float64 {
	if b.Cond == nil {
		return DefaultCondition
	}
	return *b.Cond
}

// Static is an engine snapshot held in plain fields. It implements every
// source interface and is used by fixtures, the HTTP server and tests.
type Static struct {
	Population       int                `json:"population"`
	SatisfactionPct  float64            `json:"satisfaction"`
	Unemployment     float64            `json:"unemployment_rate"`
	Cohorts          map[string]int     `json:"demographics,omitempty"`
	Cash             float64            `json:"money"`
	PowerStock       float64            `json:"power"`
	WaterStock       float64            `json:"water"`
	PowerUsage       float64            `json:"power_consumption"`
	WaterUsage       float64            `json:"water_consumption"`
	Income           float64            `json:"income"`
	Expenses         float64            `json:"expenses"`
	BuildingList     []BuildingInfo     `json:"buildings,omitempty"`
	FPS              float64            `json:"fps"`
	MemoryMB         float64            `json:"memory_usage"`
	LoadTimesSeconds map[string]float64 `json:"load_times,omitempty"`
}

func (s *Static) TotalPopulation() int      { return s.Population }
func (s *Static) Satisfaction() float64     { return s.SatisfactionPct }
func (s *Static) UnemploymentRate() float64 { return s.Unemployment }

func (s *Static) Demographics() map[string]int {
	out := make(map[string]int, len(s.Cohorts))
	for k, v := range s.Cohorts {
		out[k] = v
	}
	return out
}

func (s *Static) Money() float64 { return s.Cash }
func (s *Static) Power() float64 { return s.PowerStock }
func (s *Static) Water() float64 { return s.WaterStock }

func (s *Static) PowerConsumption() float64 { return s.PowerUsage }
func (s *Static) WaterConsumption() float64 { return s.WaterUsage }

func (s *Static) TotalIncome() float64   { return s.Income }
func (s *Static) TotalExpenses() float64 { return s.Expenses }

func (s *Static) Buildings() []Building {
	out := make([]Building, len(s.BuildingList))
	for i, b := range s.BuildingList {
		out[i] = b
	}
	return out
}

func (s *Static) FrameRate() float64     { return s.FPS }
func (s *Static) MemoryUsageMB() float64 { return s.MemoryMB }

func (s *Static) LoadTimes() map[string]float64 {
	out := make(map[string]float64, len(s.LoadTimesSeconds))
	for k, v := range s.LoadTimesSeconds {
		out[k] = v
	}
	return out
}

// Engine returns an Engine backed entirely by s.
func (s *Static) Engine() Engine {
	return Engine{
		Population:  s,
		Resources:   s,
		Consumption: s,
		Finance:     s,
		Buildings:   s,
		Performance: s,
	}
}

var (
	_ PopulationSource   = (*Static)(nil)
	_ DemographicsSource = (*Static)(nil)
	_ ResourceSource     = (*Static)(nil)
	_ ConsumptionSource  = (*Static)(nil)
	_ FinanceSource      = (*Static)(nil)
	_ BuildingSource     = (*Static)(nil)
	_ PerformanceSource  = (*Static)(nil)
)
