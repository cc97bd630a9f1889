package domain

import "time"

// Building categories tallied per snapshot.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
	CategoryIndustrial  = "industrial"
	CategoryPublic      = "public"
	CategoryUnknown     = "unknown"
)

// Defaults substituted for turn state keys that are absent or malformed.
// Keys without an entry here default to zero.
const (
	DefaultSatisfaction         = 50.0
	DefaultTaxRate              = 0.1
	DefaultDiplomaticReputation = 50.0
	DefaultCreditScore          = 750.0
)

// TurnSnapshot is the recorded state of the city at one turn.
// Corresponds to one entry of historical_data in the persisted report state.
type TurnSnapshot struct {
	Turn      int       `json:"turn"`
	Timestamp time.Time `json:"timestamp"`

	// Society
	Population       int     `json:"population"`
	Satisfaction     float64 `json:"satisfaction"`      // 0-100
	UnemploymentRate float64 `json:"unemployment_rate"` // 0-1
	CrimeRate        float64 `json:"crime_rate"`
	PollutionLevel   float64 `json:"pollution_level"`

	// Utilities
	EnergyConsumption float64 `json:"energy_consumption"`
	WaterConsumption  float64 `json:"water_consumption"`

	// Buildings
	BuildingsCount       int `json:"buildings_count"`
	ResidentialBuildings int `json:"residential_buildings"`
	CommercialBuildings  int `json:"commercial_buildings"`
	IndustrialBuildings  int `json:"industrial_buildings"`
	PublicBuildings      int `json:"public_buildings"`

	// Finance
	Money     float64 `json:"money"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"` // always income - expenses
	TaxRate   float64 `json:"tax_rate"`

	// Progress and diplomacy
	TechnologiesResearched int     `json:"technologies_researched"`
	ActiveEvents           int     `json:"active_events"`
	DiplomaticReputation   float64 `json:"diplomatic_reputation"`
	ActiveWars             int     `json:"active_wars"`

	// Credit
	ActiveLoans int     `json:"active_loans"`
	TotalDebt   float64 `json:"total_debt"` // sum of remaining loan amounts
	CreditScore float64 `json:"credit_score"`
}

// NewTurnSnapshot builds a snapshot from a loosely-typed turn state.
// Absent or malformed keys fall back to their documented defaults; a
// caller-supplied net_income is ignored and recomputed.
func NewTurnSnapshot(turn int, at time.Time, state TurnState) TurnSnapshot {
	buildings := state.Records("buildings")
	loans := state.Records("active_loans")

	var totalDebt float64
	for _, loan := range loans {
		totalDebt += TurnState(loan).Float("remaining_amount", 0)
	}

	s := TurnSnapshot{
		Turn:      turn,
		Timestamp: at,

		Population:       state.Int("population", 0),
		Satisfaction:     state.Float("satisfaction", DefaultSatisfaction),
		UnemploymentRate: state.Float("unemployment_rate", 0),
		CrimeRate:        state.Float("crime_rate", 0),
		PollutionLevel:   state.Float("pollution_level", 0),

		EnergyConsumption: state.Float("energy_consumption", 0),
		WaterConsumption:  state.Float("water_consumption", 0),

		BuildingsCount:       state.Count("buildings"),
		ResidentialBuildings: countCategory(buildings, CategoryResidential),
		CommercialBuildings:  countCategory(buildings, CategoryCommercial),
		IndustrialBuildings:  countCategory(buildings, CategoryIndustrial),
		PublicBuildings:      countCategory(buildings, CategoryPublic),

		Money:    state.Float("money", 0),
		Income:   state.Float("income", 0),
		Expenses: state.Float("expenses", 0),
		TaxRate:  state.Float("tax_rate", DefaultTaxRate),

		TechnologiesResearched: state.Count("researched_technologies"),
		ActiveEvents:           state.Count("active_events"),
		DiplomaticReputation:   state.Float("diplomatic_reputation", DefaultDiplomaticReputation),
		ActiveWars:             state.Count("active_wars"),

		ActiveLoans: state.Count("active_loans"),
		TotalDebt:   totalDebt,
		CreditScore: state.Float("credit_score", DefaultCreditScore),
	}
	return s.Normalize()
}

// Normalize recomputes derived fields. Stores call it on every insert.
func (s TurnSnapshot) Normalize() TurnSnapshot {
	s.NetIncome = s.Income - s.Expenses
	return s
}

// BuildingDistribution returns per-category counts in canonical order.
func (s TurnSnapshot) BuildingDistribution() []CategoryValue {
	return []CategoryValue{
		{Label: CategoryResidential, Value: float64(s.ResidentialBuildings)},
		{Label: CategoryCommercial, Value: float64(s.CommercialBuildings)},
		{Label: CategoryIndustrial, Value: float64(s.IndustrialBuildings)},
		{Label: CategoryPublic, Value: float64(s.PublicBuildings)},
	}
}

func countCategory(buildings []map[string]any, category string) int {
	n := 0
	for _, b := range buildings {
		if c, ok := b["category"].(string); ok && c == category {
			n++
		}
	}
	return n
}
