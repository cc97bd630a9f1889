package pipeline

import (
	"fmt"

	"city-stats/internal/domain"
	"city-stats/internal/engine"
)

// FixtureTurns returns n deterministic turns of a growing city: population
// rises 5% per turn, a commercial building opens every third turn and a
// loan is taken on turn 4.
func FixtureTurns(n int) []TurnInput {
	turns := make([]TurnInput, 0, n)
	population := 1000.0
	money := 10000.0

	for turn := 1; turn <= n; turn++ {
		income := 1200 + 40*float64(turn)
		expenses := 900 + 25*float64(turn)
		money += income - expenses

		var buildings []any
		for i := 0; i < 4+turn/2; i++ {
			buildings = append(buildings, map[string]any{"category": domain.CategoryResidential})
		}
		for i := 0; i < 1+turn/3; i++ {
			buildings = append(buildings, map[string]any{"category": domain.CategoryCommercial})
		}
		buildings = append(buildings,
			map[string]any{"category": domain.CategoryIndustrial},
			map[string]any{"category": domain.CategoryPublic},
		)

		var loans []any
		if turn >= 4 {
			loans = append(loans, map[string]any{"remaining_amount": 5000.0 - 250*float64(turn-4)})
		}

		var techs []any
		for i := 0; i < turn/2; i++ {
			techs = append(techs, fmt.Sprintf("tech_%d", i+1))
		}

		turns = append(turns, TurnInput{
			Turn: turn,
			State: domain.TurnState{
				"population":              int(population),
				"satisfaction":            62.0 + float64(turn%4),
				"unemployment_rate":       0.06 - 0.002*float64(turn),
				"crime_rate":              0.03,
				"pollution_level":         10 + float64(turn),
				"energy_consumption":      400 + 12*float64(turn),
				"water_consumption":       300 + 9*float64(turn),
				"buildings":               buildings,
				"money":                   money,
				"income":                  income,
				"expenses":                expenses,
				"tax_rate":                0.12,
				"researched_technologies": techs,
				"diplomatic_reputation":   55.0,
				"active_loans":            loans,
				"credit_score":            720.0,
			},
		})
		population *= 1.05
	}
	return turns
}

// FixtureEngine returns an engine snapshot consistent with the last of
// FixtureTurns(10).
func FixtureEngine() *engine.Static {
	return &engine.Static{
		Population:      1551,
		SatisfactionPct: 64,
		Unemployment:    0.04,
		Cohorts: map[string]int{
			"children": 310,
			"adults":   980,
			"seniors":  261,
		},
		Cash:       15625,
		PowerStock: 800,
		WaterStock: 600,
		PowerUsage: 520,
		WaterUsage: 390,
		Income:     1600,
		Expenses:   1150,
		BuildingList: []engine.BuildingInfo{
			engine.NewBuilding("res-1", domain.CategoryResidential, 92),
			engine.NewBuilding("res-2", domain.CategoryResidential, 64),
			engine.NewBuilding("com-1", domain.CategoryCommercial, 81),
			engine.NewBuilding("ind-1", domain.CategoryIndustrial, 55),
			engine.NewBuilding("pub-1", domain.CategoryPublic, 99),
		},
		FPS:      58,
		MemoryMB: 512,
		LoadTimesSeconds: map[string]float64{
			"map":      2.4,
			"textures": 6.1,
		},
	}
}
