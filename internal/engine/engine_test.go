package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FillsNilSources(t *testing.T) {
	e := Engine{}.Resolve()

	assert.Equal(t, 0, e.Population.TotalPopulation())
	assert.Equal(t, DefaultSatisfaction, e.Population.Satisfaction())
	assert.Equal(t, 0.0, e.Resources.Money())
	assert.Equal(t, 0.0, e.Consumption.PowerConsumption())
	assert.Equal(t, 0.0, e.Finance.TotalIncome())
	assert.Empty(t, e.Buildings.Buildings())
	assert.Equal(t, DefaultFrameRate, e.Performance.FrameRate())
}

func TestResolve_KeepsProvidedSources(t *testing.T) {
	static := &Static{Population: 5000, SatisfactionPct: 75}
	e := Engine{Population: static}.Resolve()

	assert.Equal(t, 5000, e.Population.TotalPopulation())
	assert.Equal(t, 75.0, e.Population.Satisfaction())
	assert.IsType(t, NullFinance{}, e.Finance)
}

func TestBuildingInfo_Defaults(t *testing.T) {
	b := BuildingInfo{}
	assert.Equal(t, DefaultBuildingCategory, b.Category())
	assert.Equal(t, DefaultCondition, b.Condition())

	nb := NewBuilding("b1", "residential", 65)
	assert.Equal(t, "b1", nb.ID())
	assert.Equal(t, "residential", nb.Category())
	assert.Equal(t, 65.0, nb.Condition())
}

func TestStatic_CopiesMaps(t *testing.T) {
	static := &Static{Cohorts: map[string]int{"children": 10}}

	d := static.Demographics()
	d["children"] = 99

	assert.Equal(t, 10, static.Cohorts["children"])
}
