package player

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

func farmer(t *testing.T) *Player {
	t.Helper()
	p := newTestPlayer(world.NewEmpty(1))
	p.Inv.Add(items.FarmPlot, 1)
	require.True(t, p.Place(items.FarmPlot))
	require.Len(t, p.Plots, 1)
	return p
}

func onlyPlot(p *Player) *Plot {
	for _, pl := range p.Plots {
		return pl
	}
	return nil
}

func growFor(p *Player, seconds float64) {
	for i := 0; i < int(seconds*10)+1; i++ {
		p.GrowPlots(0.1)
	}
}

func TestPlantWaterGrowHarvest(t *testing.T) {
	p := farmer(t)
	p.Inv.Add(items.VeggieSeed, 1)
	p.Inv.Add(items.WateringCan, 1)

	require.True(t, p.PlantSeed(items.Carrot))
	assert.Zero(t, p.Inv.Count(items.VeggieSeed))
	assert.Equal(t, 1, p.WaterPlots())

	pl := onlyPlot(p)
	grow, _ := items.CropGrowTime(items.Carrot)
	growFor(p, grow)
	require.Greater(t, pl.Water, 0.0)
	require.True(t, pl.Ready())

	got, ok := p.HarvestPlot(rand.New(rand.NewSource(1)))
	require.True(t, ok)
	assert.Equal(t, items.Stack{ID: items.Carrot, Qty: 1}, got)
	assert.Equal(t, 1, p.Inv.Count(items.Carrot))
	assert.Equal(t, items.None, pl.Crop)
	assert.Zero(t, pl.Stage)

	_, ok = p.HarvestPlot(rand.New(rand.NewSource(1)))
	assert.False(t, ok, "empty plot yields nothing")
}

func TestFertilizedHarvestDoubles(t *testing.T) {
	p := farmer(t)
	p.Inv.Add(items.VeggieSeed, 1)
	p.Inv.Add(items.Fertilizer, 1)

	require.True(t, p.PlantSeed(items.Cabbage))
	require.True(t, p.ApplyFertilizer())
	assert.False(t, p.ApplyFertilizer(), "fertilizer is one-time per crop")

	grow, _ := items.CropGrowTime(items.Cabbage)
	growFor(p, grow/2)
	require.True(t, onlyPlot(p).Ready(), "fertilizer doubles growth")

	got, ok := p.HarvestPlot(rand.New(rand.NewSource(2)))
	require.True(t, ok)
	assert.Equal(t, 2, got.Qty)
}

func TestGrowthStopsWithoutWater(t *testing.T) {
	p := farmer(t)
	p.Inv.Add(items.VeggieSeed, 1)
	require.True(t, p.PlantSeed(items.Potato))
	pl := onlyPlot(p)
	pl.Water = 0

	p.GrowPlots(30)
	assert.Zero(t, pl.Stage)

	pl.Water = 1
	prev := 0.0
	for i := 0; i < 50; i++ {
		p.GrowPlots(1)
		assert.GreaterOrEqual(t, pl.Stage, prev, "growth is monotonic")
		prev = pl.Stage
	}
	assert.InDelta(t, 1-WaterDrain*50, pl.Water, 1e-9)
}

func TestPlantNeedsSeedAndEmptyPlot(t *testing.T) {
	p := farmer(t)
	assert.False(t, p.PlantSeed(items.Carrot), "no seed")

	p.Inv.Add(items.VeggieSeed, 2)
	assert.False(t, p.PlantSeed(items.Wood), "not a crop")
	require.True(t, p.PlantSeed(items.Carrot))
	assert.False(t, p.PlantSeed(items.Carrot), "plot occupied")
	assert.Equal(t, 1, p.Inv.Count(items.VeggieSeed))
}

func TestPlotOutOfReach(t *testing.T) {
	p := farmer(t)
	p.Inv.Add(items.VeggieSeed, 1)
	p.Inv.Add(items.WateringCan, 1)
	p.Pos.X += 3 * world.TileSize

	assert.False(t, p.PlantSeed(items.Carrot))
	assert.Zero(t, p.WaterPlots())
}

func TestWaterNeedsCanAndCaps(t *testing.T) {
	p := farmer(t)
	assert.Zero(t, p.WaterPlots())

	p.Inv.Add(items.WateringCan, 1)
	p.WaterPlots()
	p.WaterPlots()
	assert.Equal(t, 100.0, onlyPlot(p).Water)
	assert.Equal(t, 1, p.Inv.Count(items.WateringCan), "the can is a tool")
}

func TestFarmActionSequence(t *testing.T) {
	p := farmer(t)
	p.Inv.Add(items.VeggieSeed, 3)
	rng := rand.New(rand.NewSource(5))

	out, st := p.FarmAction(rng)
	assert.Equal(t, FarmPlanted, out)
	assert.Equal(t, items.Carrot, st.ID)

	growFor(p, 40)
	out, st = p.FarmAction(rng)
	assert.Equal(t, FarmHarvested, out)
	assert.Equal(t, items.Carrot, st.ID)

	out, st = p.FarmAction(rng)
	assert.Equal(t, FarmPlanted, out)
	assert.Equal(t, items.Potato, st.ID, "rotation advances")
}
