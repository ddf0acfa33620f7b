package player

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Farming tuning.
const (
	FarmReach      = 1.5 * world.TileSize
	WaterReach     = 2 * world.TileSize
	WaterPerPour   = 60
	PlantWater     = 50
	WaterDrain     = 0.008 // per second
	BonusSeedOdds  = 0.4
	FertilizerRate = 2
)

// Ready reports whether the plot holds a mature crop.
func (pl *Plot) Ready() bool {
	return pl.Crop != items.None && pl.Stage >= 1
}

// nearestPlot returns the closest plot within reach that satisfies ok.
// Plots are scanned in position order so ties resolve deterministically.
func (p *Player) nearestPlot(reach float64, ok func(*Plot) bool) (*Plot, bool) {
	var best *Plot
	bestD := math.Inf(1)
	for _, pos := range p.PlotPositions() {
		pl := p.Plots[pos]
		if d := core.Dist(p.Pos, pos); d < reach && d < bestD && ok(pl) {
			best, bestD = pl, d
		}
	}
	return best, best != nil
}

// PlotPositions lists plot keys ordered by row then column.
func (p *Player) PlotPositions() []core.Vec {
	out := make([]core.Vec, 0, len(p.Plots))
	for pos := range p.Plots {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return lessVec(out[i], out[j]) })
	return out
}

func lessVec(a, b core.Vec) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// PlantSeed puts a veggie seed of crop into the nearest empty plot.
func (p *Player) PlantSeed(crop items.ID) bool {
	if _, ok := items.CropGrowTime(crop); !ok || !p.Inv.Has(items.VeggieSeed, 1) {
		return false
	}
	pl, ok := p.nearestPlot(FarmReach, func(pl *Plot) bool { return pl.Crop == items.None })
	if !ok {
		return false
	}
	p.Inv.Remove(items.VeggieSeed, 1)
	pl.Crop = crop
	pl.Stage = 0
	pl.Fertilized = false
	pl.Water = math.Max(pl.Water, PlantWater)
	return true
}

// WaterPlots refills every plot within reach. It needs a watering can and
// returns how many plots were watered.
func (p *Player) WaterPlots() int {
	if !p.Inv.Has(items.WateringCan, 1) {
		return 0
	}
	n := 0
	for pos, pl := range p.Plots {
		if core.Dist(p.Pos, pos) < WaterReach {
			pl.Water = math.Min(100, pl.Water+WaterPerPour)
			n++
		}
	}
	return n
}

// ApplyFertilizer doubles the growth rate of the nearest planted plot.
func (p *Player) ApplyFertilizer() bool {
	if !p.Inv.Has(items.Fertilizer, 1) {
		return false
	}
	pl, ok := p.nearestPlot(FarmReach, func(pl *Plot) bool { return pl.Crop != items.None && !pl.Fertilized })
	if !ok {
		return false
	}
	p.Inv.Remove(items.Fertilizer, 1)
	pl.Fertilized = true
	return true
}

// HarvestPlot collects the nearest mature crop and empties the plot.
func (p *Player) HarvestPlot(rng *rand.Rand) (items.Stack, bool) {
	pl, ok := p.nearestPlot(FarmReach, (*Plot).Ready)
	if !ok {
		return items.Stack{}, false
	}
	got := items.Stack{ID: pl.Crop, Qty: 1}
	if pl.Fertilized {
		got.Qty = 2
	}
	p.Inv.Add(got.ID, got.Qty)
	if rng.Float64() < BonusSeedOdds {
		p.Inv.Add(items.VeggieSeed, 1)
	}
	pl.Crop = items.None
	pl.Stage = 0
	pl.Fertilized = false
	return got, true
}

// GrowPlots advances every plot by dt seconds. Crops grow only while watered;
// water drains whenever any is left.
func (p *Player) GrowPlots(dt float64) {
	for _, pl := range p.Plots {
		if pl.Water <= 0 {
			continue
		}
		if grow, ok := items.CropGrowTime(pl.Crop); ok && pl.Stage < 1 {
			rate := dt / grow
			if pl.Fertilized {
				rate *= FertilizerRate
			}
			pl.Stage = math.Min(1, pl.Stage+rate)
		}
		pl.Water = math.Max(0, pl.Water-WaterDrain*dt)
	}
}

// FarmOutcome is the step the farm action performed.
type FarmOutcome int

const (
	FarmNothing FarmOutcome = iota
	FarmHarvested
	FarmWatered
	FarmFertilized
	FarmPlanted
)

// FarmAction performs the most useful farming step in reach: harvest, then
// water thirsty plots, then fertilize, then plant the next crop in rotation.
func (p *Player) FarmAction(rng *rand.Rand) (FarmOutcome, items.Stack) {
	if got, ok := p.HarvestPlot(rng); ok {
		return FarmHarvested, got
	}
	if _, thirsty := p.nearestPlot(WaterReach, func(pl *Plot) bool { return pl.Water < 50 }); thirsty && p.WaterPlots() > 0 {
		return FarmWatered, items.Stack{}
	}
	if p.ApplyFertilizer() {
		return FarmFertilized, items.Stack{}
	}
	crop := items.CropRotation[p.nextCrop%len(items.CropRotation)]
	if p.PlantSeed(crop) {
		p.nextCrop++
		return FarmPlanted, items.Stack{ID: crop}
	}
	return FarmNothing, items.Stack{}
}
