// Package world holds the tile grid, the sparse harvestable-object map and
// the sparse ground-drop map of one generated stage.
package world

import (
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/noise"
)

// Grid dimensions and the world-unit edge length of one tile.
const (
	W        = 96
	H        = 72
	TileSize = 40.0
)

// Cell addresses one grid tile.
type Cell struct {
	X, Y int
}

// Neighbors4 returns c and its four orthogonal neighbours.
func (c Cell) Neighbors4() [5]Cell {
	return [5]Cell{c, {c.X + 1, c.Y}, {c.X - 1, c.Y}, {c.X, c.Y + 1}, {c.X, c.Y - 1}}
}

// Center returns the world position of the cell center.
func (c Cell) Center() core.Vec {
	return core.Vec{X: (float64(c.X) + 0.5) * TileSize, Y: (float64(c.Y) + 0.5) * TileSize}
}

// CellAt returns the cell containing a world position.
func CellAt(p core.Vec) Cell {
	return Cell{int(math.Floor(p.X / TileSize)), int(math.Floor(p.Y / TileSize))}
}

// Grid is one generated world. It is owned by a single simulation goroutine.
type Grid struct {
	seed    int64
	tiles   [H][W]Tile
	objects map[Cell]*Object
	drops   map[Cell][]items.Stack
	rng     *rand.Rand
}

// Generate builds the world for seed. Identical seeds give identical tiles
// and identical initial objects.
func Generate(seed int64) *Grid {
	g := &Grid{
		seed:    seed,
		objects: make(map[Cell]*Object),
		drops:   make(map[Cell][]items.Stack),
	}

	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			g.tiles[y][x] = classify(float64(x), float64(y), seed)
		}
	}

	placer := rand.New(rand.NewSource(seed))
	for y := 1; y < H-1; y++ {
		for x := 1; x < W-1; x++ {
			if obj, ok := rollObject(g.tiles[y][x], placer); ok {
				g.objects[Cell{x, y}] = obj
			}
		}
	}

	// Drop rolls use their own stream so harvesting order never perturbs placement.
	g.rng = rand.New(rand.NewSource(seed ^ 0x5eed))
	return g
}

func classify(x, y float64, seed int64) Tile {
	h := noise.Octaves(x, y, seed, []float64{14, 6, 3}, []float64{0.5, 0.3, 0.2})
	w := noise.Value(x, y, seed+7, 12)
	switch {
	case w > 0.75:
		return DeepWater
	case w > 0.62:
		return Water
	case h < -0.35:
		return Mud
	case h > 0.52:
		return Rock
	case math.Abs(noise.Value(x, y, seed+4, 7)) > 0.58:
		return Sand
	default:
		return Grass
	}
}

// rollObject draws one uniform value and maps it onto cumulative bands.
func rollObject(t Tile, rng *rand.Rand) (*Object, bool) {
	r := rng.Float64()
	switch t {
	case Grass:
		switch {
		case r < 0.065:
			return &Object{Kind: Tree, HP: 5, Stage: 2 + rng.Intn(3)}, true
		case r < 0.095:
			return &Object{Kind: Bush, HP: 2}, true
		case r < 0.110:
			return &Object{Kind: Mushroom, HP: 1}, true
		case r < 0.115:
			return &Object{Kind: Flower, HP: 1}, true
		}
	case Rock:
		if r < 0.22 {
			return &Object{Kind: Ore, HP: 6, Stage: 1 + rng.Intn(3)}, true
		}
	case Mud:
		if r < 0.06 {
			return &Object{Kind: Reed, HP: 1}, true
		}
	case Sand:
		if r < 0.03 {
			return &Object{Kind: Cactus, HP: 2}, true
		}
	}
	return nil, false
}

// Seed returns the generation seed.
func (g *Grid) Seed() int64 {
	return g.seed
}

// InBounds reports whether (tx, ty) lies on the grid.
func InBounds(tx, ty int) bool {
	return tx >= 0 && tx < W && ty >= 0 && ty < H
}

// Tile returns the terrain at (tx, ty); out-of-bounds cells read as DeepWater.
func (g *Grid) Tile(tx, ty int) Tile {
	if !InBounds(tx, ty) {
		return DeepWater
	}
	return g.tiles[ty][tx]
}

// TileAt returns the terrain under a world position.
func (g *Grid) TileAt(p core.Vec) Tile {
	c := CellAt(p)
	return g.Tile(c.X, c.Y)
}

// Walkable reports whether an entity may stand on (tx, ty).
func (g *Grid) Walkable(tx, ty int) bool {
	if !InBounds(tx, ty) {
		return false
	}
	if g.tiles[ty][tx].IsWater() {
		return false
	}
	if obj, ok := g.objects[Cell{tx, ty}]; ok && obj.Kind.Blocking() {
		return false
	}
	return true
}

// WalkableAt reports whether the cell under a world position is walkable.
func (g *Grid) WalkableAt(p core.Vec) bool {
	c := CellAt(p)
	return g.Walkable(c.X, c.Y)
}

// Object returns a copy of the object at c.
func (g *Grid) Object(c Cell) (Object, bool) {
	obj, ok := g.objects[c]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Objects returns a copy of the whole object map.
func (g *Grid) Objects() map[Cell]Object {
	out := make(map[Cell]Object, len(g.objects))
	for c, o := range g.objects {
		out[c] = *o
	}
	return out
}

// ObjectCount returns how many objects remain.
func (g *Grid) ObjectCount() int {
	return len(g.objects)
}

// Hit applies power to the object at (tx, ty). When its hit points reach zero
// the object is removed and its randomized drops are returned; otherwise the
// result is empty.
func (g *Grid) Hit(tx, ty, power int) []items.Stack {
	c := Cell{tx, ty}
	obj, ok := g.objects[c]
	if !ok || power <= 0 {
		return nil
	}
	obj.HP -= power
	if obj.HP > 0 {
		return nil
	}
	delete(g.objects, c)
	return g.rollDrops(obj.Kind)
}

func (g *Grid) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Grid) rollDrops(k ObjectKind) []items.Stack {
	var out []items.Stack
	switch k {
	case Tree:
		out = append(out,
			items.Stack{ID: items.Wood, Qty: g.between(3, 6)},
			items.Stack{ID: items.Leaf, Qty: g.between(2, 4)})
		if g.rng.Float64() < 0.35 {
			out = append(out, items.Stack{ID: items.Fruit, Qty: 1})
		}
		if g.rng.Float64() < 0.15 {
			out = append(out, items.Stack{ID: items.Seed, Qty: 1})
		}
	case Ore:
		out = append(out, items.Stack{ID: items.Stone, Qty: g.between(3, 6)})
		if g.rng.Float64() < 0.30 {
			out = append(out, items.Stack{ID: items.Iron, Qty: g.between(1, 2)})
		}
	case Bush:
		out = append(out,
			items.Stack{ID: items.Berry, Qty: g.between(2, 4)},
			items.Stack{ID: items.Leaf, Qty: 1})
	case Mushroom:
		out = append(out, items.Stack{ID: items.Mushroom, Qty: 1})
	case Reed:
		out = append(out, items.Stack{ID: items.Reed, Qty: g.between(1, 3)})
	case Cactus:
		out = append(out, items.Stack{ID: items.Fiber, Qty: 2})
	case Flower:
		out = append(out, items.Stack{ID: items.Herb, Qty: 1})
	}
	return out
}

// AddDrop merges s into the stacks lying at c.
func (g *Grid) AddDrop(c Cell, s items.Stack) {
	if s.Qty <= 0 || !s.ID.Valid() {
		return
	}
	stacks := g.drops[c]
	for i := range stacks {
		if stacks[i].ID == s.ID {
			stacks[i].Qty += s.Qty
			return
		}
	}
	g.drops[c] = append(stacks, s)
}

// PopDrops removes and returns every stack at c.
func (g *Grid) PopDrops(c Cell) []items.Stack {
	stacks, ok := g.drops[c]
	if !ok {
		return nil
	}
	delete(g.drops, c)
	return stacks
}

// Drops returns a copy of the drop map.
func (g *Grid) Drops() map[Cell][]items.Stack {
	out := make(map[Cell][]items.Stack, len(g.drops))
	for c, s := range g.drops {
		out[c] = append([]items.Stack(nil), s...)
	}
	return out
}

// DropsAt returns a copy of the stacks at c.
func (g *Grid) DropsAt(c Cell) []items.Stack {
	return append([]items.Stack(nil), g.drops[c]...)
}

// SpawnPoint searches square rings outward from the grid center for the first
// walkable cell. The search is bounded by the grid diagonal; if nothing is
// walkable the center itself is returned.
func (g *Grid) SpawnPoint() core.Vec {
	cx, cy := W/2, H/2
	limit := int(math.Ceil(math.Hypot(W, H)))
	for r := 0; r <= limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if core.Abs(dx) != r && core.Abs(dy) != r {
					continue
				}
				if g.Walkable(cx+dx, cy+dy) {
					return Cell{cx + dx, cy + dy}.Center()
				}
			}
		}
	}
	return Cell{cx, cy}.Center()
}

// Map renders the whole grid as text, one rune per cell.
func (g *Grid) Map() string {
	var sb strings.Builder
	sb.Grow((W + 1) * H * 2)
	for y := 0; y < H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < W; x++ {
			if obj, ok := g.objects[Cell{x, y}]; ok {
				sb.WriteRune(obj.Kind.Glyph())
				continue
			}
			sb.WriteRune(g.tiles[y][x].Glyph())
		}
	}
	return sb.String()
}

// NewEmpty returns an all-grass grid without objects. Scenario builders and
// tests compose worlds from it with SetTile and PutObject.
func NewEmpty(seed int64) *Grid {
	return &Grid{
		seed:    seed,
		objects: make(map[Cell]*Object),
		drops:   make(map[Cell][]items.Stack),
		rng:     rand.New(rand.NewSource(seed ^ 0x5eed)),
	}
}

// SetTile overwrites the terrain of an in-bounds cell.
func (g *Grid) SetTile(c Cell, t Tile) {
	if InBounds(c.X, c.Y) {
		g.tiles[c.Y][c.X] = t
	}
}

// PutObject places obj at c, replacing any existing object.
func (g *Grid) PutObject(c Cell, obj Object) {
	if !InBounds(c.X, c.Y) || obj.HP <= 0 {
		return
	}
	o := obj
	g.objects[c] = &o
}
