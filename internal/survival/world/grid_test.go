package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(20240917)
	b := Generate(20240917)

	require.Equal(t, a.tiles, b.tiles, "tile grids must match")
	assert.Equal(t, a.Objects(), b.Objects(), "object placement must match")

	c := Generate(20240918)
	assert.NotEqual(t, a.tiles, c.tiles, "different seeds should differ")
}

func TestObjectsOnlyOnInteriorMatchingTiles(t *testing.T) {
	g := Generate(7)
	require.NotZero(t, g.ObjectCount())
	for c, o := range g.Objects() {
		assert.True(t, c.X >= 1 && c.X <= W-2 && c.Y >= 1 && c.Y <= H-2, "object on border at %v", c)
		tile := g.Tile(c.X, c.Y)
		switch o.Kind {
		case Tree, Bush, Mushroom, Flower:
			assert.Equal(t, Grass, tile)
		case Ore:
			assert.Equal(t, Rock, tile)
			assert.Equal(t, 6, o.HP)
		case Reed:
			assert.Equal(t, Mud, tile)
		case Cactus:
			assert.Equal(t, Sand, tile)
		}
		if o.Kind == Tree {
			assert.Equal(t, 5, o.HP)
			assert.True(t, o.Stage >= 2 && o.Stage <= 4)
		}
	}
}

func TestWalkable(t *testing.T) {
	g := NewEmpty(1)
	g.SetTile(Cell{3, 3}, Water)
	g.SetTile(Cell{4, 3}, DeepWater)
	g.SetTile(Cell{5, 3}, Mud)
	g.SetTile(Cell{6, 3}, Rock)
	g.SetTile(Cell{7, 3}, Sand)
	g.PutObject(Cell{3, 4}, Object{Kind: Tree, HP: 5})
	g.PutObject(Cell{4, 4}, Object{Kind: Ore, HP: 6})
	g.PutObject(Cell{5, 4}, Object{Kind: Bush, HP: 2})
	g.PutObject(Cell{6, 4}, Object{Kind: Reed, HP: 1})

	assert.False(t, g.Walkable(3, 3))
	assert.False(t, g.Walkable(4, 3))
	assert.True(t, g.Walkable(5, 3))
	assert.True(t, g.Walkable(6, 3))
	assert.True(t, g.Walkable(7, 3))
	assert.False(t, g.Walkable(3, 4), "trees block")
	assert.False(t, g.Walkable(4, 4), "ore blocks")
	assert.True(t, g.Walkable(5, 4), "bushes do not block")
	assert.True(t, g.Walkable(6, 4))

	assert.False(t, g.Walkable(-1, 0))
	assert.False(t, g.Walkable(W, 0))
	assert.False(t, g.Walkable(0, H))
}

func TestWalkableOnGeneratedWorld(t *testing.T) {
	g := Generate(99)
	objs := g.Objects()
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			o, has := objs[Cell{x, y}]
			blocked := g.Tile(x, y).IsWater() || (has && o.Kind.Blocking())
			assert.Equal(t, !blocked, g.Walkable(x, y), "cell %d,%d", x, y)
		}
	}
}

func TestHitRemovesExactlyAtZero(t *testing.T) {
	g := Generate(321)
	for c, o := range g.Objects() {
		hits := 0
		for {
			_, present := g.Object(c)
			if !present {
				break
			}
			g.Hit(c.X, c.Y, 1)
			hits++
			cur, still := g.Object(c)
			if hits < o.HP {
				require.True(t, still, "%v removed early after %d hits", o.Kind, hits)
				assert.Equal(t, o.HP-hits, cur.HP)
			} else {
				require.False(t, still, "%v survived %d hits", o.Kind, hits)
			}
		}
		assert.Equal(t, o.HP, hits)
	}
	assert.Zero(t, g.ObjectCount())
}

func TestHitMissingIsEmpty(t *testing.T) {
	g := NewEmpty(1)
	assert.Empty(t, g.Hit(10, 10, 5))
	assert.Empty(t, g.Hit(-3, 500, 5))
}

func TestTreeDropRanges(t *testing.T) {
	g := NewEmpty(5)
	for i := 0; i < 200; i++ {
		c := Cell{1 + i%90, 1 + i/90}
		g.PutObject(c, Object{Kind: Tree, HP: 5})
		assert.Empty(t, g.Hit(c.X, c.Y, 4))
		drops := g.Hit(c.X, c.Y, 1)
		require.NotEmpty(t, drops)

		byID := map[items.ID]int{}
		for _, s := range drops {
			byID[s.ID] += s.Qty
		}
		assert.True(t, byID[items.Wood] >= 3 && byID[items.Wood] <= 6, "wood %d", byID[items.Wood])
		assert.True(t, byID[items.Leaf] >= 2 && byID[items.Leaf] <= 4, "leaf %d", byID[items.Leaf])
		assert.LessOrEqual(t, byID[items.Fruit], 1)
		assert.LessOrEqual(t, byID[items.Seed], 1)
	}
}

func TestDropsMergeAndPop(t *testing.T) {
	g := NewEmpty(1)
	c := Cell{10, 10}
	g.AddDrop(c, items.Stack{ID: items.Wood, Qty: 2})
	g.AddDrop(c, items.Stack{ID: items.Leaf, Qty: 1})
	g.AddDrop(c, items.Stack{ID: items.Wood, Qty: 3})
	g.AddDrop(c, items.Stack{ID: items.Stone, Qty: 0})

	assert.Equal(t, []items.Stack{{ID: items.Wood, Qty: 5}, {ID: items.Leaf, Qty: 1}}, g.DropsAt(c))

	popped := g.PopDrops(c)
	assert.Len(t, popped, 2)
	assert.Empty(t, g.PopDrops(c))
	assert.Empty(t, g.Drops())
}

func TestSpawnPointWalkable(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		g := Generate(seed)
		p := g.SpawnPoint()
		assert.True(t, g.WalkableAt(p), "seed %d", seed)
	}
}

func TestSpawnPointExpandsOutward(t *testing.T) {
	g := NewEmpty(1)
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			g.SetTile(Cell{x, y}, Water)
		}
	}
	g.SetTile(Cell{2, 2}, Grass)
	assert.Equal(t, Cell{2, 2}, CellAt(g.SpawnPoint()))

	g.SetTile(Cell{2, 2}, Water)
	assert.Equal(t, Cell{W / 2, H / 2}, CellAt(g.SpawnPoint()), "falls back to center")
}

func TestMapDimensions(t *testing.T) {
	g := Generate(11)
	lines := 1
	for _, r := range g.Map() {
		if r == '\n' {
			lines++
		}
	}
	assert.Equal(t, H, lines)
}
