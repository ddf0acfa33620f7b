package world

import "github.com/vovakirdan/forest-survival/internal/core"

// Tile is the terrain type of one grid cell.
type Tile uint8

const (
	Grass Tile = iota
	Water
	DeepWater
	Mud
	Rock
	Sand
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case Grass:
		return "grass"
	case Water:
		return "water"
	case DeepWater:
		return "deep_water"
	case Mud:
		return "mud"
	case Rock:
		return "rock"
	case Sand:
		return "sand"
	default:
		return "unknown"
	}
}

// IsWater reports whether the tile blocks movement as water.
func (t Tile) IsWater() bool {
	return t == Water || t == DeepWater
}

// Glyph returns the rune used to draw the tile.
func (t Tile) Glyph() rune {
	switch t {
	case Water:
		return '~'
	case DeepWater:
		return '≈'
	case Mud:
		return ','
	case Rock:
		return '^'
	case Sand:
		return ':'
	default:
		return '.'
	}
}

// Color returns the tile's base color.
func (t Tile) Color() core.Color {
	switch t {
	case Water:
		return core.ColorBrightBlue
	case DeepWater:
		return core.ColorBlue
	case Mud:
		return core.ColorBrown
	case Rock:
		return core.ColorGray
	case Sand:
		return core.ColorSand
	default:
		return core.ColorGreen
	}
}

// ObjectKind is the type of a harvestable world object.
type ObjectKind uint8

const (
	Tree ObjectKind = iota
	Ore
	Bush
	Mushroom
	Reed
	Flower
	Cactus
)

// String returns the object kind name.
func (k ObjectKind) String() string {
	switch k {
	case Tree:
		return "tree"
	case Ore:
		return "ore"
	case Bush:
		return "bush"
	case Mushroom:
		return "mushroom"
	case Reed:
		return "reed"
	case Flower:
		return "flower"
	case Cactus:
		return "cactus"
	default:
		return "unknown"
	}
}

// Blocking reports whether the object prevents walking through its cell.
func (k ObjectKind) Blocking() bool {
	return k == Tree || k == Ore
}

// Glyph returns the rune used to draw the object.
func (k ObjectKind) Glyph() rune {
	switch k {
	case Tree:
		return '♣'
	case Ore:
		return '◆'
	case Bush:
		return '*'
	case Mushroom:
		return '♠'
	case Reed:
		return '|'
	case Flower:
		return '✿'
	case Cactus:
		return '¥'
	default:
		return '?'
	}
}

// Color returns the object's color.
func (k ObjectKind) Color() core.Color {
	switch k {
	case Tree:
		return core.ColorBrightGreen
	case Ore:
		return core.ColorWhite
	case Bush:
		return core.ColorGreen
	case Mushroom:
		return core.ColorRed
	case Reed:
		return core.ColorSand
	case Flower:
		return core.ColorBrightMagenta
	case Cactus:
		return core.ColorDarkGreen
	default:
		return core.ColorDefault
	}
}

// Object is a harvestable entity occupying one cell.
type Object struct {
	Kind  ObjectKind
	HP    int
	Stage int // visual growth stage
}
