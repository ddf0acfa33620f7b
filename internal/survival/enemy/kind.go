package enemy

import (
	"fmt"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// Kind identifies an enemy species.
type Kind uint8

const (
	Wolf Kind = iota
	Boar
	Bear
	Snake
	Bandit
	Demon
	kindCount
)

// Template is the static stat block of a kind before difficulty scaling.
type Template struct {
	Name  string
	HP    int
	Atk   int
	Speed float64 // world units per 1/60 s
	Size  float64
	XP    int
	Glyph rune
	Color core.Color
	Drops []items.Stack
}

var templates = [kindCount]Template{
	Wolf:   {"Wolf", 35, 9, 2.4, 20, 28, 'w', core.ColorGray, []items.Stack{{ID: items.Meat, Qty: 1}}},
	Boar:   {"Boar", 50, 13, 1.9, 25, 38, 'b', core.ColorBrown, []items.Stack{{ID: items.Meat, Qty: 2}}},
	Bear:   {"Bear", 100, 22, 1.6, 32, 70, 'B', core.ColorOrange, []items.Stack{{ID: items.Meat, Qty: 3}, {ID: items.Leather, Qty: 1}}},
	Snake:  {"Snake", 18, 16, 2.8, 14, 22, 's', core.ColorBrightGreen, nil},
	Bandit: {"Bandit", 60, 16, 2.0, 22, 50, 'X', core.ColorBrightRed, []items.Stack{{ID: items.Iron, Qty: 1}}},
	Demon:  {"Demon", 140, 28, 1.9, 30, 110, 'D', core.ColorBrightMagenta, []items.Stack{{ID: items.Iron, Qty: 2}}},
}

var kindKeys = [kindCount]string{"wolf", "boar", "bear", "snake", "bandit", "demon"}

// Template returns the kind's stat block.
func (k Kind) Template() Template {
	if k >= kindCount {
		return Template{Name: "Unknown", Glyph: '?'}
	}
	return templates[k]
}

// Key returns the snake_case identifier used in config.
func (k Kind) Key() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindKeys[k]
}

// String returns the display name.
func (k Kind) String() string {
	return k.Template().Name
}

// ParseKind resolves a config key into a Kind.
func ParseKind(key string) (Kind, error) {
	for k, s := range kindKeys {
		if s == key {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("enemy: unknown kind %q", key)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
