// Package savegame converts a run to and from its persisted JSON record.
//
// Terrain is never stored: a record keeps the world seed and loading
// regenerates the grid from it. Records are wrapped in an envelope carrying
// an xxhash64 checksum of the payload.
package savegame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
)

// Version is written into every record.
const Version = 1

// ErrChecksum is returned when a payload does not match its checksum.
var ErrChecksum = errors.New("savegame: checksum mismatch")

// Point is a world position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlotRecord is one farm plot keyed by its position.
type PlotRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Crop       string  `json:"crop,omitempty"`
	Stage      float64 `json:"stage"`
	Water      float64 `json:"water"`
	Fertilized bool    `json:"fertilized"`
}

// PlayerRecord is the persisted player snapshot. Item references are stored
// by key so unknown items can be skipped on load.
type PlayerRecord struct {
	Name         string             `json:"name"`
	Color        int                `json:"color"`
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	HP           float64            `json:"hp"`
	MaxHP        float64            `json:"maxHp"`
	Hunger       float64            `json:"hunger"`
	Thirst       float64            `json:"thirst"`
	Stamina      float64            `json:"stamina"`
	Level        int                `json:"level"`
	XP           int                `json:"xp"`
	XPNext       int                `json:"xpNext"`
	Weapon       string             `json:"weapon"`
	Armor        int                `json:"armor"`
	PoisonStacks int                `json:"poisonStacks"`
	Inventory    map[string]int     `json:"inventory"`
	Structures   map[string][]Point `json:"structures"`
	Plots        []PlotRecord       `json:"plots"`
	GameTime     float64            `json:"gameTime"`
	Day          int                `json:"day"`
	Survived     int                `json:"survived"`
	Kills        int                `json:"kills"`
	Crafted      int                `json:"crafted"`
}

// Record is a complete save.
type Record struct {
	Version    int               `json:"version"`
	SavedAt    time.Time         `json:"savedAt"`
	BaseSeed   int64             `json:"baseSeed"`
	WorldSeed  int64             `json:"worldSeed"`
	Difficulty string            `json:"difficulty"`
	StageID    int               `json:"stageId"`
	Missions   map[string]int    `json:"missions"`
	Cleared    bool              `json:"cleared"`
	Player     PlayerRecord      `json:"player"`
	Progress   campaign.Progress `json:"progress"`
}

// Default returns the record that missing fields fall back to.
func Default() Record {
	return Record{
		Version:    Version,
		Difficulty: "normal",
		StageID:    1,
		Player: PlayerRecord{
			Name:    "Survivor",
			HP:      100,
			MaxHP:   100,
			Hunger:  100,
			Thirst:  100,
			Stamina: 100,
			Level:   1,
			XPNext:  100,
			Weapon:  items.Fists.Key(),
			Day:     1,
		},
		Progress: campaign.Progress{CurrentStageID: 1},
	}
}

type envelope struct {
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Encode marshals a record into its checksummed envelope.
func Encode(r Record) ([]byte, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("savegame: encode: %w", err)
	}
	sum, err := checksum(payload)
	if err != nil {
		return nil, fmt.Errorf("savegame: encode: %w", err)
	}
	data, err := json.Marshal(envelope{Checksum: sum, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("savegame: encode envelope: %w", err)
	}
	return data, nil
}

// Decode verifies and unmarshals an envelope. Fields missing from the payload
// keep the values of Default; unknown fields are ignored.
func Decode(data []byte) (Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Record{}, fmt.Errorf("savegame: decode envelope: %w", err)
	}
	if len(env.Payload) == 0 {
		return Record{}, fmt.Errorf("savegame: empty payload")
	}
	sum, err := checksum(env.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("savegame: decode payload: %w", err)
	}
	if env.Checksum != sum {
		return Record{}, ErrChecksum
	}
	r := Default()
	if err := json.Unmarshal(env.Payload, &r); err != nil {
		return Record{}, fmt.Errorf("savegame: decode payload: %w", err)
	}
	if r.Player.MaxHP <= 0 {
		r.Player.MaxHP = 100
	}
	if r.Player.Level < 1 {
		r.Player.Level = 1
	}
	if r.Player.XPNext <= 0 {
		r.Player.XPNext = 100
	}
	return r, nil
}

// checksum hashes the compact form of payload so reformatting a save does
// not invalidate it.
func checksum(payload []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(buf.Bytes()), 16), nil
}

// FromPlayer captures a player.
func FromPlayer(p *player.Player) PlayerRecord {
	r := PlayerRecord{
		Name:         p.Name,
		Color:        int(p.Color),
		X:            p.Pos.X,
		Y:            p.Pos.Y,
		HP:           p.HP,
		MaxHP:        p.MaxHP,
		Hunger:       p.Hunger,
		Thirst:       p.Thirst,
		Stamina:      p.Stamina,
		Level:        p.Level,
		XP:           p.XP,
		XPNext:       p.XPNext,
		Weapon:       p.Weapon.Key(),
		Armor:        p.Armor,
		PoisonStacks: p.PoisonStacks,
		Inventory:    make(map[string]int, len(p.Inv)),
		Structures:   make(map[string][]Point, len(p.Structures)),
		GameTime:     p.GameTime,
		Day:          p.Day,
		Survived:     p.Survived,
		Kills:        p.Kills,
		Crafted:      p.Crafted,
	}
	for _, s := range p.Inv.Stacks() {
		r.Inventory[s.ID.Key()] = s.Qty
	}
	for kind, list := range p.Structures {
		if len(list) == 0 {
			continue
		}
		pts := make([]Point, len(list))
		for i, v := range list {
			pts[i] = Point{X: v.X, Y: v.Y}
		}
		r.Structures[kind.Key()] = pts
	}
	for _, pos := range p.PlotPositions() {
		pl := p.Plots[pos]
		pr := PlotRecord{X: pos.X, Y: pos.Y, Stage: pl.Stage, Water: pl.Water, Fertilized: pl.Fertilized}
		if pl.Crop != items.None {
			pr.Crop = pl.Crop.Key()
		}
		r.Plots = append(r.Plots, pr)
	}
	return r
}

// Player rebuilds a player. Unknown item keys are dropped and the returned
// slice names them.
func (r PlayerRecord) Player() (*player.Player, []string) {
	var skipped []string
	p := player.New(r.Name, core.Color(r.Color), core.Vec{X: r.X, Y: r.Y}, r.HP, items.Fists)
	p.MaxHP = r.MaxHP
	p.HP = core.ClampF(r.HP, 0, r.MaxHP)
	p.Hunger = core.ClampF(r.Hunger, 0, 100)
	p.Thirst = core.ClampF(r.Thirst, 0, 100)
	p.Stamina = core.ClampF(r.Stamina, 0, 100)
	p.Level = r.Level
	p.XP = r.XP
	p.XPNext = r.XPNext
	p.Armor = r.Armor
	p.PoisonStacks = r.PoisonStacks
	p.GameTime = r.GameTime
	p.Day = max(1, r.Day)
	p.Survived = r.Survived
	p.Kills = r.Kills
	p.Crafted = r.Crafted

	for key, qty := range r.Inventory {
		id, err := items.Parse(key)
		if err != nil {
			skipped = append(skipped, key)
			continue
		}
		p.Inv.Add(id, qty)
	}
	if w, err := items.Parse(r.Weapon); err == nil && items.IsWeapon(w) {
		p.Weapon = w
	} else if r.Weapon != "" {
		skipped = append(skipped, r.Weapon)
	}
	for key, pts := range r.Structures {
		id, err := items.Parse(key)
		if err != nil || !items.IsStructure(id) {
			skipped = append(skipped, key)
			continue
		}
		for _, pt := range pts {
			p.Structures[id] = append(p.Structures[id], core.Vec{X: pt.X, Y: pt.Y})
		}
	}
	for _, pr := range r.Plots {
		pl := &player.Plot{Stage: pr.Stage, Water: core.ClampF(pr.Water, 0, 100), Fertilized: pr.Fertilized}
		if pr.Crop != "" {
			id, err := items.Parse(pr.Crop)
			if err != nil {
				skipped = append(skipped, pr.Crop)
			} else {
				pl.Crop = id
			}
		}
		p.Plots[core.Vec{X: pr.X, Y: pr.Y}] = pl
	}
	return p, skipped
}
