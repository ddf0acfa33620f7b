package survival

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

const (
	hudTop  = 2
	hudRows = 5
	// Darkness above which unlit map cells are dimmed.
	dimThreshold = 60
)

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.opts.Runtime.ScreenW || dst.Height() != g.opts.Runtime.ScreenH {
		g.Resize(dst.Width(), dst.Height())
	}
	s := g.Snapshot()
	drawMap(dst, s)
	drawHUD(dst, s)
	drawFeed(dst, s)

	switch {
	case s.Phase == PhaseGameOver:
		drawGameOver(dst, s)
	case s.Overlay == OverlayInventory:
		drawInventory(dst, s, g.player.Inv.Stacks())
	case s.Overlay == OverlayCraft:
		drawCraft(dst, s, g.player.Inv)
	case s.Overlay == OverlayStageClear:
		drawStageClear(dst, s)
	case s.Overlay == OverlayGameClear:
		drawGameClear(dst, s)
	case s.Paused:
		drawPanel(dst, []string{"PAUSED", "", "P resume   Esc resume   Q quit"}, core.ColorBrightWhite)
	case s.Intro > 0:
		drawIntro(dst, s)
	}
}

// screenPos maps a world position to a map cell; tiles are two columns wide.
func screenPos(s Snapshot, pos core.Vec) (int, int) {
	x := int(math.Floor((pos.X/world.TileSize - float64(s.Window.X)) * 2))
	y := int(math.Floor(pos.Y/world.TileSize-float64(s.Window.Y))) + hudTop
	return x, y
}

func litCell(s Snapshot, c world.Cell) bool {
	center := c.Center()
	for _, f := range s.Structures[items.Campfire] {
		if core.Dist(center, f) < 5*world.TileSize {
			return true
		}
	}
	for _, t := range s.Structures[items.Torch] {
		if core.Dist(center, t) < 3*world.TileSize {
			return true
		}
	}
	return false
}

func drawMap(dst *core.Screen, s Snapshot) {
	rows := dst.Height() - hudRows
	dark := s.Darkness > dimThreshold
	shade := func(c world.Cell, col core.Color) core.Color {
		if dark && !litCell(s, c) {
			return col.Dim()
		}
		return col
	}

	for row := 0; row < rows && row < len(s.Tiles); row++ {
		for col, t := range s.Tiles[row] {
			c := world.Cell{X: s.Window.X + col, Y: s.Window.Y + row}
			glyph, color := t.Glyph(), t.Color()
			if o, ok := s.Objects[c]; ok {
				glyph, color = o.Kind.Glyph(), o.Kind.Color()
			} else if d := s.Drops[c]; len(d) > 0 {
				glyph, color = d[0].ID.Glyph(), d[0].ID.Color()
			}
			x, y := col*2, row+hudTop
			dst.SetCell(x, y, glyph, shade(c, color))
			dst.SetCell(x+1, y, t.Glyph(), shade(c, t.Color()))
		}
	}

	for pos, pl := range s.Plots {
		x, y := screenPos(s, pos)
		if y < hudTop || y >= hudTop+rows {
			continue
		}
		r, c := plotGlyph(pl)
		dst.SetCell(x, y, r, c)
	}
	for kind, list := range s.Structures {
		for _, pos := range list {
			x, y := screenPos(s, pos)
			if y < hudTop || y >= hudTop+rows {
				continue
			}
			dst.SetCell(x, y, kind.Glyph(), kind.Color())
		}
	}
	for _, p := range s.Particles {
		x, y := screenPos(s, p.Pos)
		if y < hudTop || y >= hudTop+rows {
			continue
		}
		r := '·'
		if p.Brightness() > 0.6 {
			r = '*'
		}
		dst.SetCell(x, y, r, p.Color)
	}
	for _, e := range s.Enemies {
		x, y := screenPos(s, e.Pos)
		if y < hudTop || y >= hudTop+rows {
			continue
		}
		t := e.Kind.Template()
		color := t.Color
		if e.Flash {
			color = core.ColorBrightWhite
		}
		dst.SetCell(x, y, t.Glyph, color)
	}

	p := s.Player
	x, y := screenPos(s, p.Pos)
	color := p.Color
	if p.Flash {
		color = core.ColorBrightRed
	}
	dst.SetCell(x, y, '@', color)
	if p.Swinging {
		fx, fy := screenPos(s, p.Pos.Add(p.Facing.Scale(world.TileSize*0.6)))
		dst.SetCell(fx, fy, '/', core.ColorBrightWhite)
	}
}

func plotGlyph(pl player.Plot) (rune, core.Color) {
	switch {
	case pl.Crop == items.None:
		return '=', core.ColorBrown
	case pl.Ready():
		return pl.Crop.Glyph(), pl.Crop.Color()
	case pl.Water <= 0:
		return ',', core.ColorYellow
	}
	return ',', core.ColorBrightGreen
}

func drawHUD(dst *core.Screen, s Snapshot) {
	p := s.Player
	phase := "day"
	if s.Night {
		phase = "night"
	}
	top := fmt.Sprintf("%s  Stage %d: %s  Day %d (%s)  Lv.%d %d/%d XP  %s  Kills %d  Score %d",
		p.Name, s.StageID, s.StageName, s.Day, phase, p.Level, p.XP, p.XPNext, p.Weapon, p.Kills, s.Score)
	if p.Armor > 0 {
		top += fmt.Sprintf("  Armor %d", p.Armor)
	}
	if p.PoisonStacks > 0 {
		top += fmt.Sprintf("  Poison %d", p.PoisonStacks)
	}
	if p.Combo >= player.ComboThreshold {
		top += fmt.Sprintf("  Combo x%d", p.Combo)
	}
	dst.DrawTextColor(0, 0, top, core.ColorBrightWhite)

	bars := []struct {
		label string
		value float64
		max   float64
		color core.Color
	}{
		{"HP", p.HP, p.MaxHP, core.ColorBrightRed},
		{"Food", p.Hunger, 100, core.ColorOrange},
		{"Water", p.Thirst, 100, core.ColorBrightBlue},
		{"Stam", p.Stamina, 100, core.ColorBrightGreen},
	}
	segment := max(12, dst.Width()/len(bars))
	for i, b := range bars {
		x := i * segment
		label := fmt.Sprintf("%s %3.0f ", b.label, b.value)
		dst.DrawTextColor(x, 1, label, b.color)
		width := segment - len([]rune(label)) - 1
		if width > 0 && b.max > 0 {
			dst.DrawBar(x+len([]rune(label)), 1, width, b.value/b.max, b.color)
		}
	}
}

func drawFeed(dst *core.Screen, s Snapshot) {
	h := dst.Height()
	notes := s.Notifications
	if len(notes) > 2 {
		notes = notes[len(notes)-2:]
	}
	for i, n := range notes {
		color := core.ColorBrightWhite
		if n.Fraction() < 0.3 {
			color = core.ColorGray
		}
		dst.DrawTextColor(0, h-3+i, n.Text, color)
	}

	var parts []string
	for _, m := range s.Missions {
		mark := " "
		if m.Done {
			mark = "✓"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s %d/%d", mark, m.Name, min(m.Value, m.Goal), m.Goal))
	}
	dst.DrawTextColor(0, h-1, strings.Join(parts, "  "), core.ColorYellow)
}

// drawPanel centers a bordered box of lines on the map area.
func drawPanel(dst *core.Screen, lines []string, color core.Color) core.Rect {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x := max(0, (dst.Width()-w)/2)
	y := max(0, (dst.Height()-h)/2)
	r := core.NewRect(x, y, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColor(r, color)
	for i, l := range lines {
		dst.DrawTextColor(x+2, y+1+i, l, color)
	}
	return r
}

func drawIntro(dst *core.Screen, s Snapshot) {
	dst.DrawTextCenteredColor(hudTop+1, fmt.Sprintf("~ Stage %d: %s ~", s.StageID, s.StageName), core.ColorBrightYellow)
}

func drawInventory(dst *core.Screen, s Snapshot, stacks []items.Stack) {
	lines := []string{"INVENTORY", ""}
	if len(stacks) == 0 {
		lines = append(lines, "  (empty)")
	}
	for i, st := range stacks {
		cursor := "  "
		if i == s.Cursor {
			cursor = "> "
		}
		tag := ""
		if st.ID == s.Player.Weapon {
			tag = " [equipped]"
		}
		lines = append(lines, fmt.Sprintf("%s%c %-14s x%d%s", cursor, st.ID.Glyph(), st.ID, st.Qty, tag))
	}
	lines = append(lines, "", "Enter use   I close")
	drawPanel(dst, lines, core.ColorBrightWhite)
}

func drawCraft(dst *core.Screen, s Snapshot, inv items.Inventory) {
	lines := []string{"CRAFTING", ""}
	visible := max(1, dst.Height()-10)
	start := max(0, min(s.Cursor-visible/2, len(items.Recipes)-visible))
	for i := start; i < len(items.Recipes) && i < start+visible; i++ {
		r := items.Recipes[i]
		cursor := "  "
		if i == s.Cursor {
			cursor = "> "
		}
		var needs []string
		for _, n := range r.Needs {
			needs = append(needs, fmt.Sprintf("%s %d", n.ID, n.Qty))
		}
		ok := " "
		if inv.HasAll(r.Needs) {
			ok = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s%s %-13s x%d  %s", cursor, ok, r.Output, r.Qty, strings.Join(needs, ", ")))
	}
	lines = append(lines, "", "Enter craft   C close")
	drawPanel(dst, lines, core.ColorBrightCyan)
}

func drawStageClear(dst *core.Screen, s Snapshot) {
	lines := []string{fmt.Sprintf("STAGE %d CLEARED: %s", s.StageID, s.StageName), ""}
	for _, m := range s.Missions {
		lines = append(lines, fmt.Sprintf("✓ %s  +%d XP", m.Name, m.RewardXP))
	}
	lines = append(lines, "", "Enter next stage   Esc stage select")
	drawPanel(dst, lines, core.ColorBrightGreen)
}

func drawGameClear(dst *core.Screen, s Snapshot) {
	drawPanel(dst, []string{
		"THE FOREST IS YOURS",
		"",
		fmt.Sprintf("Level %d  Kills %d  Score %d", s.Player.Level, s.Player.Kills, s.Score),
		"",
		"Enter finish",
	}, core.ColorBrightYellow)
}

func drawGameOver(dst *core.Screen, s Snapshot) {
	drawPanel(dst, []string{
		"YOU DIED",
		"",
		fmt.Sprintf("Day %d  Level %d  Kills %d  Score %d", s.Day, s.Player.Level, s.Player.Kills, s.Score),
		"",
		"R retry stage   Q quit",
	}, core.ColorBrightRed)
}
