package survival

import (
	"math"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// Notification is a transient message in the feed.
type Notification struct {
	Text     string
	TTL      float64
	Duration float64
}

// Fraction returns the remaining share of the notification's lifetime.
func (n Notification) Fraction() float64 {
	if n.Duration <= 0 {
		return 0
	}
	return math.Max(0, n.TTL/n.Duration)
}

func (g *Game) notify(text string) {
	g.notifyFor(text, g.sim.NotifySeconds)
}

// notifyFor appends to the feed. Repeating the newest message refreshes it
// instead; the feed keeps the newest NotifyMax entries.
func (g *Game) notifyFor(text string, seconds float64) {
	if n := len(g.notes); n > 0 && g.notes[n-1].Text == text {
		g.notes[n-1].TTL = seconds
		return
	}
	g.notes = append(g.notes, Notification{Text: text, TTL: seconds, Duration: seconds})
	if limit := max(1, g.sim.NotifyMax); len(g.notes) > limit {
		g.notes = append(g.notes[:0], g.notes[len(g.notes)-limit:]...)
	}
}

func (g *Game) expireNotes(dt float64) {
	live := g.notes[:0]
	for _, n := range g.notes {
		n.TTL -= dt
		if n.TTL > 0 {
			live = append(live, n)
		}
	}
	g.notes = live
}

// Notifications returns a copy of the feed, oldest first.
func (g *Game) Notifications() []Notification {
	return append([]Notification(nil), g.notes...)
}

// warn posts throttled reminders about vitals and nightfall.
func (g *Game) warn() {
	p := g.player
	if p.Hunger < 20 && g.frame%320 == 0 {
		g.notify("You are starving!")
	}
	if p.Thirst < 20 && g.frame%320 == 1 {
		g.notify("You are parched!")
	}
	if t := p.TimeOfDay(); t > 4.8 && t < 5.2 && g.frame%60 == 0 {
		if len(p.Structures[items.Campfire])+len(p.Structures[items.Torch]) == 0 {
			g.notify("Night is coming! Light a fire!")
		} else {
			g.notify("Night is coming. Your fire will keep you safe")
		}
	}
}
