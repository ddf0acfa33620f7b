// Package audio synthesizes the game's sound effects and ambient loop and
// mixes them for playback.
package audio

import "fmt"

// SampleRate is the rate of every generated buffer, in Hz.
const SampleRate = 22050

// Effect names one synthesized sound.
type Effect uint8

const (
	StepGrass Effect = iota
	StepDirt
	StepStone
	StepWood
	Hit
	Swing
	Pickup
	Craft
	LevelUp
	Death
	Click
	Eat
	Drink
	effectCount
)

var effectKeys = [effectCount]string{
	"step_grass", "step_dirt", "step_stone", "step_wood",
	"hit", "swing", "pickup", "craft", "levelup", "death", "click", "eat", "drink",
}

// Key returns the stable name used for files and logs.
func (e Effect) Key() string {
	if e >= effectCount {
		return fmt.Sprintf("effect(%d)", e)
	}
	return effectKeys[e]
}

func (e Effect) String() string { return e.Key() }

// Interrupts reports whether the effect restarts even while already playing.
// Ambient effects such as footsteps are dropped instead.
func (e Effect) Interrupts() bool {
	switch e {
	case Swing, LevelUp, Craft, Pickup, Click, Death:
		return true
	}
	return false
}

// ParseEffect resolves a key produced by Key.
func ParseEffect(key string) (Effect, error) {
	for i, k := range effectKeys {
		if k == key {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("audio: unknown effect %q", key)
}

// Effects lists every effect in declaration order.
func Effects() []Effect {
	out := make([]Effect, effectCount)
	for i := range out {
		out[i] = Effect(i)
	}
	return out
}
