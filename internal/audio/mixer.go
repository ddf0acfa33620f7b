package audio

import "math"

// Sink receives effect cues from the simulation. Play never blocks.
type Sink interface {
	Play(Effect)
}

// NopSink discards every cue.
type NopSink struct{}

func (NopSink) Play(Effect) {}

// Default mixer levels.
const (
	DefaultSFXVolume = 0.65
	DefaultBGMVolume = 0.40
	maxVoices        = 16
)

type voice struct {
	effect Effect
	pcm    []int16
	pos    int
}

// Mixer is a software mixer over a Bank: effect voices on top of the looping
// ambient bed. It implements Sink.
type Mixer struct {
	bank *Bank

	sfxVolume float64
	bgmVolume float64
	sfxOn     bool
	bgmOn     bool

	voices  []voice
	loopPos int
	last    Effect
	played  int
}

// NewMixer creates a mixer at default levels with both channels enabled.
func NewMixer(bank *Bank) *Mixer {
	if bank == nil {
		bank = NewBank()
	}
	return &Mixer{
		bank:      bank,
		sfxVolume: DefaultSFXVolume,
		bgmVolume: DefaultBGMVolume,
		sfxOn:     true,
		bgmOn:     true,
	}
}

// Play queues an effect. An effect that is already sounding is dropped unless
// it interrupts; silent effects and a muted channel are ignored.
func (m *Mixer) Play(e Effect) {
	if !m.sfxOn {
		return
	}
	pcm := m.bank.Effect(e)
	if len(pcm) == 0 {
		return
	}
	if !e.Interrupts() && m.playing(e) {
		return
	}
	if len(m.voices) >= maxVoices {
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, voice{effect: e, pcm: pcm})
	m.last = e
	m.played++
}

func (m *Mixer) playing(e Effect) bool {
	for _, v := range m.voices {
		if v.effect == e {
			return true
		}
	}
	return false
}

// Active returns the number of sounding voices.
func (m *Mixer) Active() int {
	return len(m.voices)
}

// Last returns the most recently started effect and how many have started.
func (m *Mixer) Last() (Effect, int) {
	return m.last, m.played
}

// SetSFXVolume sets the effect level, clamped to [0,1].
func (m *Mixer) SetSFXVolume(v float64) {
	m.sfxVolume = math.Max(0, math.Min(1, v))
}

// SetBGMVolume sets the ambient level, clamped to [0,1].
func (m *Mixer) SetBGMVolume(v float64) {
	m.bgmVolume = math.Max(0, math.Min(1, v))
}

// ToggleSFX mutes or unmutes effects and returns the new state.
func (m *Mixer) ToggleSFX() bool {
	m.sfxOn = !m.sfxOn
	if !m.sfxOn {
		m.voices = m.voices[:0]
	}
	return m.sfxOn
}

// ToggleBGM mutes or unmutes the ambient loop and returns the new state.
func (m *Mixer) ToggleBGM() bool {
	m.bgmOn = !m.bgmOn
	return m.bgmOn
}

// Levels reports the current volumes and channel states.
func (m *Mixer) Levels() (sfx, bgm float64, sfxOn, bgmOn bool) {
	return m.sfxVolume, m.bgmVolume, m.sfxOn, m.bgmOn
}

// Mix fills out with the next samples of the combined stream and retires
// finished voices.
func (m *Mixer) Mix(out []int16) {
	loop := m.bank.Loop()
	for i := range out {
		var acc float64
		if m.bgmOn && len(loop) > 0 {
			acc += float64(loop[m.loopPos]) * m.bgmVolume
			m.loopPos = (m.loopPos + 1) % len(loop)
		}
		for j := range m.voices {
			v := &m.voices[j]
			if v.pos < len(v.pcm) {
				acc += float64(v.pcm[v.pos]) * m.sfxVolume
				v.pos++
			}
		}
		out[i] = int16(math.Max(-full, math.Min(full, acc)))
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		if v.pos < len(v.pcm) {
			live = append(live, v)
		}
	}
	m.voices = live
}
