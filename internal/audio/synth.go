package audio

import (
	"fmt"
	"math"
	"math/rand"
)

const full = 32767

// Surface parameters of the heel and toe footstep model.
type surface struct {
	heel, toe, texture float64
	rustle             bool
	seed               int64
}

var surfaces = map[Effect]surface{
	StepGrass: {heel: 120, toe: 380, texture: 0.18, rustle: true, seed: 0x1a31},
	StepDirt:  {heel: 95, toe: 320, texture: 0.14, rustle: true, seed: 0x2b47},
	StepStone: {heel: 180, toe: 600, texture: 0.08, seed: 0x3c59},
	StepWood:  {heel: 140, toe: 520, texture: 0.12, seed: 0x4d6b},
}

var stepVolume = map[Effect]float64{
	StepGrass: 0.30,
	StepDirt:  0.28,
	StepStone: 0.26,
	StepWood:  0.30,
}

func samples(dur float64) int {
	return int(SampleRate * dur)
}

func sine(freq, dur, vol float64) []float64 {
	n := samples(dur)
	out := make([]float64, n)
	for i := range out {
		env := math.Max(0, 1-math.Pow(float64(i)/float64(n), 0.5))
		out[i] = vol * full * math.Sin(2*math.Pi*freq*float64(i)/SampleRate) * env
	}
	return out
}

func noise(dur, vol float64) []float64 {
	rng := rand.New(rand.NewSource(42))
	n := samples(dur)
	out := make([]float64, n)
	for i := range out {
		out[i] = vol * full * uniform(rng, -1, 1) * math.Pow(1-float64(i)/float64(n), 0.3)
	}
	return out
}

func chord(freqs []float64, dur, vol float64) []float64 {
	n := samples(dur)
	out := make([]float64, n)
	for i := range out {
		var sum float64
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * float64(i) / SampleRate)
		}
		out[i] = vol * full / float64(len(freqs)) * sum * (1 - math.Pow(float64(i)/float64(n), 0.4))
	}
	return out
}

// sweep renders a linearly gliding tone; freq(i) is evaluated per sample.
func sweep(dur, vol float64, freq func(i int) float64) []float64 {
	n := samples(dur)
	out := make([]float64, n)
	for i := range out {
		out[i] = vol * full * math.Sin(2*math.Pi*freq(i)*float64(i)/SampleRate) * (1 - float64(i)/float64(n))
	}
	return out
}

func footstep(s surface, vol float64) []float64 {
	n := samples(0.18)
	buf := make([]float64, n)
	rng := rand.New(rand.NewSource(s.seed))

	heel := samples(0.045)
	for i := 0; i < heel && i < n; i++ {
		env := math.Pow(1-float64(i)/float64(heel), 1.8)
		t := float64(i) / SampleRate
		buf[i] += 0.55 * math.Sin(2*math.Pi*s.heel*t) * env
		buf[i] += 0.25 * math.Sin(2*math.Pi*s.heel*0.5*t) * env
	}

	toeStart, toe := samples(0.05), samples(0.03)
	for i := 0; i < toe && toeStart+i < n; i++ {
		env := math.Pow(1-float64(i)/float64(toe), 2.2)
		buf[toeStart+i] += 0.30 * math.Sin(2*math.Pi*s.toe*float64(i)/SampleRate) * env
	}

	tex := samples(0.12)
	for i := 0; i < tex && i < n; i++ {
		buf[i] += s.texture * uniform(rng, -1, 1) * math.Pow(1-float64(i)/float64(tex), 0.6)
	}

	if s.rustle {
		rl := samples(0.10)
		for i := 0; i < rl && i < n; i++ {
			buf[i] += 0.10 * uniform(rng, -1, 1) * math.Sqrt(math.Sin(math.Pi*float64(i)/float64(rl)))
		}
	}

	peak := peakOf(buf)
	for i := range buf {
		buf[i] = buf[i] / peak * vol * full
	}
	return buf
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func peakOf(buf []float64) float64 {
	var m float64
	for _, v := range buf {
		m = math.Max(m, math.Abs(v))
	}
	if m == 0 {
		return 1
	}
	return m
}

// toPCM clamps float samples to signed 16-bit.
func toPCM(buf []float64) []int16 {
	out := make([]int16, len(buf))
	for i, v := range buf {
		out[i] = int16(math.Max(-full, math.Min(full, math.Trunc(v))))
	}
	return out
}

// Synthesize renders one effect. The result is identical on every call.
func Synthesize(e Effect) ([]int16, error) {
	var buf []float64
	switch e {
	case StepGrass, StepDirt, StepStone, StepWood:
		buf = footstep(surfaces[e], stepVolume[e])
	case Hit:
		buf = noise(0.15, 0.45)
	case Swing:
		buf = sweep(0.07, 0.5, func(i int) float64 { return 800 + float64(i)*8 })
	case Pickup:
		buf = sine(880, 0.12, 0.35)
	case Craft:
		buf = chord([]float64{523, 659, 784}, 0.4, 0.3)
	case LevelUp:
		buf = chord([]float64{523, 659, 784, 1047}, 0.5, 0.35)
	case Death:
		buf = sweep(0.8, 0.4, func(i int) float64 { return 300 - float64(i)*0.4 })
	case Click:
		buf = sine(660, 0.06, 0.28)
	case Eat:
		buf = noise(0.1, 0.15)
	case Drink:
		buf = sine(400, 0.18, 0.28)
	default:
		return nil, fmt.Errorf("audio: no recipe for %s", e)
	}
	for _, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("audio: %s: non-finite sample", e)
		}
	}
	return toPCM(buf), nil
}
