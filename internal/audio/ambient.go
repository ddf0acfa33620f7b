package audio

import (
	"math"
	"math/rand"
	"sort"
)

// Ambient loop parameters.
const (
	AmbientSeconds = 8.0
	ambientSeed    = 777
	ambientPeak    = 0.45
	ambientFade    = 0.3
)

var pentatonic = []float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25, 587.33, 659.25}

// Ambient renders the loopable forest bed: a modulated drone, a pentatonic
// arpeggio, bird chirps and soft percussion, normalized and faded at both
// ends.
func Ambient() []int16 {
	n := samples(AmbientSeconds)
	buf := make([]float64, n)
	rng := rand.New(rand.NewSource(ambientSeed))

	for i := range buf {
		t := float64(i) / SampleRate
		buf[i] += 0.12 * math.Sin(2*math.Pi*55*t) * (0.7 + 0.3*math.Sin(2*math.Pi*0.15*t))
		buf[i] += 0.07 * math.Sin(2*math.Pi*110*t+0.8)
	}

	for k := 0; k < 16; k++ {
		freq := pentatonic[rng.Intn(len(pentatonic))]
		start := samples(float64(k) * AmbientSeconds / 16)
		end := min(n, start+samples(0.55))
		for i := start; i < end; i++ {
			env := math.Sin(math.Pi * float64(i-start) / float64(end-start))
			buf[i] += 0.08 * math.Sin(2*math.Pi*freq*float64(i-start)/SampleRate) * env
		}
	}

	chirps := make([]float64, 10)
	for i := range chirps {
		chirps[i] = uniform(rng, 0, AmbientSeconds)
	}
	sort.Float64s(chirps)
	for _, at := range chirps {
		f0 := uniform(rng, 1800, 3200)
		start, length := samples(at), samples(0.09)
		end := min(n, start+length)
		for i := start; i < end; i++ {
			frac := float64(i-start) / float64(length)
			fq := f0 * (1 + 0.4*frac)
			buf[i] += 0.07 * math.Sin(2*math.Pi*fq*float64(i-start)/SampleRate) * math.Sin(math.Pi*frac)
		}
	}

	for k := 0; k < 18; k++ {
		start := samples(uniform(rng, 0, AmbientSeconds-0.15))
		length := samples(0.12)
		for i := 0; i < length && start+i < n; i++ {
			buf[start+i] += 0.06 * uniform(rng, -1, 1) * math.Pow(1-float64(i)/float64(length), 1.5)
		}
	}

	peak := peakOf(buf)
	for i := range buf {
		buf[i] = buf[i] / peak * ambientPeak
	}
	fade := samples(ambientFade)
	for i := 0; i < fade; i++ {
		g := float64(i) / float64(fade)
		buf[i] *= g
		buf[n-1-i] *= g
	}
	for i := range buf {
		buf[i] *= full
	}
	return toPCM(buf)
}
