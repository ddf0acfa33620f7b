// Package noise implements the deterministic 2D value-noise field used to
// shape terrain. A world seed fully determines every sample.
package noise

import "math"

// Lattice returns the pseudo-random value in [-1, 1] attached to an integer
// lattice point. Arithmetic wraps at 64 bits; only the low 31 bits of the
// final mix are kept.
func Lattice(x, y, seed int64) float64 {
	n := x*1619 + y*31337 + seed*1013
	n = (n >> 13) ^ n
	m := (n*(n*n*15731+789221) + 1376312589) & 0x7fffffff
	return 1 - float64(m)/1073741824
}

// Value samples the field at (x, y) with the given feature scale.
// Corner lattice values are blended bilinearly with smoothstep easing.
func Value(x, y float64, seed int64, scale float64) float64 {
	sx, sy := x/scale, y/scale
	fx0, fy0 := math.Floor(sx), math.Floor(sy)
	ix, iy := int64(fx0), int64(fy0)
	fx := smoothstep(sx - fx0)
	fy := smoothstep(sy - fy0)

	a := Lattice(ix, iy, seed)
	b := Lattice(ix+1, iy, seed)
	c := Lattice(ix, iy+1, seed)
	d := Lattice(ix+1, iy+1, seed)

	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

// Octaves sums Value samples at several scales with the given weights.
// Seeds advance by one per octave.
func Octaves(x, y float64, seed int64, scales, weights []float64) float64 {
	var sum float64
	for i, sc := range scales {
		sum += weights[i] * Value(x, y, seed+int64(i), sc)
	}
	return sum
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}
