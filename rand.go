package grove

import "math/rand/v2"

// Rand is the random source every builder draws from. Passing it explicitly
// keeps generation reproducible under a seed and lets callers generate on
// several goroutines with one Rand each.
type Rand interface {
	// Float returns a uniform value in [min, max).
	Float(min, max float64) float64
	// Int returns a uniform value in [min, max], both ends inclusive.
	Int(min, max int) int
}

// pcgRand adapts a math/rand/v2 generator to Rand.
type pcgRand struct {
	r *rand.Rand
}

// NewRand returns a deterministic Rand. Two Rands built from the same seed
// produce identical trees and forests.
func NewRand(seed uint64) Rand {
	return &pcgRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandUnseeded returns a Rand seeded from the runtime's global generator.
// Every call yields a different sequence.
func NewRandUnseeded() Rand {
	return &pcgRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (p *pcgRand) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + p.r.Float64()*(max-min)
}

func (p *pcgRand) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + p.r.IntN(max-min+1)
}

// pick returns a uniformly chosen element of palette. Palettes are never
// empty at call sites; an empty one yields the zero Color.
func pick(rng Rand, palette []Color) Color {
	if len(palette) == 0 {
		return Color{}
	}
	return palette[rng.Int(0, len(palette)-1)]
}
