// Package effect is the decorative falling-petal simulation. It carries no
// state anyone else depends on; the rest of the system works the same with
// it absent.
package effect

import (
	"math"
	"math/rand"
)

// Particle is one drifting petal. Positions are in viewport units.
type Particle struct {
	X, Y      float64
	Size      float64
	FallSpeed float64

	// Horizontal oscillation around X.
	SwayAmplitude float64
	SwayPhase     float64

	Rotation  float64
	SpinSpeed float64

	// Pseudo-3D flip around the vertical axis.
	Flip      float64
	FlipSpeed float64

	Opacity float64
	Palette int
}

// Field holds a constant population of particles inside a width×height
// viewport. Particles leaving the bottom recycle from above the top.
type Field struct {
	width, height float64
	paletteSize   int
	rng           *rand.Rand
	particles     []Particle
}

func NewField(width, height float64, count, paletteSize int, seed int64) *Field {
	f := &Field{
		width:       width,
		height:      height,
		paletteSize: paletteSize,
		rng:         rand.New(rand.NewSource(seed)),
	}
	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = f.spawn(f.rng.Float64() * height)
	}
	return f
}

func (f *Field) spawn(y float64) Particle {
	return Particle{
		X:             f.rng.Float64() * f.width,
		Y:             y,
		Size:          6 + f.rng.Float64()*8,
		FallSpeed:     20 + f.rng.Float64()*40,
		SwayAmplitude: 10 + f.rng.Float64()*30,
		SwayPhase:     f.rng.Float64() * 2 * math.Pi,
		Rotation:      f.rng.Float64() * 2 * math.Pi,
		SpinSpeed:     (f.rng.Float64() - 0.5) * 2,
		Flip:          f.rng.Float64() * 2 * math.Pi,
		FlipSpeed:     0.5 + f.rng.Float64()*1.5,
		Opacity:       0.4 + f.rng.Float64()*0.6,
		Palette:       f.rng.Intn(f.paletteSize),
	}
}

// Step advances the simulation by dt seconds.
func (f *Field) Step(dt float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Y += p.FallSpeed * dt
		p.SwayPhase += dt
		p.X += math.Sin(p.SwayPhase) * p.SwayAmplitude * dt
		p.Rotation += p.SpinSpeed * dt
		p.Flip += p.FlipSpeed * dt

		if p.Y > f.height {
			// Recycle above the viewport so the population stays constant.
			*p = f.spawn(-p.Size)
		}
	}
}

// Particles returns the current population. The slice is owned by the
// field; callers must not retain it across Step calls.
func (f *Field) Particles() []Particle {
	return f.particles
}
