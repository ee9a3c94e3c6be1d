package heightfield

import "github.com/chewxy/math32"

// Procedural generates terrain from seeded octave value noise.
type Procedural struct {
	Seed        int64
	Amplitude   float32
	Frequency   float32 // base noise frequency in 1/world-units
	Octaves     int
	Persistence float32
	Lacunarity  float32
}

// NewProcedural returns a generator with rolling-hills defaults.
func NewProcedural(seed int64, amplitude float32) *Procedural {
	return &Procedural{
		Seed:        seed,
		Amplitude:   amplitude,
		Frequency:   1.0 / 256.0,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// Region implements Source.
func (p *Procedural) Region(res int, originX, originZ, step float32) []float32 {
	out := make([]float32, res*res)
	for j := 0; j < res; j++ {
		wz := originZ + float32(j)*step
		for i := 0; i < res; i++ {
			wx := originX + float32(i)*step
			out[j*res+i] = p.HeightAt(wx, wz)
		}
	}
	return out
}

// HeightAt returns the elevation at a world position.
func (p *Procedural) HeightAt(x, z float32) float32 {
	freq := p.Frequency
	amp := float32(1.0)
	var sum, norm float32

	for o := 0; o < p.Octaves; o++ {
		sum += amp * p.noise2(x*freq, z*freq, int64(o))
		norm += amp
		amp *= p.Persistence
		freq *= p.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	// Centered around zero so terrain has valleys below the base plane.
	return (sum/norm - 0.5) * 2 * p.Amplitude
}

// noise2 is smoothed value noise in [0,1).
func (p *Procedural) noise2(x, z float32, octave int64) float32 {
	xi := math32.Floor(x)
	zi := math32.Floor(z)
	fx := x - xi
	fz := z - zi

	// Smoothstep fade for C1-continuous interpolation.
	ux := fx * fx * (3 - 2*fx)
	uz := fz * fz * (3 - 2*fz)

	seed := p.Seed*31 + octave
	ix := int64(xi)
	iz := int64(zi)

	h00 := hash2(ix, iz, seed)
	h10 := hash2(ix+1, iz, seed)
	h01 := hash2(ix, iz+1, seed)
	h11 := hash2(ix+1, iz+1, seed)

	top := h00 + (h10-h00)*ux
	bottom := h01 + (h11-h01)*ux
	return top + (bottom-top)*uz
}

// hash2 maps lattice coordinates and a seed to [0,1).
func hash2(x, z, seed int64) float32 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(z)*0xC2B2AE3D27D4EB4F ^ uint64(seed)*0x165667B19E3779F9
	h ^= h >> 32
	h *= 0xD6E8FEB86659FD93
	h ^= h >> 32
	return float32(h&0xFFFFFF) / float32(0x1000000)
}
