// Package heightfield provides elevation sample sources for the geometry
// clipmap: a seeded procedural generator and a heightmap-image reader.
package heightfield

// Source produces elevation samples for a square region of the world.
//
// Region fills a res×res row-major grid of heights. originX/originZ is
// the world position of the first sample and step the spacing between
// neighbours, so one call covers [origin, origin+(res-1)*step] on both
// axes. Implementations must be pure: the same arguments always yield
// the same samples.
type Source interface {
	Region(res int, originX, originZ, step float32) []float32
}
