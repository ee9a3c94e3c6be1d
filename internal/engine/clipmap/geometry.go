package clipmap

import "fmt"

// RestartIndex is the primitive-restart sentinel separating strip rows
// inside the shared index buffers.
const RestartIndex uint32 = 0xFFFFFFFF

// TileGeometry holds the shared block mesh every instance category draws.
// Positions form a regular vertices x vertices grid over [0,1]x[0,1];
// instances place and stretch it through their per-instance offset and
// scale attributes, so one mesh serves square blocks and thin strips
// alike.
type TileGeometry struct {
	// Vertices is the point count along one grid edge.
	Vertices int
	// Positions holds x,y pairs, row-major from (0,0) to (1,1).
	Positions []float32
	// RowIndices tessellates the grid as restart-separated triangle
	// strips walking row-major. Used by blocks, caps, horizontal ring
	// fixes and horizontal exteriors.
	RowIndices []uint32
	// ColIndices walks the same grid column-major, for the vertical
	// ring-fix and exterior categories.
	ColIndices []uint32
}

// BuildTileGeometry tessellates a grid with the given vertex count per
// edge. The count must be at least 2 (a single quad).
func BuildTileGeometry(vertices int) (*TileGeometry, error) {
	if vertices < 2 {
		return nil, fmt.Errorf("tile geometry needs at least 2 vertices per edge, got %d", vertices)
	}

	g := &TileGeometry{Vertices: vertices}

	step := 1.0 / float32(vertices-1)
	g.Positions = make([]float32, 0, vertices*vertices*2)
	for j := 0; j < vertices; j++ {
		for i := 0; i < vertices; i++ {
			g.Positions = append(g.Positions, float32(i)*step, float32(j)*step)
		}
	}

	g.RowIndices = buildStrips(vertices, func(a, b int) uint32 {
		return uint32(a*vertices + b)
	})
	g.ColIndices = buildStrips(vertices, func(a, b int) uint32 {
		return uint32(b*vertices + a)
	})
	return g, nil
}

// buildStrips emits one triangle strip per quad row, restart-separated,
// with idx mapping (row, column) to a flat vertex index.
func buildStrips(vertices int, idx func(row, col int) uint32) []uint32 {
	quads := vertices - 1
	out := make([]uint32, 0, quads*(2*vertices+1)-1)
	for j := 0; j < quads; j++ {
		if j > 0 {
			out = append(out, RestartIndex)
		}
		for i := 0; i < vertices; i++ {
			out = append(out, idx(j, i), idx(j+1, i))
		}
	}
	return out
}

// IndexCount returns the element count of one full strip buffer.
func (g *TileGeometry) IndexCount() int {
	return len(g.RowIndices)
}

// VertexCount returns the total grid point count.
func (g *TileGeometry) VertexCount() int {
	return g.Vertices * g.Vertices
}
