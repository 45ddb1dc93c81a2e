package grid

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	rdbinary "github.com/robert-malhotra/go-resdata/internal/binary"
)

// Grid is a corner-point grid. It owns its arrays and is read-only after
// construction, so it is safe for concurrent use.
type Grid struct {
	dims   Dimensions
	coord  []float64
	zcorn  []float64
	actnum []int32

	// activeIndex maps global to active index, -1 for inactive cells.
	activeIndex []int32
	// globalIndex maps active to global index.
	globalIndex []int32

	fingerprintOnce sync.Once
	fingerprint     uint64
}

// New builds a grid from its arrays. The arrays are copied. actnum may be
// nil, in which case every cell is active.
func New(dims Dimensions, coord, zcorn []float64, actnum []int32, opts ...Option) (*Grid, error) {
	o := applyOptions(opts)

	if !dims.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDimensions, dims)
	}
	if coord == nil {
		return nil, fmt.Errorf("%w: COORD", ErrMissingArray)
	}
	if zcorn == nil {
		return nil, fmt.Errorf("%w: ZCORN", ErrMissingArray)
	}
	if len(coord) != dims.CoordLen() {
		return nil, &DimensionError{Array: "COORD", Dims: dims, Got: len(coord), Want: dims.CoordLen()}
	}
	if len(zcorn) != dims.ZcornLen() {
		return nil, &DimensionError{Array: "ZCORN", Dims: dims, Got: len(zcorn), Want: dims.ZcornLen()}
	}
	if actnum != nil && len(actnum) != dims.Cells() {
		return nil, &DimensionError{Array: "ACTNUM", Dims: dims, Got: len(actnum), Want: dims.Cells()}
	}

	g := &Grid{
		dims:  dims,
		coord: append([]float64(nil), coord...),
		zcorn: append([]float64(nil), zcorn...),
	}
	if actnum != nil {
		g.actnum = append([]int32(nil), actnum...)
	}

	g.activeIndex = make([]int32, dims.Cells())
	for n := range g.activeIndex {
		if g.actnum != nil && g.actnum[n] == 0 {
			g.activeIndex[n] = -1
			continue
		}
		g.activeIndex[n] = int32(len(g.globalIndex))
		g.globalIndex = append(g.globalIndex, int32(n))
	}

	o.logger.Debug("built grid", "dims", dims.String(), "active", len(g.globalIndex))
	return g, nil
}

// Dimensions returns the grid dimensions.
func (g *Grid) Dimensions() Dimensions {
	return g.dims
}

// Coord returns a copy of the pillar array.
func (g *Grid) Coord() []float64 {
	return append([]float64(nil), g.coord...)
}

// Zcorn returns a copy of the corner depth array.
func (g *Grid) Zcorn() []float64 {
	return append([]float64(nil), g.zcorn...)
}

// Actnum returns a copy of the active flags, or nil if the grid was built
// without them.
func (g *Grid) Actnum() []int32 {
	if g.actnum == nil {
		return nil
	}
	return append([]int32(nil), g.actnum...)
}

// GlobalIndex returns the natural index of (i,j,k): i fastest, then j,
// then k.
func (g *Grid) GlobalIndex(i, j, k int) int {
	return i + g.dims.NX*(j+g.dims.NY*k)
}

// IJK converts a natural index back to a cell address.
func (g *Grid) IJK(global int) IJK {
	nx, ny := g.dims.NX, g.dims.NY
	return IJK{I: global % nx, J: (global / nx) % ny, K: global / (nx * ny)}
}

// ZcornIndex returns the position in ZCORN of corner c of cell (i,j,k).
func (g *Grid) ZcornIndex(i, j, k, c int) int {
	nx, ny := g.dims.NX, g.dims.NY
	idx := k*8*nx*ny + j*4*nx + 2*i + (c & 1)
	if c >= 4 {
		idx += 4 * nx * ny
	}
	if c&2 != 0 {
		idx += 2 * nx
	}
	return idx
}

// IsActive reports whether (i,j,k) is an active cell. Cells outside the
// grid are never active.
func (g *Grid) IsActive(i, j, k int) bool {
	if !g.dims.Contains(i, j, k) {
		return false
	}
	return g.activeIndex[g.GlobalIndex(i, j, k)] >= 0
}

// ActiveCount returns the number of active cells.
func (g *Grid) ActiveCount() int {
	return len(g.globalIndex)
}

// ActiveIndex returns the active index of (i,j,k), or -1 if the cell is
// inactive or outside the grid.
func (g *Grid) ActiveIndex(i, j, k int) int {
	if !g.dims.Contains(i, j, k) {
		return -1
	}
	return int(g.activeIndex[g.GlobalIndex(i, j, k)])
}

// GlobalFromActive returns the natural index of the active'th active cell.
func (g *Grid) GlobalFromActive(active int) (int, error) {
	if active < 0 || active >= len(g.globalIndex) {
		return -1, fmt.Errorf("%w: active index %d of %d", ErrOutOfRange, active, len(g.globalIndex))
	}
	return int(g.globalIndex[active]), nil
}

// Neighbors returns the cells sharing a face with (i,j,k) in the order
// I-, I+, J-, J+, K-, K+. Adjacency is structural; faults are ignored.
func (g *Grid) Neighbors(i, j, k int) []Neighbor {
	if !g.dims.Contains(i, j, k) {
		return nil
	}
	out := make([]Neighbor, 0, len(Faces))
	for _, f := range Faces {
		off := f.Offset()
		n := IJK{I: i + off.I, J: j + off.J, K: k + off.K}
		if g.dims.Contains(n.I, n.J, n.K) {
			out = append(out, Neighbor{IJK: n, Face: f})
		}
	}
	return out
}

// Fingerprint returns an xxhash-64 digest of the dimensions and arrays.
// Grids with equal fingerprints have identical geometry.
func (g *Grid) Fingerprint() uint64 {
	g.fingerprintOnce.Do(func() {
		d := rdbinary.NewDigest()
		var buf [8]byte
		for _, v := range []int{g.dims.NX, g.dims.NY, g.dims.NZ} {
			binary.BigEndian.PutUint64(buf[:], uint64(v))
			d.Write(buf[:])
		}
		for _, arr := range [][]float64{g.coord, g.zcorn} {
			for _, v := range arr {
				binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
				d.Write(buf[:])
			}
		}
		for n := range g.activeIndex {
			if g.activeIndex[n] >= 0 {
				buf[0] = 1
			} else {
				buf[0] = 0
			}
			d.Write(buf[:1])
		}
		g.fingerprint = d.Sum64()
	})
	return g.fingerprint
}
