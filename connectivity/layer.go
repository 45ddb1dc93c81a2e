package connectivity

import (
	"slices"

	"github.com/robert-malhotra/go-resdata/grid"
	"github.com/robert-malhotra/go-resdata/resdata"
)

// FaultBlock is a maximal set of connected cells in one layer.
type FaultBlock struct {
	ID    int
	K     int
	Cells []grid.IJK
	// Center is the mean of the cell centres.
	Center grid.Point
}

// Layer is the fault block labeling of one layer.
type Layer struct {
	k    int
	dims grid.Dimensions
	ids  []int32
	// blocks holds the non-empty blocks ordered by id.
	blocks []*FaultBlock
	byID   map[int]*FaultBlock
}

func newLayer(g *grid.Grid, k int, ids []int32) *Layer {
	d := g.Dimensions()
	l := &Layer{k: k, dims: d, ids: ids, byID: make(map[int]*FaultBlock)}

	for n, id := range ids {
		if id <= 0 {
			continue
		}
		b, ok := l.byID[int(id)]
		if !ok {
			b = &FaultBlock{ID: int(id), K: k}
			l.byID[int(id)] = b
			l.blocks = append(l.blocks, b)
		}
		c := grid.IJK{I: n % d.NX, J: n / d.NX, K: k}
		b.Cells = append(b.Cells, c)
		if center, err := g.CellCenter(c.I, c.J, c.K); err == nil {
			b.Center = b.Center.Add(center)
		}
	}
	slices.SortFunc(l.blocks, func(a, b *FaultBlock) int { return a.ID - b.ID })
	for _, b := range l.blocks {
		b.Center = b.Center.Scale(1 / float64(len(b.Cells)))
	}
	return l
}

// K returns the layer index.
func (l *Layer) K() int {
	return l.k
}

// ID returns the fault block id of column (i,j), or 0 for inactive,
// excluded and out of range cells.
func (l *Layer) ID(i, j int) int {
	if i < 0 || i >= l.dims.NX || j < 0 || j >= l.dims.NY {
		return 0
	}
	return int(l.ids[i+j*l.dims.NX])
}

// IDs returns a copy of the per-column ids, i fastest.
func (l *Layer) IDs() []int32 {
	return append([]int32(nil), l.ids...)
}

// Mapping returns the block id of every labeled cell keyed by the cell's
// natural global index.
func (l *Layer) Mapping() map[int]int {
	m := make(map[int]int)
	base := l.k * l.dims.NX * l.dims.NY
	for n, id := range l.ids {
		if id != 0 {
			m[base+n] = int(id)
		}
	}
	return m
}

// Len returns the number of fault blocks.
func (l *Layer) Len() int {
	return len(l.blocks)
}

// Blocks returns the fault blocks ordered by id.
func (l *Layer) Blocks() []*FaultBlock {
	return append([]*FaultBlock(nil), l.blocks...)
}

// Block returns the block with the given id.
func (l *Layer) Block(id int) (*FaultBlock, bool) {
	b, ok := l.byID[id]
	return b, ok
}

// Neighbours returns the ids of the blocks that contain a structural
// neighbour of a cell in block id, in ascending order. Such blocks are
// separated from id by a fault.
func (l *Layer) Neighbours(id int) []int {
	b, ok := l.Block(id)
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	for _, c := range b.Cells {
		for _, f := range inLayerFaces {
			off := f.Offset()
			other := l.ID(c.I+off.I, c.J+off.J)
			if other != 0 && other != id {
				seen[other] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for other := range seen {
		out = append(out, other)
	}
	slices.Sort(out)
	return out
}

// Keyword exports the labeling as a grid sized INTE keyword, zero outside
// this layer.
func (l *Layer) Keyword(name string) *resdata.Keyword {
	values := make([]int32, l.dims.Cells())
	copy(values[l.k*l.dims.NX*l.dims.NY:], l.ids)
	return resdata.NewInt32s(name, values)
}
