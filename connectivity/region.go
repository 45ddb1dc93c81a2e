package connectivity

import (
	"fmt"

	"github.com/robert-malhotra/go-resdata/grid"
	"github.com/robert-malhotra/go-resdata/resdata"
)

// Predicate selects cells of a grid.
type Predicate func(g *grid.Grid, c grid.IJK) bool

// All selects every cell.
func All() Predicate {
	return func(*grid.Grid, grid.IJK) bool { return true }
}

// Active selects active cells.
func Active() Predicate {
	return func(g *grid.Grid, c grid.IJK) bool { return g.IsActive(c.I, c.J, c.K) }
}

// InLayer selects the cells of layer k.
func InLayer(k int) Predicate {
	return func(_ *grid.Grid, c grid.IJK) bool { return c.K == k }
}

// InBox selects cells with lo.I <= i <= hi.I and likewise for j and k.
func InBox(lo, hi grid.IJK) Predicate {
	return func(_ *grid.Grid, c grid.IJK) bool {
		return c.I >= lo.I && c.I <= hi.I &&
			c.J >= lo.J && c.J <= hi.J &&
			c.K >= lo.K && c.K <= hi.K
	}
}

// DeeperThan selects cells whose centre lies below depth z.
func DeeperThan(z float64) Predicate {
	return func(g *grid.Grid, c grid.IJK) bool {
		d, err := g.CellDepth(c.I, c.J, c.K)
		return err == nil && d > z
	}
}

// ShallowerThan selects cells whose centre lies above depth z.
func ShallowerThan(z float64) Predicate {
	return func(g *grid.Grid, c grid.IJK) bool {
		d, err := g.CellDepth(c.I, c.J, c.K)
		return err == nil && d < z
	}
}

// Equal selects cells whose value in kw equals v. kw is a numeric keyword
// with one value per cell or one per active cell; in the latter case
// inactive cells never match.
func Equal(kw *resdata.Keyword, v float64) (Predicate, error) {
	return property(kw, func(x float64) bool { return x == v })
}

// InRange selects cells whose value in kw lies in [lo, hi). kw is sized as
// for Equal.
func InRange(kw *resdata.Keyword, lo, hi float64) (Predicate, error) {
	return property(kw, func(x float64) bool { return x >= lo && x < hi })
}

func property(kw *resdata.Keyword, match func(float64) bool) (Predicate, error) {
	if kw == nil {
		return nil, fmt.Errorf("nil keyword")
	}
	values, err := kw.AsFloat64s()
	if err != nil {
		return nil, err
	}
	return func(g *grid.Grid, c grid.IJK) bool {
		if !g.Dimensions().Contains(c.I, c.J, c.K) {
			return false
		}
		n := -1
		switch len(values) {
		case g.Dimensions().Cells():
			n = g.GlobalIndex(c.I, c.J, c.K)
		case g.ActiveCount():
			n = g.ActiveIndex(c.I, c.J, c.K)
		}
		return n >= 0 && match(values[n])
	}, nil
}

// And selects cells matched by every predicate.
func And(preds ...Predicate) Predicate {
	return func(g *grid.Grid, c grid.IJK) bool {
		for _, p := range preds {
			if !p(g, c) {
				return false
			}
		}
		return true
	}
}

// Or selects cells matched by any predicate.
func Or(preds ...Predicate) Predicate {
	return func(g *grid.Grid, c grid.IJK) bool {
		for _, p := range preds {
			if p(g, c) {
				return true
			}
		}
		return false
	}
}

// Not selects cells p does not match.
func Not(p Predicate) Predicate {
	return func(g *grid.Grid, c grid.IJK) bool { return !p(g, c) }
}

// Region is a set of cells of one grid.
type Region struct {
	dims grid.Dimensions
	mask []bool
}

// Region evaluates pred on every cell of the grid.
func (e *Engine) Region(pred Predicate) *Region {
	d := e.g.Dimensions()
	r := &Region{dims: d, mask: make([]bool, d.Cells())}
	for n := range r.mask {
		r.mask[n] = pred(e.g, e.g.IJK(n))
	}
	return r
}

// Contains reports whether (i,j,k) is in the region.
func (r *Region) Contains(i, j, k int) bool {
	if !r.dims.Contains(i, j, k) {
		return false
	}
	return r.mask[i+r.dims.NX*(j+r.dims.NY*k)]
}

// Len returns the number of selected cells.
func (r *Region) Len() int {
	n := 0
	for _, in := range r.mask {
		if in {
			n++
		}
	}
	return n
}

// Cells returns the selected cells in natural order.
func (r *Region) Cells() []grid.IJK {
	var out []grid.IJK
	nx, ny := r.dims.NX, r.dims.NY
	for n, in := range r.mask {
		if in {
			out = append(out, grid.IJK{I: n % nx, J: (n / nx) % ny, K: n / (nx * ny)})
		}
	}
	return out
}

// Mask returns a copy of the selection, one flag per cell in natural
// order.
func (r *Region) Mask() []bool {
	return append([]bool(nil), r.mask...)
}

// Intersect returns the cells in both r and o.
func (r *Region) Intersect(o *Region) *Region {
	return r.combine(o, func(a, b bool) bool { return a && b })
}

// Union returns the cells in r or o.
func (r *Region) Union(o *Region) *Region {
	return r.combine(o, func(a, b bool) bool { return a || b })
}

// Invert returns the cells not in r.
func (r *Region) Invert() *Region {
	out := &Region{dims: r.dims, mask: make([]bool, len(r.mask))}
	for n, in := range r.mask {
		out.mask[n] = !in
	}
	return out
}

func (r *Region) combine(o *Region, op func(a, b bool) bool) *Region {
	out := &Region{dims: r.dims, mask: make([]bool, len(r.mask))}
	for n := range r.mask {
		other := o != nil && o.dims == r.dims && o.mask[n]
		out.mask[n] = op(r.mask[n], other)
	}
	return out
}
