package connectivity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-resdata/grid"
)

// ErrLayerOutOfRange is returned for a layer index outside the grid.
var ErrLayerOutOfRange = errors.New("layer out of range")

// inLayerFaces are the faces followed by the flood fill.
var inLayerFaces = [4]grid.Face{grid.FaceIMinus, grid.FaceIPlus, grid.FaceJMinus, grid.FaceJPlus}

// Engine computes fault blocks and regions over one grid. It is safe for
// concurrent use.
type Engine struct {
	g    *grid.Grid
	opts *options

	// cacheMu serializes cache writes.
	cacheMu sync.Mutex
}

// New returns an engine over g.
func New(g *grid.Grid, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{g: g, opts: o}
}

// Grid returns the grid the engine works on.
func (e *Engine) Grid() *grid.Grid {
	return e.g
}

// Tolerance returns the touching tolerance.
func (e *Engine) Tolerance() float64 {
	return e.opts.tolerance
}

func (e *Engine) checkLayer(k int) error {
	if nz := e.g.Dimensions().NZ; k < 0 || k >= nz {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrLayerOutOfRange, k, nz)
	}
	return nil
}

// FaultBlocks labels the fault blocks of layer k. Results are cached when
// the engine has a cache.
func (e *Engine) FaultBlocks(k int) (*Layer, error) {
	if err := e.checkLayer(k); err != nil {
		return nil, err
	}

	key := cacheKey(e.g.Fingerprint(), e.opts.tolerance, k)
	if e.opts.cache != nil {
		ids, ok, err := e.opts.cache.Get(key)
		if err != nil {
			return nil, fmt.Errorf("reading cached layer %d: %w", k, err)
		}
		if ok && len(ids) == e.layerSize() {
			e.opts.logger.Debug("fault blocks from cache", "layer", k)
			return newLayer(e.g, k, ids), nil
		}
	}

	ids := e.label(k, nil)
	if e.opts.cache != nil {
		e.cacheMu.Lock()
		err := e.opts.cache.Put(key, ids)
		e.cacheMu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("caching layer %d: %w", k, err)
		}
	}
	return newLayer(e.g, k, ids), nil
}

// FaultBlocksIn labels the fault blocks of layer k using only the cells of
// r. Cells outside r are unlabeled and never bridge two blocks. The result
// is not cached.
func (e *Engine) FaultBlocksIn(k int, r *Region) (*Layer, error) {
	if err := e.checkLayer(k); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("nil region")
	}
	if r.dims != e.g.Dimensions() {
		return nil, fmt.Errorf("region over %s used with a %s grid", r.dims, e.g.Dimensions())
	}
	return newLayer(e.g, k, e.label(k, r)), nil
}

// AllLayers labels every layer. Layers are computed in parallel by at most
// the configured number of workers.
func (e *Engine) AllLayers(ctx context.Context) ([]*Layer, error) {
	nz := e.g.Dimensions().NZ
	layers := make([]*Layer, nz)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for k := 0; k < nz; k++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			layer, err := e.FaultBlocks(k)
			if err != nil {
				return err
			}
			layers[k] = layer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return layers, nil
}

func (e *Engine) layerSize() int {
	d := e.g.Dimensions()
	return d.NX * d.NY
}

// label flood fills layer k and returns one id per column, i fastest.
func (e *Engine) label(k int, r *Region) []int32 {
	d := e.g.Dimensions()
	nx, ny := d.NX, d.NY
	tol := e.opts.tolerance

	eligible := func(i, j int) bool {
		return e.g.IsActive(i, j, k) && (r == nil || r.Contains(i, j, k))
	}

	ids := make([]int32, nx*ny)
	visited := make([]bool, nx*ny)
	var queue []int
	var next int32

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			seed := i + j*nx
			if visited[seed] || !eligible(i, j) {
				continue
			}
			next++
			visited[seed] = true
			ids[seed] = next
			queue = append(queue[:0], seed)

			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				ci, cj := c%nx, c/nx

				for _, f := range inLayerFaces {
					off := f.Offset()
					ni, nj := ci+off.I, cj+off.J
					if ni < 0 || ni >= nx || nj < 0 || nj >= ny {
						continue
					}
					n := ni + nj*nx
					if visited[n] || !eligible(ni, nj) {
						continue
					}
					if !e.g.FacesTouch(ci, cj, k, f, tol) {
						continue
					}
					visited[n] = true
					ids[n] = next
					queue = append(queue, n)
				}
			}
		}
	}

	e.opts.logger.Debug("labeled fault blocks", "layer", k, "blocks", next)
	return ids
}
