package connectivity

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-resdata/resdata"
)

// ErrKeywordSize is returned for a keyword that does not hold one value
// per grid cell.
var ErrKeywordSize = errors.New("keyword is not grid sized")

// layerValues returns the values of layer k from a grid sized INTE keyword.
func (e *Engine) layerValues(k int, kw *resdata.Keyword) ([]int32, error) {
	if err := e.checkLayer(k); err != nil {
		return nil, err
	}
	if kw == nil {
		return nil, fmt.Errorf("nil keyword")
	}
	d := e.g.Dimensions()
	if kw.Len() != d.Cells() {
		return nil, fmt.Errorf("%w: %s has %d values, grid %s has %d cells",
			ErrKeywordSize, kw.Name(), kw.Len(), d, d.Cells())
	}
	values, err := kw.Int32s()
	if err != nil {
		return nil, err
	}
	n := e.layerSize()
	return values[k*n : (k+1)*n], nil
}

// LoadKeyword builds layer k from the fault block ids stored in kw, a grid
// sized INTE keyword such as one written by Layer.Keyword. Positive values
// are kept as ids and everything else is unlabeled. Ids need not be
// contiguous.
func (e *Engine) LoadKeyword(k int, kw *resdata.Keyword) (*Layer, error) {
	values, err := e.layerValues(k, kw)
	if err != nil {
		return nil, err
	}
	ids := make([]int32, len(values))
	for n, v := range values {
		if v > 0 {
			ids[n] = v
		}
	}
	return newLayer(e.g, k, ids), nil
}

// ScanKeyword relabels layer k from kw, a grid sized INTE keyword. Columns
// sharing a value and joined through I or J faces form one block whatever
// the geometry. Zero counts as a value of its own. Blocks are numbered
// from 1 in scan order, j outermost.
func (e *Engine) ScanKeyword(k int, kw *resdata.Keyword) (*Layer, error) {
	values, err := e.layerValues(k, kw)
	if err != nil {
		return nil, err
	}

	d := e.g.Dimensions()
	nx, ny := d.NX, d.NY
	ids := make([]int32, len(values))
	var queue []int
	var next int32

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			seed := i + j*nx
			if ids[seed] != 0 {
				continue
			}
			next++
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
					if ids[n] != 0 || values[n] != values[seed] {
						continue
					}
					ids[n] = next
					queue = append(queue, n)
				}
			}
		}
	}

	e.opts.logger.Debug("scanned fault block keyword", "layer", k, "keyword", kw.Name(), "blocks", next)
	return newLayer(e.g, k, ids), nil
}

