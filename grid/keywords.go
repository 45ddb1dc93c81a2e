package grid

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-resdata/resdata"
)

// Keywords read and written by grid files.
const (
	KeywordGridhead = "GRIDHEAD"
	KeywordDimens   = "DIMENS"
	KeywordCoord    = "COORD"
	KeywordZcorn    = "ZCORN"
	KeywordActnum   = "ACTNUM"
	KeywordEndgrid  = "ENDGRID"
)

// gridheadLen is the length of the GRIDHEAD header; items 1..3 are the
// dimensions and item 0 is the grid type, 1 for corner-point.
const gridheadLen = 100

// FromStore builds a grid from the keywords of a grid file. Dimensions come
// from GRIDHEAD, or DIMENS for older files. ACTNUM is optional.
func FromStore(s *resdata.Store, opts ...Option) (*Grid, error) {
	dims, err := dimensionsFromStore(s)
	if err != nil {
		return nil, err
	}

	coord, err := floatArray(s, KeywordCoord)
	if err != nil {
		return nil, err
	}
	zcorn, err := floatArray(s, KeywordZcorn)
	if err != nil {
		return nil, err
	}

	var actnum []int32
	if s.Has(KeywordActnum) {
		kw, _ := s.Get(KeywordActnum, 0)
		if actnum, err = kw.Int32s(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", KeywordActnum, err)
		}
	}

	return New(dims, coord, zcorn, actnum, opts...)
}

func dimensionsFromStore(s *resdata.Store) (Dimensions, error) {
	for _, name := range []string{KeywordGridhead, KeywordDimens} {
		kw, err := s.Get(name, 0)
		if errors.Is(err, resdata.ErrKeywordNotFound) {
			continue
		}
		values, err := kw.Int32s()
		if err != nil {
			return Dimensions{}, fmt.Errorf("reading %s: %w", name, err)
		}
		first := 0
		if name == KeywordGridhead {
			first = 1
		}
		if len(values) < first+3 {
			return Dimensions{}, fmt.Errorf("%w: %s has %d values", ErrInvalidDimensions, name, len(values))
		}
		return Dimensions{
			NX: int(values[first]),
			NY: int(values[first+1]),
			NZ: int(values[first+2]),
		}, nil
	}
	return Dimensions{}, fmt.Errorf("%w: %s or %s", ErrMissingArray, KeywordGridhead, KeywordDimens)
}

func floatArray(s *resdata.Store, name string) ([]float64, error) {
	kw, err := s.Get(name, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingArray, name)
	}
	values, err := kw.AsFloat64s()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return values, nil
}

// Precision selects the element type of exported COORD and ZCORN arrays.
type Precision int

const (
	// Single writes REAL arrays, as simulators do. Coordinates that are not
	// exactly representable in float32 are rounded, so the re-read grid has
	// a different Fingerprint.
	Single Precision = iota
	// Double writes DOUB arrays and round-trips every coordinate exactly.
	Double
)

// Keywords returns the grid as the keyword sequence of a grid file with
// single precision COORD and ZCORN.
func (g *Grid) Keywords() []*resdata.Keyword {
	return g.KeywordsAs(Single)
}

// KeywordsAs returns the grid as the keyword sequence of a grid file with
// COORD and ZCORN written in precision p.
func (g *Grid) KeywordsAs(p Precision) []*resdata.Keyword {
	head := make([]int32, gridheadLen)
	head[0] = 1
	head[1], head[2], head[3] = int32(g.dims.NX), int32(g.dims.NY), int32(g.dims.NZ)

	actnum := g.actnum
	if actnum == nil {
		actnum = make([]int32, g.dims.Cells())
		for n := range actnum {
			actnum[n] = 1
		}
	}

	var coord, zcorn *resdata.Keyword
	if p == Double {
		coord = resdata.NewFloat64s(KeywordCoord, g.coord)
		zcorn = resdata.NewFloat64s(KeywordZcorn, g.zcorn)
	} else {
		coord = resdata.NewFloat32s(KeywordCoord, toFloat32s(g.coord))
		zcorn = resdata.NewFloat32s(KeywordZcorn, toFloat32s(g.zcorn))
	}

	return []*resdata.Keyword{
		resdata.NewInt32s(KeywordGridhead, head),
		coord,
		zcorn,
		resdata.NewInt32s(KeywordActnum, actnum),
		resdata.NewInt32s(KeywordEndgrid, nil),
	}
}

func toFloat32s(values []float64) []float32 {
	out := make([]float32, len(values))
	for n, v := range values {
		out[n] = float32(v)
	}
	return out
}

// NewRectangular builds a regular grid of dx by dy by dz cells with
// vertical pillars, the top of the grid at depth zero.
func NewRectangular(dims Dimensions, dx, dy, dz float64, opts ...Option) (*Grid, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDimensions, dims)
	}

	coord := make([]float64, 0, dims.CoordLen())
	bottom := float64(dims.NZ) * dz
	for j := 0; j <= dims.NY; j++ {
		for i := 0; i <= dims.NX; i++ {
			x, y := float64(i)*dx, float64(j)*dy
			coord = append(coord, x, y, 0, x, y, bottom)
		}
	}

	zcorn := make([]float64, dims.ZcornLen())
	layout := &Grid{dims: dims}
	for k := 0; k < dims.NZ; k++ {
		for j := 0; j < dims.NY; j++ {
			for i := 0; i < dims.NX; i++ {
				for c := 0; c < 8; c++ {
					z := float64(k) * dz
					if c >= 4 {
						z += dz
					}
					zcorn[layout.ZcornIndex(i, j, k, c)] = z
				}
			}
		}
	}

	return New(dims, coord, zcorn, nil, opts...)
}
