package grid

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-resdata/resdata"
)

func unitGrid(t *testing.T, dims Dimensions) *Grid {
	t.Helper()
	g, err := NewRectangular(dims, 1, 1, 1)
	require.NoError(t, err)
	return g
}

func TestNewValidatesLengths(t *testing.T) {
	dims := Dimensions{NX: 2, NY: 2, NZ: 1}
	g := unitGrid(t, dims)
	coord, zcorn := g.Coord(), g.Zcorn()

	tests := []struct {
		name   string
		dims   Dimensions
		coord  []float64
		zcorn  []float64
		actnum []int32
		array  string
	}{
		{"short coord", dims, coord[:len(coord)-1], zcorn, nil, "COORD"},
		{"long zcorn", dims, coord, append(zcorn, 0), nil, "ZCORN"},
		{"short actnum", dims, coord, zcorn, []int32{1, 1, 1}, "ACTNUM"},
		{"wrong nx", Dimensions{NX: 3, NY: 2, NZ: 1}, coord, zcorn, nil, "COORD"},
		{"swapped nx ny", Dimensions{NX: 1, NY: 4, NZ: 1}, coord, zcorn, nil, "COORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dims, tt.coord, tt.zcorn, tt.actnum)
			require.ErrorIs(t, err, ErrDimensionMismatch)

			var de *DimensionError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.array, de.Array)
		})
	}

	_, err := New(dims, nil, zcorn, nil)
	assert.ErrorIs(t, err, ErrMissingArray)
	_, err = New(dims, coord, nil, nil)
	assert.ErrorIs(t, err, ErrMissingArray)
	_, err = New(Dimensions{NX: 0, NY: 2, NZ: 1}, coord, zcorn, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewCopiesArrays(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 1, NY: 1, NZ: 1})
	zcorn := g.Zcorn()
	zcorn[0] = 99
	assert.Equal(t, 0.0, g.Zcorn()[0])
}

func TestCellCorners(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 2, NY: 2, NZ: 1})

	got, err := g.CellCorners(1, 0, 0)
	require.NoError(t, err)
	want := [8]Point{
		{1, 0, 0}, {2, 0, 0}, {1, 1, 0}, {2, 1, 0},
		{1, 0, 1}, {2, 0, 1}, {1, 1, 1}, {2, 1, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}

	_, err = g.CellCorners(2, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestZcornLayout(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 2, NY: 3, NZ: 2})

	seen := make(map[int]bool)
	for k := 0; k < 2; k++ {
		for j := 0; j < 3; j++ {
			for i := 0; i < 2; i++ {
				for c := 0; c < 8; c++ {
					idx := g.ZcornIndex(i, j, k, c)
					assert.False(t, seen[idx], "index %d used twice", idx)
					seen[idx] = true
				}
			}
		}
	}
	assert.Len(t, seen, 8*2*3*2)

	// Top sheet of the first layer: the two corners of cell (0,0) along i
	// are adjacent, then cell (1,0).
	assert.Equal(t, 0, g.ZcornIndex(0, 0, 0, 0))
	assert.Equal(t, 1, g.ZcornIndex(0, 0, 0, 1))
	assert.Equal(t, 2, g.ZcornIndex(1, 0, 0, 0))
	assert.Equal(t, 4, g.ZcornIndex(0, 0, 0, 2))
	assert.Equal(t, 4*2*3, g.ZcornIndex(0, 0, 0, 4))
	assert.Equal(t, 8*2*3, g.ZcornIndex(0, 0, 1, 0))
}

func TestCellVolume(t *testing.T) {
	g, err := NewRectangular(Dimensions{NX: 2, NY: 1, NZ: 2}, 2, 3, 4)
	require.NoError(t, err)

	for k := 0; k < 2; k++ {
		for i := 0; i < 2; i++ {
			v, err := g.CellVolume(i, 0, k)
			require.NoError(t, err)
			assert.InDelta(t, 24.0, v, 1e-9)
		}
	}

	_, err = g.CellVolume(0, 1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestShearedCellVolume(t *testing.T) {
	// Pillars leaning along x keep the cross-section, so the volume of
	// the parallelepiped equals the upright cell's.
	dims := Dimensions{NX: 1, NY: 1, NZ: 1}
	coord := []float64{
		0, 0, 0, 1, 0, 1,
		1, 0, 0, 2, 0, 1,
		0, 1, 0, 1, 1, 1,
		1, 1, 0, 2, 1, 1,
	}
	zcorn := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	g, err := New(dims, coord, zcorn, nil)
	require.NoError(t, err)

	v, err := g.CellVolume(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	pts, err := g.CellCorners(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Point{1, 0, 1}, pts[4])
}

func TestPinchedAndDegenerateCells(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 1, NY: 1, NZ: 1})
	zcorn := g.Zcorn()
	for c := 4; c < 8; c++ {
		zcorn[g.ZcornIndex(0, 0, 0, c)] = 0
	}
	pinched, err := New(g.Dimensions(), g.Coord(), zcorn, nil)
	require.NoError(t, err)

	v, err := pinched.CellVolume(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	thickness, err := pinched.CellThickness(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, thickness)

	// Pillars with equal endpoint depths fall back to the top x/y.
	coord := g.Coord()
	for p := 0; p < 4; p++ {
		coord[6*p+5] = coord[6*p+2]
	}
	flat, err := New(g.Dimensions(), coord, g.Zcorn(), nil)
	require.NoError(t, err)
	pts, err := flat.CellCorners(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Point{1, 1, 1}, pts[7])
	v, err = flat.CellVolume(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestTwistedCellVolumeIsFinite(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 1, NY: 1, NZ: 1})
	zcorn := g.Zcorn()
	// Cross the top and bottom depths on two pillars.
	zcorn[g.ZcornIndex(0, 0, 0, 0)] = 2
	zcorn[g.ZcornIndex(0, 0, 0, 3)] = 1.5
	zcorn[g.ZcornIndex(0, 0, 0, 7)] = -1

	twisted, err := New(g.Dimensions(), g.Coord(), zcorn, nil)
	require.NoError(t, err)
	v, err := twisted.CellVolume(0, 0, 0)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
	assert.GreaterOrEqual(t, v, 0.0)

	zcorn[0] = math.NaN()
	broken, err := New(g.Dimensions(), g.Coord(), zcorn, nil)
	require.NoError(t, err)
	v, err = broken.CellVolume(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestCellQueries(t *testing.T) {
	g, err := NewRectangular(Dimensions{NX: 2, NY: 2, NZ: 3}, 10, 20, 5)
	require.NoError(t, err)

	c, err := g.CellCenter(1, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, c.X, 1e-9)
	assert.InDelta(t, 30.0, c.Y, 1e-9)
	assert.InDelta(t, 12.5, c.Z, 1e-9)

	depth, err := g.CellDepth(1, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, depth, 1e-9)

	thickness, err := g.CellThickness(0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, thickness, 1e-9)

	box, err := g.CellBoundingBox(0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, BoundingBox{Min: Point{0, 20, 0}, Max: Point{10, 40, 5}}, box)
}

func TestIndexing(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 3, NY: 2, NZ: 2})
	for n := 0; n < 12; n++ {
		c := g.IJK(n)
		assert.Equal(t, n, g.GlobalIndex(c.I, c.J, c.K))
	}
	assert.Equal(t, IJK{2, 1, 1}, g.IJK(11))
	assert.Equal(t, 4, g.GlobalIndex(1, 1, 0))
}

func TestActiveCells(t *testing.T) {
	base := unitGrid(t, Dimensions{NX: 2, NY: 2, NZ: 1})
	assert.True(t, base.IsActive(1, 1, 0))
	assert.Equal(t, 4, base.ActiveCount())

	g, err := New(base.Dimensions(), base.Coord(), base.Zcorn(), []int32{1, 0, 0, 2})
	require.NoError(t, err)

	assert.True(t, g.IsActive(0, 0, 0))
	assert.False(t, g.IsActive(1, 0, 0))
	assert.True(t, g.IsActive(1, 1, 0))
	assert.False(t, g.IsActive(5, 0, 0))
	assert.Equal(t, 2, g.ActiveCount())

	assert.Equal(t, 0, g.ActiveIndex(0, 0, 0))
	assert.Equal(t, -1, g.ActiveIndex(0, 1, 0))
	assert.Equal(t, 1, g.ActiveIndex(1, 1, 0))

	global, err := g.GlobalFromActive(1)
	require.NoError(t, err)
	assert.Equal(t, 3, global)
	_, err = g.GlobalFromActive(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNeighbors(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 3, NY: 3, NZ: 3})

	corner := g.Neighbors(0, 0, 0)
	want := []Neighbor{
		{IJK{1, 0, 0}, FaceIPlus},
		{IJK{0, 1, 0}, FaceJPlus},
		{IJK{0, 0, 1}, FaceKPlus},
	}
	if diff := cmp.Diff(want, corner); diff != "" {
		t.Errorf("neighbors mismatch (-want +got):\n%s", diff)
	}

	middle := g.Neighbors(1, 1, 1)
	require.Len(t, middle, 6)
	for n, f := range Faces {
		assert.Equal(t, f, middle[n].Face)
	}
	assert.Equal(t, IJK{0, 1, 1}, middle[0].IJK)
	assert.Equal(t, IJK{1, 1, 2}, middle[5].IJK)

	assert.Nil(t, g.Neighbors(3, 0, 0))
}

func TestFacesTouch(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 2, NY: 2, NZ: 2})
	for _, f := range []Face{FaceIPlus, FaceJPlus, FaceKPlus} {
		assert.True(t, g.FacesTouch(0, 0, 0, f, 1e-6), f.String())
	}
	assert.True(t, g.FacesTouch(1, 0, 0, FaceIMinus, 1e-6))
	assert.False(t, g.FacesTouch(0, 0, 0, FaceIMinus, 1e-6))

	// Throw the column at i=1 down by half a cell: a fault between i=0 and
	// i=1 that leaves the J and K faces inside each column intact.
	zcorn := g.Zcorn()
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for c := 0; c < 8; c++ {
				zcorn[g.ZcornIndex(1, j, k, c)] += 0.5
			}
		}
	}
	faulted, err := New(g.Dimensions(), g.Coord(), zcorn, nil)
	require.NoError(t, err)

	assert.False(t, faulted.FacesTouch(0, 0, 0, FaceIPlus, 1e-6))
	assert.False(t, faulted.FacesTouch(1, 1, 1, FaceIMinus, 1e-6))
	assert.True(t, faulted.FacesTouch(1, 0, 0, FaceJPlus, 1e-6))
	assert.True(t, faulted.FacesTouch(1, 0, 0, FaceKPlus, 1e-6))
	assert.True(t, faulted.FacesTouch(0, 0, 0, FaceIPlus, 0.5))

	// A throw within tolerance still touches.
	zcorn = g.Zcorn()
	zcorn[g.ZcornIndex(1, 0, 0, 0)] = 1e-9
	nudged, err := New(g.Dimensions(), g.Coord(), zcorn, nil)
	require.NoError(t, err)
	assert.True(t, nudged.FacesTouch(0, 0, 0, FaceIPlus, 1e-6))
	assert.False(t, nudged.FacesTouch(0, 0, 0, FaceIPlus, 1e-12))
}

func TestFingerprint(t *testing.T) {
	a := unitGrid(t, Dimensions{NX: 2, NY: 2, NZ: 1})
	b := unitGrid(t, Dimensions{NX: 2, NY: 2, NZ: 1})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c, err := New(a.Dimensions(), a.Coord(), a.Zcorn(), []int32{1, 1, 1, 0})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d, err := NewRectangular(Dimensions{NX: 2, NY: 2, NZ: 1}, 1, 1, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestKeywordsRoundtrip(t *testing.T) {
	g, err := NewRectangular(Dimensions{NX: 3, NY: 2, NZ: 2}, 50, 25, 2.5)
	require.NoError(t, err)
	actnum := make([]int32, 12)
	for n := range actnum {
		actnum[n] = int32(n % 2)
	}
	g, err = New(g.Dimensions(), g.Coord(), g.Zcorn(), actnum)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, resdata.Encode(&buf, g.Keywords()))

	s, err := resdata.Load(resdata.NewDecoder(&buf).Records())
	require.NoError(t, err)
	assert.Equal(t, []string{"GRIDHEAD", "COORD", "ZCORN", "ACTNUM", "ENDGRID"}, s.Names())

	back, err := FromStore(s)
	require.NoError(t, err)
	assert.Equal(t, g.Dimensions(), back.Dimensions())
	assert.Equal(t, g.Coord(), back.Coord())
	assert.Equal(t, g.Zcorn(), back.Zcorn())
	assert.Equal(t, actnum, back.Actnum())
	assert.Equal(t, g.Fingerprint(), back.Fingerprint())
}

func TestKeywordsPrecision(t *testing.T) {
	// 0.1 has no exact float32 representation.
	g, err := NewRectangular(Dimensions{NX: 2, NY: 2, NZ: 1}, 0.1, 0.3, 0.7)
	require.NoError(t, err)

	reread := func(kws []*resdata.Keyword) *Grid {
		var buf bytes.Buffer
		require.NoError(t, resdata.Encode(&buf, kws))
		s, err := resdata.Load(resdata.NewDecoder(&buf).Records())
		require.NoError(t, err)
		back, err := FromStore(s)
		require.NoError(t, err)
		return back
	}

	double := g.KeywordsAs(Double)
	assert.Equal(t, resdata.Double, double[1].Type())
	exact := reread(double)
	assert.Equal(t, g.Coord(), exact.Coord())
	assert.Equal(t, g.Zcorn(), exact.Zcorn())
	assert.Equal(t, g.Fingerprint(), exact.Fingerprint())

	single := reread(g.Keywords())
	assert.NotEqual(t, g.Fingerprint(), single.Fingerprint())
	assert.InDelta(t, 0.1, single.Coord()[6], 1e-7)
}

func TestFromStoreDimens(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 2, NY: 1, NZ: 1})

	s := resdata.NewStore()
	s.Add(resdata.NewInt32s(KeywordDimens, []int32{2, 1, 1}))
	s.Add(resdata.NewFloat64s(KeywordCoord, g.Coord()))
	s.Add(resdata.NewFloat64s(KeywordZcorn, g.Zcorn()))

	back, err := FromStore(s)
	require.NoError(t, err)
	assert.Equal(t, 2, back.ActiveCount())

	empty := resdata.NewStore()
	_, err = FromStore(empty)
	assert.ErrorIs(t, err, ErrMissingArray)

	noZcorn := resdata.NewStore()
	noZcorn.Add(resdata.NewInt32s(KeywordDimens, []int32{2, 1, 1}))
	noZcorn.Add(resdata.NewFloat64s(KeywordCoord, g.Coord()))
	_, err = FromStore(noZcorn)
	assert.ErrorIs(t, err, ErrMissingArray)
}

func TestBoundingBoxUnion(t *testing.T) {
	g, err := NewRectangular(Dimensions{NX: 2, NY: 1, NZ: 1}, 1, 2, 3)
	require.NoError(t, err)

	a, err := g.CellBoundingBox(0, 0, 0)
	require.NoError(t, err)
	b, err := g.CellBoundingBox(1, 0, 0)
	require.NoError(t, err)

	u := a.Union(b)
	assert.Equal(t, Point{0, 0, 0}, u.Min)
	assert.Equal(t, Point{2, 2, 3}, u.Max)
	assert.Equal(t, u, b.Union(a))
}

func TestCellContainsRectangular(t *testing.T) {
	g := unitGrid(t, Dimensions{NX: 3, NY: 2, NZ: 2})

	assert.True(t, g.CellContains(2, 1, 1, Point{2.5, 1.5, 1.5}))
	assert.False(t, g.CellContains(0, 0, 0, Point{2.5, 1.5, 1.5}))
	assert.False(t, g.CellContains(5, 0, 0, Point{0.5, 0.5, 0.5}))

	tests := []struct {
		name  string
		p     Point
		want  IJK
		found bool
	}{
		{"interior", Point{2.5, 1.5, 1.5}, IJK{I: 2, J: 1, K: 1}, true},
		{"near corner", Point{0.01, 0.01, 0.99}, IJK{}, true},
		{"upper layer", Point{1.2, 0.7, 0.3}, IJK{I: 1}, true},
		{"outside", Point{5, 5, 5}, IJK{}, false},
		{"above the grid", Point{0.5, 0.5, -0.1}, IJK{}, false},
		// Shared faces belong to the first cell in natural order.
		{"shared face", Point{1, 0.5, 0.5}, IJK{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.FindCell(tt.p)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, got)
				assert.True(t, g.CellContains(got.I, got.J, got.K, tt.p))
			}
		})
	}

	assert.True(t, g.CellContains(1, 0, 0, Point{1, 0.5, 0.5}))
}

func TestCellContainsSheared(t *testing.T) {
	// Pillars lean half a cell towards +x between depth 0 and 1.
	dims := Dimensions{NX: 2, NY: 1, NZ: 1}
	base := unitGrid(t, dims)
	coord := base.Coord()
	for p := 0; p < dims.Pillars(); p++ {
		coord[6*p+3] += 0.5
	}
	g, err := New(dims, coord, base.Zcorn(), nil)
	require.NoError(t, err)

	corners, err := g.CellCorners(0, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, corners[4].X, 1e-12)

	// At depth 0.9 cell 0 spans x in [0.45, 1.45].
	got, ok := g.FindCell(Point{1.1, 0.5, 0.9})
	require.True(t, ok)
	assert.Equal(t, IJK{}, got)

	got, ok = g.FindCell(Point{1.1, 0.5, 0.1})
	require.True(t, ok)
	assert.Equal(t, IJK{I: 1}, got)

	_, ok = g.FindCell(Point{0.2, 0.5, 0.9})
	assert.False(t, ok)
	assert.True(t, g.CellContains(0, 0, 0, Point{0.2, 0.5, 0.1}))
}
