package grid

import "math"

// pillarEpsilon is the smallest pillar height treated as non-degenerate.
const pillarEpsilon = 1e-12

// tetrahedra splits a hexahedron into twelve tetrahedra, two per face,
// each closed by the cell centre. Triangles are wound so that every term
// has the same sign for a regular cell.
var tetrahedra = [12][3]int{
	{0, 1, 2}, {3, 2, 1},
	{6, 2, 7}, {3, 7, 2},
	{0, 2, 4}, {6, 4, 2},
	{3, 1, 7}, {5, 7, 1},
	{0, 4, 1}, {5, 1, 4},
	{5, 4, 7}, {6, 7, 4},
}

// CellCorners returns the eight corners of (i,j,k).
func (g *Grid) CellCorners(i, j, k int) ([8]Point, error) {
	if !g.dims.Contains(i, j, k) {
		return [8]Point{}, outOfRange(g.dims, i, j, k)
	}
	return g.corners(i, j, k), nil
}

func (g *Grid) corners(i, j, k int) [8]Point {
	var pts [8]Point
	for c := range pts {
		pts[c] = g.pillarPoint(i+(c&1), j+((c>>1)&1), g.zcorn[g.ZcornIndex(i, j, k, c)])
	}
	return pts
}

// pillarPoint returns the point at depth z on pillar (pi,pj).
func (g *Grid) pillarPoint(pi, pj int, z float64) Point {
	p := g.coord[6*(pj*(g.dims.NX+1)+pi):]
	x1, y1, z1 := p[0], p[1], p[2]
	x2, y2, z2 := p[3], p[4], p[5]

	if math.Abs(z2-z1) < pillarEpsilon {
		return Point{X: x1, Y: y1, Z: z}
	}
	t := (z - z1) / (z2 - z1)
	return Point{X: x1 + t*(x2-x1), Y: y1 + t*(y2-y1), Z: z}
}

func center(pts [8]Point) Point {
	var c Point
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1.0 / 8)
}

// CellCenter returns the mean of the eight corners of (i,j,k).
func (g *Grid) CellCenter(i, j, k int) (Point, error) {
	pts, err := g.CellCorners(i, j, k)
	if err != nil {
		return Point{}, err
	}
	return center(pts), nil
}

// CellVolume returns the volume of (i,j,k). The cell is split into twelve
// tetrahedra around its centre and the signed volumes are summed, so
// twisted and inside-out cells still give a finite value. Pinched cells
// have zero volume.
func (g *Grid) CellVolume(i, j, k int) (float64, error) {
	pts, err := g.CellCorners(i, j, k)
	if err != nil {
		return 0, err
	}
	return hexahedronVolume(pts), nil
}

func hexahedronVolume(pts [8]Point) float64 {
	c := center(pts)
	var sum float64
	for _, t := range tetrahedra {
		sum += tetrahedronVolume6(c, pts[t[0]], pts[t[1]], pts[t[2]])
	}
	v := math.Abs(sum) / 6
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// tetrahedronVolume6 returns six times the signed volume of abcd.
func tetrahedronVolume6(a, b, c, d Point) float64 {
	ad := a.Sub(d)
	bd := b.Sub(d)
	cd := c.Sub(d)
	return ad.Dot(bd.Cross(cd))
}

// CellBoundingBox returns the axis aligned box around the corners of
// (i,j,k).
func (g *Grid) CellBoundingBox(i, j, k int) (BoundingBox, error) {
	pts, err := g.CellCorners(i, j, k)
	if err != nil {
		return BoundingBox{}, err
	}
	return boundingBox(pts), nil
}

func boundingBox(pts [8]Point) BoundingBox {
	box := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box.Min = Point{math.Min(box.Min.X, p.X), math.Min(box.Min.Y, p.Y), math.Min(box.Min.Z, p.Z)}
		box.Max = Point{math.Max(box.Max.X, p.X), math.Max(box.Max.Y, p.Y), math.Max(box.Max.Z, p.Z)}
	}
	return box
}

// CellDepth returns the depth of the centre of (i,j,k).
func (g *Grid) CellDepth(i, j, k int) (float64, error) {
	c, err := g.CellCenter(i, j, k)
	if err != nil {
		return 0, err
	}
	return c.Z, nil
}

// CellThickness returns the mean vertical extent of (i,j,k) along its four
// pillars.
func (g *Grid) CellThickness(i, j, k int) (float64, error) {
	if !g.dims.Contains(i, j, k) {
		return 0, outOfRange(g.dims, i, j, k)
	}
	var sum float64
	for c := 0; c < 4; c++ {
		sum += g.zcorn[g.ZcornIndex(i, j, k, c+4)] - g.zcorn[g.ZcornIndex(i, j, k, c)]
	}
	return sum / 4, nil
}

// FacesTouch reports whether face f of (i,j,k) coincides with the facing
// face of the neighbouring cell: each of the four shared corner pairs must
// agree within tol on every coordinate. It is false when the neighbour is
// outside the grid.
func (g *Grid) FacesTouch(i, j, k int, f Face, tol float64) bool {
	if int(f) >= len(Faces) {
		return false
	}
	off := f.Offset()
	ni, nj, nk := i+off.I, j+off.J, k+off.K
	if !g.dims.Contains(i, j, k) || !g.dims.Contains(ni, nj, nk) {
		return false
	}

	a := g.corners(i, j, k)
	b := g.corners(ni, nj, nk)
	own, other := faceCorners[f], faceCorners[f.Opposite()]
	for m := range own {
		if !a[own[m]].Near(b[other[m]], tol) {
			return false
		}
	}
	return true
}

// containsEpsilon is the relative tolerance of the containment tests.
const containsEpsilon = 1e-9

// CellContains reports whether p lies inside or on the boundary of (i,j,k).
// The cell is split into the twelve tetrahedra used by CellVolume, so a
// point on a face shared by two cells is contained in both.
func (g *Grid) CellContains(i, j, k int, p Point) bool {
	if !g.dims.Contains(i, j, k) {
		return false
	}
	return cellContains(g.corners(i, j, k), p)
}

// FindCell returns the first cell in natural order that contains p.
// Inactive cells are searched too.
func (g *Grid) FindCell(p Point) (IJK, bool) {
	for n := 0; n < g.dims.Cells(); n++ {
		c := g.IJK(n)
		if cellContains(g.corners(c.I, c.J, c.K), p) {
			return c, true
		}
	}
	return IJK{}, false
}

func cellContains(pts [8]Point, p Point) bool {
	box := boundingBox(pts)
	extent := box.Max.Sub(box.Min)
	if !box.Contains(p, containsEpsilon*math.Max(extent.X, math.Max(extent.Y, extent.Z))) {
		return false
	}

	c := center(pts)
	for _, t := range tetrahedra {
		if tetrahedronContains(c, pts[t[0]], pts[t[1]], pts[t[2]], p) {
			return true
		}
	}
	return false
}

// tetrahedronContains reports whether p is inside abcd: the four
// tetrahedra formed by replacing one vertex with p fill abcd exactly.
func tetrahedronContains(a, b, c, d, p Point) bool {
	vol := math.Abs(tetrahedronVolume6(a, b, c, d))
	if vol == 0 || math.IsNaN(vol) || math.IsInf(vol, 0) {
		return false
	}
	sum := math.Abs(tetrahedronVolume6(p, b, c, d)) +
		math.Abs(tetrahedronVolume6(a, p, c, d)) +
		math.Abs(tetrahedronVolume6(a, b, p, d)) +
		math.Abs(tetrahedronVolume6(a, b, c, p))
	return sum-vol <= containsEpsilon*vol
}
