package grid

import (
	"fmt"
	"math"
)

// Dimensions are the cell counts of a grid along each axis.
type Dimensions struct {
	NX, NY, NZ int
}

// Cells returns the total number of cells.
func (d Dimensions) Cells() int {
	return d.NX * d.NY * d.NZ
}

// Pillars returns the number of pillars, (nx+1)*(ny+1).
func (d Dimensions) Pillars() int {
	return (d.NX + 1) * (d.NY + 1)
}

// CoordLen returns the required length of COORD.
func (d Dimensions) CoordLen() int {
	return 6 * d.Pillars()
}

// ZcornLen returns the required length of ZCORN.
func (d Dimensions) ZcornLen() int {
	return 8 * d.Cells()
}

// Valid reports whether every count is positive.
func (d Dimensions) Valid() bool {
	return d.NX > 0 && d.NY > 0 && d.NZ > 0
}

// Contains reports whether (i,j,k) addresses a cell.
func (d Dimensions) Contains(i, j, k int) bool {
	return i >= 0 && i < d.NX && j >= 0 && j < d.NY && k >= 0 && k < d.NZ
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.NX, d.NY, d.NZ)
}

// Point is a position in model coordinates.
type Point struct {
	X, Y, Z float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }

func (p Point) Cross(q Point) Point {
	return Point{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Near reports whether every coordinate of p and q differs by at most tol.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}

// IJK is a structured cell address.
type IJK struct {
	I, J, K int
}

func (c IJK) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.I, c.J, c.K)
}

// Face identifies one of the six faces of a cell.
type Face uint8

const (
	FaceIMinus Face = iota
	FaceIPlus
	FaceJMinus
	FaceJPlus
	FaceKMinus
	FaceKPlus
)

// Faces lists every face in neighbour order.
var Faces = [6]Face{FaceIMinus, FaceIPlus, FaceJMinus, FaceJPlus, FaceKMinus, FaceKPlus}

// faceCorners lists, for each face, the corners of the cell lying on it.
// The corners at the same position of the opposite face of the
// neighbouring cell are the ones they must coincide with.
var faceCorners = [6][4]int{
	FaceIMinus: {0, 2, 4, 6},
	FaceIPlus:  {1, 3, 5, 7},
	FaceJMinus: {0, 1, 4, 5},
	FaceJPlus:  {2, 3, 6, 7},
	FaceKMinus: {0, 1, 2, 3},
	FaceKPlus:  {4, 5, 6, 7},
}

var faceOffsets = [6]IJK{
	FaceIMinus: {-1, 0, 0},
	FaceIPlus:  {1, 0, 0},
	FaceJMinus: {0, -1, 0},
	FaceJPlus:  {0, 1, 0},
	FaceKMinus: {0, 0, -1},
	FaceKPlus:  {0, 0, 1},
}

// Opposite returns the face on the other side of the cell.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Offset returns the index step to the neighbour across f.
func (f Face) Offset() IJK {
	return faceOffsets[f]
}

func (f Face) String() string {
	switch f {
	case FaceIMinus:
		return "I-"
	case FaceIPlus:
		return "I+"
	case FaceJMinus:
		return "J-"
	case FaceJPlus:
		return "J+"
	case FaceKMinus:
		return "K-"
	case FaceKPlus:
		return "K+"
	default:
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
}

// Neighbor is a structurally adjacent cell and the face it lies across.
type Neighbor struct {
	IJK
	Face Face
}

// BoundingBox is an axis aligned box.
type BoundingBox struct {
	Min, Max Point
}

// Contains reports whether p lies in b grown by tol on every side.
func (b BoundingBox) Contains(p Point, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}

// Union returns the smallest box containing b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Point{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Point{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}
