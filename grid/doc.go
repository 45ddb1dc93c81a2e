// Package grid reconstructs corner-point grids and answers geometric
// queries about their cells.
//
// A corner-point grid is defined by a set of straight pillars and, for
// every cell, the depth of each of its eight corners along the four
// pillars that bound it. Cells in neighbouring columns do not have to
// share corner depths, which is how faults are represented: two cells are
// structural neighbours but their shared face does not coincide.
//
// # Corner Order
//
// Corners are numbered 0..3 on the top face and 4..7 on the bottom face.
// Within a face the order is (i,j), (i+1,j), (i,j+1), (i+1,j+1):
//
//	  2---3        6---7
//	  |   |  top   |   |  bottom
//	  0---1        4---5
//
// # Arrays
//
//   - COORD holds six values per pillar: the top and bottom endpoint
//     (x1,y1,z1,x2,y2,z2), pillars ordered with i fastest.
//   - ZCORN holds eight depths per cell in the interleaved simulator
//     layout, two values per cell along i, two rows per cell along j and
//     two sheets per layer.
//   - ACTNUM, when present, holds one flag per cell; non-zero is active.
package grid
