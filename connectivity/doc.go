// Package connectivity labels fault blocks and builds cell regions on a
// corner-point grid.
//
// Two active cells in the same layer are connected when they are
// structural neighbours along i or j and their shared face coincides
// geometrically. A fault block is a maximal set of connected cells. Blocks
// are found by flood fill, seeded in natural cell order, and numbered from
// one; zero marks inactive or excluded cells.
//
//	eng := connectivity.New(g, connectivity.WithTolerance(1e-4))
//	layer, err := eng.FaultBlocks(0)
//	for _, b := range layer.Blocks() {
//		fmt.Println(b.ID, len(b.Cells))
//	}
//
// Labelings can be cached in memory or persistently in a pebble database,
// keyed by the grid fingerprint, the tolerance and the layer.
package connectivity
