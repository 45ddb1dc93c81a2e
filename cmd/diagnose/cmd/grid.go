package cmd

import (
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-resdata/grid"
	"github.com/robert-malhotra/go-resdata/internal/ctxlog"
	"github.com/robert-malhotra/go-resdata/resdata"
)

var gridCmd = &cobra.Command{
	Use:   "grid <egrid>",
	Short: "Summarise a corner-point grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrid(cmd, args[0])
		if err != nil {
			return err
		}

		dims := g.Dimensions()
		var volume float64
		var box grid.BoundingBox
		first := true
		for k := 0; k < dims.NZ; k++ {
			for j := 0; j < dims.NY; j++ {
				for i := 0; i < dims.NX; i++ {
					if !g.IsActive(i, j, k) {
						continue
					}
					v, err := g.CellVolume(i, j, k)
					if err != nil {
						return err
					}
					volume += v

					b, err := g.CellBoundingBox(i, j, k)
					if err != nil {
						return err
					}
					if first {
						box, first = b, false
					} else {
						box = box.Union(b)
					}
				}
			}
		}

		printf(cmd, "dimensions:   %s\n", dims)
		printf(cmd, "cells:        %d\n", dims.Cells())
		printf(cmd, "active:       %d\n", g.ActiveCount())
		printf(cmd, "bulk volume:  %.6g\n", volume)
		printf(cmd, "fingerprint:  %016x\n", g.Fingerprint())
		if !first {
			printf(cmd, "extent:       x [%g, %g]  y [%g, %g]  z [%g, %g]\n",
				box.Min.X, box.Max.X, box.Min.Y, box.Max.Y, box.Min.Z, box.Max.Z)
		}
		return nil
	},
}

func loadGrid(cmd *cobra.Command, path string) (*grid.Grid, error) {
	logger := ctxlog.FromContext(cmd.Context())
	store, err := resdata.ReadFile(path, resdata.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return grid.FromStore(store, grid.WithLogger(logger))
}

func init() {
	rootCmd.AddCommand(gridCmd)
}
