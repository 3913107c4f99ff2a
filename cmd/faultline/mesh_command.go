package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"faultline/internal/geo"
	"faultline/internal/mesh"
)

type meshJSON struct {
	Source   string         `json:"source"`
	Kind     string         `json:"kind"`
	Rows     int            `json:"rows"`
	Cols     int            `json:"cols"`
	MinDepth float64        `json:"min_depth"`
	MaxDepth float64        `json:"max_depth"`
	Points   []geo.Location `json:"points,omitempty"`
}

func newMeshCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var withPoints bool

	cmd := &cobra.Command{
		Use:   "mesh <file>",
		Short: "Read a rupture document and grid its surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.newReader(args[0])
			if err != nil {
				return err
			}
			r, err := reader.Read()
			if err != nil {
				return err
			}
			grid, err := mesh.Build(r.Surface)
			if err != nil {
				return fmt.Errorf("mesh %s: %w", args[0], err)
			}
			lo, hi := grid.DepthRange()

			if asJSON {
				payload := meshJSON{
					Source:   r.Source,
					Kind:     string(r.Kind()),
					Rows:     grid.Rows(),
					Cols:     grid.Cols(),
					MinDepth: lo,
					MaxDepth: hi,
				}
				if withPoints {
					payload.Points = grid.Points()
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderFields([][2]string{
				{"Source", r.Source},
				{"Surface", kindLabel(r.Kind())},
				{"Grid spacing", formatFloat(reader.GridSpacing())},
				{"Rows (down dip)", strconv.Itoa(grid.Rows())},
				{"Columns (along strike)", strconv.Itoa(grid.Cols())},
				{"Depth range (km)", fmt.Sprintf("%s - %s", formatFloat(lo), formatFloat(hi))},
			}))
			if withPoints {
				fmt.Fprintf(out, "\nPoints\n%s\n", renderLocations(grid.Points()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&withPoints, "points", false, "Include every grid point")
	return cmd
}
