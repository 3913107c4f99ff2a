package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a rupture document and print its model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.newReader(args[0])
			if err != nil {
				return err
			}
			r, err := reader.Read()
			if err != nil {
				if asJSON {
					if jsonErr := writeJSON(cmd, newFailureJSON(args[0], err)); jsonErr != nil {
						return jsonErr
					}
				}
				return err
			}

			summary := rupture.Summarize(r)
			if asJSON {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderFields(summaryFields(summary)))
			for _, section := range []struct {
				title  string
				points []geo.Location
			}{
				{"Trace", summary.Trace},
				{"Top edge", summary.TopEdge},
				{"Bottom edge", summary.BottomEdge},
			} {
				if len(section.points) == 0 {
					continue
				}
				fmt.Fprintf(out, "\n%s\n%s\n", section.title, renderLocations(section.points))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func summaryFields(s rupture.Summary) [][2]string {
	fields := [][2]string{
		{"Source", s.Source},
		{"Surface", kindLabel(s.Kind)},
		{"Magnitude", formatFloat(s.Magnitude)},
		{"Tectonic region", s.TectonicRegion},
		{"Rake", formatFloat(s.Rake)},
	}
	if s.Hypocenter != nil {
		fields = append(fields, [2]string{"Hypocenter", s.Hypocenter.String()})
	}
	optional := []struct {
		label string
		value *float64
	}{
		{"Strike", s.Strike},
		{"Dip", s.Dip},
		{"Upper seismogenic depth", s.UpperDepth},
		{"Lower seismogenic depth", s.LowerDepth},
		{"Grid spacing", s.GridSpacing},
	}
	for _, o := range optional {
		if o.value != nil {
			fields = append(fields, [2]string{o.label, formatFloat(*o.value)})
		}
	}
	fields = append(fields, [2]string{"Points", strconv.Itoa(s.PointCount)})
	return fields
}

func renderLocations(points []geo.Location) string {
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatFloat(p.Longitude),
			formatFloat(p.Latitude),
			formatFloat(p.Depth),
		})
	}
	return renderTable(
		[]string{"#", "Longitude", "Latitude", "Depth (km)"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	)
}
