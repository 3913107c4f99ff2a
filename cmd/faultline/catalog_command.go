package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"faultline/internal/catalog"
)

type entryJSON struct {
	ID             int64    `json:"id"`
	RunID          string   `json:"run_id"`
	Source         string   `json:"source"`
	Outcome        string   `json:"outcome"`
	SurfaceKind    string   `json:"surface_kind,omitempty"`
	Magnitude      *float64 `json:"magnitude,omitempty"`
	TectonicRegion string   `json:"tectonic_region,omitempty"`
	Rake           *float64 `json:"rake,omitempty"`
	PointCount     int      `json:"point_count"`
	ErrorKind      string   `json:"error_kind,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	ReadAt         string   `json:"read_at"`
}

type runJSON struct {
	ID          string  `json:"id"`
	Root        string  `json:"root"`
	GridSpacing float64 `json:"grid_spacing"`
	StartedAt   string  `json:"started_at"`
	FinishedAt  string  `json:"finished_at,omitempty"`
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect recorded scan runs",
	}
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogRunsCommand(ctx))
	return catalogCmd
}

func openCatalog(ctx *commandContext) (*catalog.Store, error) {
	cfg := ctx.configValue()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if !cfg.Catalog.Enabled {
		return nil, fmt.Errorf("catalog is disabled (set catalog.enabled = true)")
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return store, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var runID string
	var failedOnly bool
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded document reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), catalog.Filter{
				RunID:      runID,
				FailedOnly: failedOnly,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			if asJSON {
				payload := make([]entryJSON, 0, len(entries))
				for _, e := range entries {
					payload = append(payload, entryJSON{
						ID:             e.ID,
						RunID:          e.RunID,
						Source:         e.Source,
						Outcome:        string(e.Outcome),
						SurfaceKind:    e.SurfaceKind,
						Magnitude:      e.Magnitude,
						TectonicRegion: e.TectonicRegion,
						Rake:           e.Rake,
						PointCount:     e.PointCount,
						ErrorKind:      e.ErrorKind,
						ErrorMessage:   e.ErrorMessage,
						ReadAt:         e.ReadAt.Format(time.RFC3339),
					})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries recorded")
				return nil
			}
			color := shouldColorize(out)
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					shortID(e.RunID),
					e.Source,
					outcomeLabel(e.Outcome, color),
					orDash(e.SurfaceKind),
					formatOptional(e.Magnitude),
					orDash(e.ErrorKind),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Run", "Source", "Status", "Surface", "Magnitude", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Only entries from this run")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only failed reads")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newCatalogRunsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded scan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				payload := make([]runJSON, 0, len(runs))
				for _, r := range runs {
					item := runJSON{
						ID:          r.ID,
						Root:        r.Root,
						GridSpacing: r.GridSpacing,
						StartedAt:   r.StartedAt.Format(time.RFC3339),
					}
					if r.FinishedAt != nil {
						item.FinishedAt = r.FinishedAt.Format(time.RFC3339)
					}
					payload = append(payload, item)
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				finished := "-"
				if r.FinishedAt != nil {
					finished = r.FinishedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{
					r.ID,
					r.Root,
					formatFloat(r.GridSpacing),
					r.StartedAt.Local().Format(time.DateTime),
					finished,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Root", "Spacing", "Started", "Finished"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// shortID trims a run uuid to its first block for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
