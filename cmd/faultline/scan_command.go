package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"faultline/internal/catalog"
	"faultline/internal/config"
	"faultline/internal/logging"
	"faultline/internal/rupture"
)

type scanResult struct {
	path    string
	rupture *rupture.Rupture
	err     error
	readAt  time.Time
}

type scanSummaryJSON struct {
	RunID    string            `json:"run_id"`
	Root     string            `json:"root"`
	Total    int               `json:"total"`
	Failed   int               `json:"failed"`
	Ruptures []rupture.Summary `json:"ruptures"`
	Failures []failureJSON     `json:"failures"`
	Catalog  string            `json:"catalog,omitempty"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var noCatalog bool
	var workers int

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Read every rupture document under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if workers > 0 {
				cfg.Scan.Workers = workers
			}
			root := args[0]

			paths, err := findDocuments(root, cfg.Scan.Pattern)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			startedAt := time.Now()
			runCtx := logging.WithRunID(cmd.Context(), runID)
			logger := logging.WithContext(runCtx, ctx.componentLogger("scan"))
			logger.Info("scan started",
				logging.String("root", root),
				logging.Int("documents", len(paths)),
				logging.Int("workers", cfg.Scan.Workers),
			)

			results, err := readAll(runCtx, ctx, paths, cfg.Scan.Workers)
			if err != nil {
				return err
			}

			var catalogPath string
			if cfg.Catalog.Enabled && !noCatalog {
				if err := recordRun(runCtx, cfg, runID, root, startedAt, results); err != nil {
					return err
				}
				catalogPath = cfg.Catalog.Path
			}

			failed := 0
			for _, res := range results {
				if res.err != nil {
					failed++
					docLogger := logging.WithContext(logging.WithSource(runCtx, res.path), ctx.componentLogger("scan"))
					docLogger.Debug("document failed",
						logging.String(logging.FieldErrorKind, newFailureJSON(res.path, res.err).Kind),
						logging.Error(res.err),
					)
				}
			}
			logger.Info("scan finished",
				logging.Int("documents", len(results)),
				logging.Int("failed", failed),
			)

			if asJSON {
				payload := scanSummaryJSON{
					RunID:    runID,
					Root:     root,
					Total:    len(results),
					Failed:   failed,
					Ruptures: []rupture.Summary{},
					Failures: []failureJSON{},
					Catalog:  catalogPath,
				}
				for _, res := range results {
					if res.err != nil {
						payload.Failures = append(payload.Failures, newFailureJSON(res.path, res.err))
						continue
					}
					payload.Ruptures = append(payload.Ruptures, rupture.Summarize(res.rupture))
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				rel, relErr := filepath.Rel(root, res.path)
				if relErr != nil {
					rel = res.path
				}
				if res.err != nil {
					rows = append(rows, []string{
						rel, "-", "-", "-",
						outcomeLabel(catalog.OutcomeFailed, color),
						newFailureJSON(res.path, res.err).Kind,
					})
					continue
				}
				rows = append(rows, []string{
					rel,
					kindLabel(res.rupture.Kind()),
					formatFloat(res.rupture.Magnitude),
					res.rupture.TectonicRegion.String(),
					outcomeLabel(catalog.OutcomeOK, color),
					"",
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Document", "Surface", "Magnitude", "Region", "Status", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Run %s: %s, %d failed\n", runID, countLabel(len(results), "document"), failed)
			if catalogPath != "" {
				fmt.Fprintf(out, "Recorded in %s\n", catalogPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "Do not record the run in the catalog")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel reads (overrides scan.workers)")
	return cmd
}

// findDocuments walks root and returns files whose base name matches pattern,
// sorted.
func findDocuments(root, pattern string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// readAll reads every path with at most workers concurrent reads. Read
// failures are captured per document; only cancellation aborts the scan.
func readAll(ctx context.Context, cc *commandContext, paths []string, workers int) ([]scanResult, error) {
	results := make([]scanResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := scanResult{path: path}
			reader, err := cc.newReader(path)
			if err == nil {
				res.rupture, err = reader.Read()
			}
			res.err = err
			res.readAt = time.Now()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func recordRun(ctx context.Context, cfg *config.Config, runID, root string, startedAt time.Time, results []scanResult) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	lock, err := catalog.AcquireLock(cfg.Catalog.Path)
	if err != nil {
		if errors.Is(err, catalog.ErrLocked) {
			return fmt.Errorf("record scan: %w (another scan is writing %s)", err, cfg.Catalog.Path)
		}
		return err
	}
	defer lock.Release()

	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	entries := make([]catalog.Entry, 0, len(results))
	for _, res := range results {
		entries = append(entries, catalog.NewEntry(runID, res.path, res.rupture, res.err, res.readAt))
	}
	return store.RecordRun(ctx, catalog.Run{
		ID:          runID,
		Root:        root,
		GridSpacing: cfg.Reader.GridSpacing,
		StartedAt:   startedAt,
	}, entries, time.Now())
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
