package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var gridSpacingFlag float64
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &gridSpacingFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "faultline",
		Short:         "Read and inspect NRML seismic rupture documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().Float64Var(&gridSpacingFlag, "grid-spacing", 0, "Fault mesh grid spacing in km (overrides reader.grid_spacing)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newReadCommand(ctx))
	rootCmd.AddCommand(newMeshCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
