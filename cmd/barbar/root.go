package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configDir string
	assetDir  string
	cacheDir  string
	logLevel  string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "barbar",
		Short:         "BarBar renders sprite-sheet icon variants for a state-driven button bar",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "Directory holding barbar.yaml (default ~/.barbar)")
	cmd.PersistentFlags().StringVar(&flags.assetDir, "assets", "", "Override the sprite sheet directory")
	cmd.PersistentFlags().StringVar(&flags.cacheDir, "cache-dir", "", "Override the variant cache directory")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newVariantCmd())
	cmd.AddCommand(newPregenerateCmd(flags))
	cmd.AddCommand(newCacheCmd(flags))
	cmd.AddCommand(newStateCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
