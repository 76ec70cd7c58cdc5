package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the variant cache",
	}

	cmd.AddCommand(newCacheStatsCmd(flags))
	cmd.AddCommand(newCacheListCmd(flags))
	cmd.AddCommand(newCacheClearCmd(flags))

	return cmd
}

type cacheStatsJSON struct {
	Dir       string `json:"dir"`
	Artifacts int    `json:"artifacts"`
	Bytes     int64  `json:"bytes"`
	Manifest  int    `json:"manifest_entries"`
}

func newCacheStatsCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the on-disk cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			stats, err := app.service.CacheStats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dir := app.settings.ResolvedCacheDir()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(cacheStatsJSON{
					Dir:       dir,
					Artifacts: stats.Artifacts,
					Bytes:     stats.Bytes,
					Manifest:  stats.Manifest,
				})
			}

			fmt.Fprintf(out, "Cache:     %s\n", dir)
			fmt.Fprintf(out, "Artifacts: %d (%s)\n", stats.Artifacts, formatBytes(stats.Bytes))
			fmt.Fprintf(out, "Manifest:  %d entries\n", stats.Manifest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results in JSON format")

	return cmd
}

func newCacheListCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the rendered variants recorded in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			entries := app.service.CacheEntries()
			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty.")
				return nil
			}
			for _, e := range entries {
				variantRaw := e.VariantRaw
				if variantRaw == "" {
					variantRaw = "-"
				}
				fmt.Fprintf(out, "%-40s %-20s %3d  %-24s %s\n",
					e.CachePath, e.SheetID, e.IconIndex, variantRaw,
					time.Unix(e.CreatedAt, 0).Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results in JSON format")

	return cmd
}

func newCacheClearCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every rendered variant and reset the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			if err := app.service.ClearCache(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
