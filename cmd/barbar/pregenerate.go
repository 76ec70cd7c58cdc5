package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type pregenerateOptions struct {
	json bool
}

type pregenerateJSON struct {
	Generated int      `json:"generated"`
	Errors    []string `json:"errors"`
	Duration  float64  `json:"duration_seconds"`
}

func newPregenerateCmd(flags *rootFlags) *cobra.Command {
	opts := &pregenerateOptions{}

	cmd := &cobra.Command{
		Use:   "pregenerate",
		Short: "Render every variant the configured buttons can show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPregenerate(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output results in JSON format")

	return cmd
}

func runPregenerate(cmd *cobra.Command, flags *rootFlags, opts *pregenerateOptions) error {
	app, err := loadApp(cmd, flags, nil)
	if err != nil {
		return err
	}

	defs, err := app.buttons()
	if err != nil {
		return err
	}

	start := time.Now()
	result := app.service.PregenerateAll(defs)
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	if opts.json {
		payload := pregenerateJSON{
			Generated: result.Generated,
			Errors:    result.Errors,
			Duration:  elapsed.Seconds(),
		}
		if payload.Errors == nil {
			payload.Errors = []string{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Generated %d variants for %d buttons in %s\n", result.Generated, len(defs), elapsed.Round(time.Millisecond))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  ✗ %s\n", e)
		}
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d variants failed to render", len(result.Errors))
	}
	return nil
}
