package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	internalstate "github.com/alexisbeaulieu97/barbar/internal/state"
)

type stateOptions struct {
	json     bool
	category string
}

type buttonStateJSON struct {
	Key     string `json:"key"`
	State   string `json:"state"`
	Command string `json:"command,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Timer   *int   `json:"timer,omitempty"`
}

func newStateCmd(flags *rootFlags) *cobra.Command {
	opts := &stateOptions{}

	cmd := &cobra.Command{
		Use:   "state [key...]",
		Short: "Evaluate button conditions against the current variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(cmd, flags, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output results in JSON format")
	cmd.Flags().StringVar(&opts.category, "category", "", "Only show buttons tagged with this category")

	return cmd
}

func runState(cmd *cobra.Command, flags *rootFlags, opts *stateOptions, keys []string) error {
	app, err := loadApp(cmd, flags, nil)
	if err != nil {
		return err
	}

	defs, err := app.buttons()
	if err != nil {
		return err
	}
	vars, err := app.vars()
	if err != nil {
		return err
	}

	selected, err := selectButtons(defs, keys, opts.category)
	if err != nil {
		return err
	}

	rows := make([]buttonStateJSON, 0, len(selected))
	for _, def := range selected {
		name := app.service.DetermineState(def, vars)
		row := buttonStateJSON{
			Key:     def.Key,
			State:   name.String(),
			Command: def.Command(name),
			Tooltip: def.Tooltip(name),
		}
		if spec, ok := def.State(name); ok && spec.HasTimer() {
			secs := app.service.Timer(spec.Timer, vars)
			row.Timer = &secs
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No buttons configured.")
		return nil
	}
	for _, row := range rows {
		timer := "-"
		if row.Timer != nil {
			if text := internalstate.FormatTime(*row.Timer); text != "" {
				timer = text
			}
		}
		command := row.Command
		if command == "" {
			command = "-"
		}
		fmt.Fprintf(out, "%-24s %-18s %-6s %s\n", row.Key, row.State, timer, command)
	}
	return nil
}

func selectButtons(defs []config.ButtonDefinition, keys []string, category string) ([]config.ButtonDefinition, error) {
	byKey := make(map[string]config.ButtonDefinition, len(defs))
	for _, def := range defs {
		byKey[def.Key] = def
	}

	var selected []config.ButtonDefinition
	if len(keys) == 0 {
		selected = defs
	} else {
		for _, key := range keys {
			def, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("unknown button %q", key)
			}
			selected = append(selected, def)
		}
	}

	if category == "" {
		return selected, nil
	}
	filtered := selected[:0:0]
	for _, def := range selected {
		if def.Category.Has(category) {
			filtered = append(filtered, def)
		}
	}
	return filtered, nil
}
