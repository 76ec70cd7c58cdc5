package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/barbar/internal/variant"
)

type variantOptions struct {
	sheet string
	icon  int
}

func newVariantCmd() *cobra.Command {
	opts := &variantOptions{}

	cmd := &cobra.Command{
		Use:   "variant [descriptor]",
		Short: "Show the canonical form of a variant descriptor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			d := variant.Parse(raw)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "canonical: %s\n", d.Canonical())
			fmt.Fprintf(out, "grayscale: %t\n", d.Grayscale)
			switch d.Border.Kind {
			case variant.BorderSolid:
				fmt.Fprintf(out, "border:    solid #%02x%02x%02x width %d\n",
					d.Border.Start.R, d.Border.Start.G, d.Border.Start.B, variant.ClampWidth(d.Width))
			case variant.BorderGradient:
				fmt.Fprintf(out, "border:    gradient #%02x%02x%02x -> #%02x%02x%02x width %d\n",
					d.Border.Start.R, d.Border.Start.G, d.Border.Start.B,
					d.Border.End.R, d.Border.End.G, d.Border.End.B, variant.ClampWidth(d.Width))
			default:
				fmt.Fprintln(out, "border:    none")
			}
			if opts.sheet != "" {
				fmt.Fprintf(out, "key:       %s\n", variant.CacheKey(opts.sheet, opts.icon, d))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Sprite sheet to compute the cache key for")
	cmd.Flags().IntVar(&opts.icon, "icon", 1, "Icon index to compute the cache key for")

	return cmd
}
