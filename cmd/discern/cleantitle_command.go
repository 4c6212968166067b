package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"discern/internal/titleclean"
)

func newCleanTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-title <raw-label>",
		Short: "Show how a raw disc label cleans up for searching",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			cleaned := titleclean.Clean(raw)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Raw:        %s\n", raw)
			fmt.Fprintf(out, "Cleaned:    %s\n", cleaned)
			fmt.Fprintf(out, "Aggressive: %s\n", titleclean.AggressiveClean(raw))
			fmt.Fprintf(out, "Display:    %s\n", titleclean.Display(cleaned))
			if titleclean.Generic(cleaned) {
				fmt.Fprintln(out, "Too generic to search; name search would be skipped.")
			}
			return nil
		},
	}
}
