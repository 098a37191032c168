package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jrhy/densemap/bench"
)

func getListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios and implementations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tKIND\tENTRIES\tREPEATS\tDESCRIPTION")
			for _, s := range bench.Scenarios() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.Name, s.Kind, len(s.Pairs), s.Repeats, s.Description)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "IMPLEMENTATION\tDESCRIPTION")
			for _, impl := range bench.Implementations() {
				fmt.Fprintf(w, "%s\t%s\n", impl.Name, impl.Description)
			}
			return w.Flush()
		},
	}
}
