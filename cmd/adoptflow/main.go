// Package main provides adoptflow, a command line view of the adoption status model.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "adoptflow",
		Short:         "Inspect the adoption status model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(tableCmd(), nextCmd(), checkCmd(), describeCmd())
	return cmd
}

func tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print every status with its color, progress and next statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tCOLOR\tPROGRESS\tUSER ACTION\tNEXT")
			for _, d := range adoptiontypes.DescribeAllStatuses() {
				fmt.Fprintf(w, "%s\t%s\t%d%%\t%t\t%s\n", d.Status, d.Color, d.Progress, d.CanUserTakeAction, joinStatuses(d.NextStatuses))
			}
			return w.Flush()
		},
	}
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next <status>",
		Short: "List the statuses that may follow status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parse(args[0])
			if err != nil {
				return err
			}
			for _, next := range domain.NextStatuses(status) {
				fmt.Fprintln(cmd.OutOrStdout(), next)
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <from> <to>",
		Short: "Report whether a transition is allowed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parse(args[0])
			if err != nil {
				return err
			}
			to, err := parse(args[1])
			if err != nil {
				return err
			}
			if _, err := domain.AttemptTransition(from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s allowed\n", from, to)
			return nil
		},
	}
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <status>",
		Short: "Print the derived properties of a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := domain.ParseStatus(args[0])
			d := adoptiontypes.DescribeStatus(status)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "status:\t%s\n", d.Status)
			fmt.Fprintf(w, "known:\t%t\n", d.Known)
			fmt.Fprintf(w, "message:\t%s\n", d.Message)
			fmt.Fprintf(w, "color:\t%s\n", d.Color)
			fmt.Fprintf(w, "progress:\t%d%%\n", d.Progress)
			fmt.Fprintf(w, "user action:\t%t\n", d.CanUserTakeAction)
			fmt.Fprintf(w, "terminal:\t%t\n", d.Terminal)
			fmt.Fprintf(w, "next:\t%s\n", joinStatuses(d.NextStatuses))
			return w.Flush()
		},
	}
}

func parse(raw string) (domain.Status, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return status, fmt.Errorf("unknown status %q", raw)
	}
	return status, nil
}

func joinStatuses(statuses []domain.Status) string {
	if len(statuses) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(statuses, func(s domain.Status, _ int) string { return string(s) }), ", ")
}
