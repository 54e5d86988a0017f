package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"countdown_timers/internal/models"
	"countdown_timers/internal/service"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print completed timers, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openOffline()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := service.NewHistoryService(store.repos.History).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		return printHistory(cmd.OutOrStdout(), entries)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openOffline()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := service.NewHistoryService(store.repos.History).Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func printHistory(w io.Writer, entries []models.HistoryEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tCATEGORY\tCOMPLETED")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, e.Name, e.Category, e.CompletedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
