package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/models"

	"github.com/spf13/cobra"
)

var flagJSON bool

var timersCmd = &cobra.Command{
	Use:   "timers",
	Short: "Print the stored timers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openOffline()
		if err != nil {
			return err
		}
		defer store.Close()

		timers, err := store.repos.Timers.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load timers: %w", err)
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), timers)
		}
		return printTimers(cmd.OutOrStdout(), timers)
	},
}

func init() {
	timersCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
	historyCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
}

// openOffline opens storage for a one-shot command with logging limited
// to errors.
func openOffline() (*storage, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return openStorage(cfg, logger.New(logger.ErrorLevel))
}

func printTimers(w io.Writer, timers []models.TimerRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tREMAINING\tPROGRESS\tSTATUS\tALERT")
	for _, t := range timers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\t%s\t%v\n",
			t.ID, t.Name, t.Category, formatClock(t.RemainingTime), t.Progress()*100, t.Status, t.HalfwayAlert)
	}
	return tw.Flush()
}

// formatClock renders seconds as MM:SS, or H:MM:SS from an hour up.
func formatClock(seconds int) string {
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
