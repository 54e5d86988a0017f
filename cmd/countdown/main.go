// Command countdown runs the countdown timer service and inspects its
// stored state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Countdown timers with categories, alerts and history",
	Long: `countdown keeps a set of named countdown timers, ticks the running ones
once per second, raises halfway and completion alerts and records every
completed timer in a history log. Without a subcommand it runs the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: configs/config.yml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(timersCmd)
	rootCmd.AddCommand(historyCmd)
}
