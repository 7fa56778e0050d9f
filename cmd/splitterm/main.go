// Package main is the entry point for the splitterm terminal timer.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

const appName = "SplitCaster"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "splitterm",
		Short:   "Speed-run split timer for the terminal",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			routeFlag, _ := cmd.Flags().GetString("route")
			noHistory, _ := cmd.Flags().GetBool("no-history")
			return runTimer(cmd.Context(), routeFlag, !noHistory)
		},
	}
	root.PersistentFlags().String("route", "", "route file (default: the one named in settings.yaml)")
	root.Flags().Bool("no-history", false, "do not record finished runs")

	root.AddCommand(
		showCmd(),
		historyCmd(),
	)

	return root
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the route's bests without starting the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			routeFlag, _ := cmd.Flags().GetString("route")
			return showRoute(cmd.OutOrStdout(), routeFlag)
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			all, _ := cmd.Flags().GetBool("all")
			routeFlag, _ := cmd.Flags().GetString("route")
			return showHistory(cmd.Context(), cmd.OutOrStdout(), routeFlag, limit, all)
		},
	}
	cmd.Flags().Int("limit", 10, "number of attempts to list")
	cmd.Flags().Bool("all", false, "include attempts of every route")
	return cmd
}
