// Package cmd holds the CLI entry points.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fch",
	Short: "Calendar-constrained job-shop scheduler",
	Long: "fch compiles a multi-machine, multi-job scheduling problem into a " +
		"mixed-integer linear model, solves it for minimal makespan and prints " +
		"the resulting schedule.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
