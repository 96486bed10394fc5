// Package cmd wires the poise command tree
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli"
	"github.com/poisepms/poise/internal/cli/project"
)

// NewRootCmd builds the poise command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "poise",
		Short: "Poise - project management for a structural engineering firm",
		Long: `Poise keeps track of construction projects: their sites, customers,
contractors and architects, fees and payments, deadlines and completion.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	return rootCmd
}

// Execute runs the command tree
func Execute() error {
	return NewRootCmd().Execute()
}
