// Package project holds all cli commands related to projects
//
// e.g., poise project ...
package project

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli"
	"github.com/poisepms/poise/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage construction projects",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeadlineCmd())
	cmd.AddCommand(PayCmd())
	cmd.AddCommand(ContractorCmd())
	cmd.AddCommand(FinalizeCmd())

	return cmd
}

// addOutputFlags registers the agent-friendly flags every subcommand takes
func addOutputFlags(cmd *cobra.Command, quietHelp string) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, quietHelp)
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// openCLI initializes the CLI for a command run. The returned release func
// must be deferred by the caller.
func openCLI(cmd *cobra.Command, formatter *cli.OutputFormatter) (*cli.CLI, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, formatter.Fail(err)
	}
	release := func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}
	return cliInstance, release, nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}
}

// writeProject prints p in the formatter's mode. human is only called for
// human-readable output.
func writeProject(formatter *cli.OutputFormatter, p *models.Project, extra map[string]interface{}, human func()) error {
	if formatter.Quiet {
		return formatter.Success(p)
	}

	if formatter.JSON {
		payload := map[string]interface{}{
			"success": true,
			"project": p.View(),
		}
		for k, v := range extra {
			payload[k] = v
		}
		return json.NewEncoder(os.Stdout).Encode(payload)
	}

	human()
	return nil
}
