package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
	"github.com/poisepms/poise/internal/models"
)

// DeadlineCmd returns the project deadline subcommand
func DeadlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadline <number|name> <YYYY-MM-DD>",
		Short: "Change a project's deadline",
		Long: `Change the deadline of an open project.

Examples:
  poise project deadline 12 2031-01-31
  poise project deadline "House Doe" 2031-01-31 --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runDeadline,
	}

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func runDeadline(cmd *cobra.Command, args []string) error {
	formatter := formatterFor(cmd)

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	service := cliInstance.App.ProjectService
	p, err := service.FindForEdit(args[0])
	if err != nil {
		return formatter.Fail(err)
	}
	if err := service.UpdateDeadline(cmd.Context(), p, args[1]); err != nil {
		return formatter.Fail(err)
	}

	return writeProject(formatter, p, nil, func() {
		fmt.Printf("%s Deadline of project %d set to %s\n",
			styles.SuccessStyle.Render("✓"), p.Number(), models.FormatDate(p.Deadline()))
	})
}
