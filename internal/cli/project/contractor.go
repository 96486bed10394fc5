package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
)

// ContractorCmd returns the project contractor subcommand
func ContractorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contractor <number|name>",
		Short: "Replace a project's contractor",
		Long: `Replace the contractor of an open project. The previous contractor's
record is removed.

Examples:
  poise project contractor 12 --name "Bob Builder" --phone 0115550002 \
    --email bob@example.com --address "7 Yard Street"
`,
		Args: cobra.ExactArgs(1),
		RunE: runContractor,
	}

	// Required flags
	cmd.Flags().String("name", "", "Contractor name (required)")
	cmd.Flags().String("phone", "", "Contractor phone number (required)")
	cmd.Flags().String("email", "", "Contractor email address (required)")
	cmd.Flags().String("address", "", "Contractor physical address (required)")
	markRequired(cmd, "name", "phone", "email", "address")

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func runContractor(cmd *cobra.Command, args []string) error {
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
	if err := service.ReplaceContractor(cmd.Context(), p, contactFlags(cmd, "")); err != nil {
		return formatter.Fail(err)
	}

	return writeProject(formatter, p, nil, func() {
		fmt.Printf("%s Contractor of project %d is now %s\n",
			styles.SuccessStyle.Render("✓"), p.Number(), p.Contractor().Name())
	})
}
