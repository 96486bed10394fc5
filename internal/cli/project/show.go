package project

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <number|name>",
		Short: "Show a project",
		Long: `Show every field of a project, finalised or not.

A numeric argument is looked up as a project number only. Anything else
matches project names case-insensitively; the first match wins.

Examples:
  poise project show 12
  poise project show "house doe" --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := formatterFor(cmd)

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	p, err := cliInstance.App.ProjectService.FindProject(args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	return writeProject(formatter, p, nil, func() {
		fmt.Println(renderProject(p, cliInstance.Currency()))
	})
}
