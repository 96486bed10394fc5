package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
	"github.com/poisepms/poise/internal/models"
)

// FinalizeCmd returns the project finalize subcommand
func FinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finalize <number|name>",
		Aliases: []string{"finalise"},
		Short:   "Mark a project as complete",
		Long: `Stamp today's date as the completion date and rename the project.

When the customer still owes money a final invoice is printed.

Examples:
  poise project finalize 12
  poise project finalize "House Doe" --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runFinalize,
	}

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func runFinalize(cmd *cobra.Command, args []string) error {
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
	result, err := service.Finalize(cmd.Context(), p)
	if err != nil {
		return formatter.Fail(err)
	}

	extra := map[string]interface{}{"invoice": nil}
	if result.HasInvoice() {
		extra["invoice"] = map[string]interface{}{
			"customer": p.Customer().View(),
			"payable":  result.AmountDue.String(),
		}
	}

	currency := cliInstance.Currency()
	return writeProject(formatter, p, extra, func() {
		if result.HasInvoice() {
			fmt.Println(styles.RenderCard(renderMarkdown(invoiceMarkdown(p, result.AmountDue, currency))))
		}
		done, _ := p.CompletionDate()
		fmt.Printf("%s Project %d '%s' completed on %s\n",
			styles.SuccessStyle.Render("✓"), p.Number(), p.Name(), models.FormatDate(done))
	})
}
