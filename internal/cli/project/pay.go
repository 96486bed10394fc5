package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
)

// PayCmd returns the project pay subcommand
func PayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <number|name> <amount>",
		Short: "Record a payment against a project",
		Long: `Add a payment to the total paid on an open project.

Overpayment is accepted; the outstanding balance then goes negative.

Examples:
  poise project pay 12 1500
  poise project pay 12 1500.50 --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runPay,
	}

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func runPay(cmd *cobra.Command, args []string) error {
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
	if err := service.ApplyPayment(cmd.Context(), p, args[1]); err != nil {
		return formatter.Fail(err)
	}

	currency := cliInstance.Currency()
	return writeProject(formatter, p, map[string]interface{}{"outstanding": p.Outstanding().String()}, func() {
		fmt.Printf("%s Payment recorded on project %d\n", styles.SuccessStyle.Render("✓"), p.Number())
		fmt.Printf("  %s\n", styles.Field("Total paid", styles.Amount(currency, p.TotalPaid())))
		fmt.Printf("  %s\n", styles.Field("Outstanding", styles.Amount(currency, p.Outstanding())))
	})
}
