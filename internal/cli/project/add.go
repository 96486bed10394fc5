package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
	projectservice "github.com/poisepms/poise/internal/services/project"
)

var contactRoles = []string{"customer", "contractor", "architect"}

// AddCmd returns the project add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new project",
		Long: `Add a new project together with its site and contacts.

A blank --name is derived from the building type and the customer's surname.

Examples:
  # JSON output for agents
  poise project add --number 12 --build-type House --erf 4410 \
    --address "12 Oak Lane" --fee 250000 --paid 50000 \
    --deadline 2030-06-30 --manager "Pat Manager" \
    --customer-name "Jane Doe" --customer-phone 0115550001 \
    --customer-email jane@example.com --customer-address "3 Elm Road" \
    ... --json

  # Quiet mode for bash capture
  NUMBER=$(poise project add ... --quiet)
`,
		RunE: runAdd,
	}

	// Required flags
	cmd.Flags().Int("number", 0, "Project number (required)")
	cmd.Flags().String("build-type", "", "Building type, e.g. House (required)")
	cmd.Flags().Int("erf", 0, "ERF number of the site (required)")
	cmd.Flags().String("address", "", "Site address (required)")
	cmd.Flags().String("fee", "", "Total fee, e.g. 250000 or 250000.50 (required)")
	cmd.Flags().String("deadline", "", "Deadline as YYYY-MM-DD (required)")
	cmd.Flags().String("manager", "", "Project manager (required)")
	markRequired(cmd, "number", "build-type", "erf", "address", "fee", "deadline", "manager")

	for _, role := range contactRoles {
		cmd.Flags().String(role+"-name", "", fmt.Sprintf("Name of the %s (required)", role))
		cmd.Flags().String(role+"-phone", "", fmt.Sprintf("Phone number of the %s (required)", role))
		cmd.Flags().String(role+"-email", "", fmt.Sprintf("Email address of the %s (required)", role))
		cmd.Flags().String(role+"-address", "", fmt.Sprintf("Physical address of the %s (required)", role))
		markRequired(cmd, role+"-name", role+"-phone", role+"-email", role+"-address")
	}

	// Optional flags
	cmd.Flags().String("name", "", "Project name")
	cmd.Flags().String("paid", "0", "Amount already paid")

	addOutputFlags(cmd, "Minimal output (project number only)")

	return cmd
}

func contactFlags(cmd *cobra.Command, prefix string) projectservice.ContactRequest {
	name, _ := cmd.Flags().GetString(prefix + "name")
	phone, _ := cmd.Flags().GetString(prefix + "phone")
	email, _ := cmd.Flags().GetString(prefix + "email")
	address, _ := cmd.Flags().GetString(prefix + "address")
	return projectservice.ContactRequest{Name: name, Phone: phone, Email: email, Address: address}
}

func runAdd(cmd *cobra.Command, args []string) error {
	formatter := formatterFor(cmd)

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	req := projectservice.CreateProjectRequest{
		Customer:   contactFlags(cmd, "customer-"),
		Contractor: contactFlags(cmd, "contractor-"),
		Architect:  contactFlags(cmd, "architect-"),
	}
	req.Number, _ = cmd.Flags().GetInt("number")
	req.Name, _ = cmd.Flags().GetString("name")
	req.BuildType, _ = cmd.Flags().GetString("build-type")
	req.ERFNumber, _ = cmd.Flags().GetInt("erf")
	req.Address, _ = cmd.Flags().GetString("address")
	req.TotalFee, _ = cmd.Flags().GetString("fee")
	req.TotalPaid, _ = cmd.Flags().GetString("paid")
	req.Deadline, _ = cmd.Flags().GetString("deadline")
	req.Manager, _ = cmd.Flags().GetString("manager")

	p, err := cliInstance.App.ProjectService.CreateProject(cmd.Context(), req)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeProject(formatter, p, nil, func() {
		fmt.Printf("%s Project %d '%s' added\n", styles.SuccessStyle.Render("✓"), p.Number(), p.Name())
		fmt.Printf("  %s\n", styles.Field("Outstanding", styles.Amount(cliInstance.Currency(), p.Outstanding())))
	})
}
