package project

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/cli/styles"
	"github.com/poisepms/poise/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects in catalog order.

Examples:
  # Every project
  poise project list

  # Projects that are not finalised
  poise project list --incomplete

  # Open projects whose deadline has passed as of a given day
  poise project list --overdue --as-of 2030-07-01 --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().Bool("incomplete", false, "Only projects that are not finalised")
	cmd.Flags().Bool("overdue", false, "Only open projects past their deadline")
	cmd.Flags().String("as-of", "", "Day to judge deadlines against, YYYY-MM-DD (default today)")

	addOutputFlags(cmd, "Minimal output (project numbers only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatter := formatterFor(cmd)
	incomplete, _ := cmd.Flags().GetBool("incomplete")
	overdue, _ := cmd.Flags().GetBool("overdue")
	asOfFlag, _ := cmd.Flags().GetString("as-of")

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	asOf := models.CalendarDay(cliInstance.App.Now())
	if asOfFlag != "" {
		asOf, err = models.ParseDate(asOfFlag)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	service := cliInstance.App.ProjectService
	var seq iter.Seq[*models.Project]
	switch {
	case overdue:
		seq = service.ListOverdue(asOf)
	case incomplete:
		seq = service.ListIncomplete()
	default:
		seq = service.Catalog().All()
	}
	projects := slices.Collect(seq)

	if formatter.Quiet {
		// Just print numbers (one per line)
		for _, p := range projects {
			fmt.Printf("%d\n", p.Number())
		}
		return nil
	}

	if formatter.JSON {
		views := make([]models.ProjectView, 0, len(projects))
		for _, p := range projects {
			views = append(views, p.View())
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"as_of":    models.FormatDate(asOf),
			"projects": views,
		})
	}

	printProjects(projects, cliInstance.Currency(), asOf)
	return nil
}

func printProjects(projects []*models.Project, currency string, asOf time.Time) {
	if len(projects) == 0 {
		fmt.Println("No projects found")
		return
	}

	fmt.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Println("  " + styles.ProjectLine(p, currency, p.IsOverdue(asOf)))
	}
}
