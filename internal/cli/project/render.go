package project

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/poisepms/poise/internal/cli/styles"
	"github.com/poisepms/poise/internal/models"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// renderMarkdown renders md for the terminal, falling back to the raw
// markdown when glamour fails.
func renderMarkdown(md string) string {
	renderer, err := getRenderer(styles.CardWidth - 6)
	if err == nil {
		rendered, err := renderer.Render(md)
		if err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return md
}

func contactMarkdown(b *strings.Builder, heading string, c models.Contact) {
	fmt.Fprintf(b, "### %s\n\n", heading)
	fmt.Fprintf(b, "- **Name:** %s\n", c.Name())
	fmt.Fprintf(b, "- **Phone:** %s\n", c.Phone())
	fmt.Fprintf(b, "- **Email:** %s\n", c.Email())
	fmt.Fprintf(b, "- **Address:** %s\n\n", c.Address())
}

// projectMarkdown describes every field of p
func projectMarkdown(p *models.Project, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Project %d: %s\n\n", p.Number(), p.Name())
	fmt.Fprintf(&b, "- **Building type:** %s\n", p.BuildType())
	fmt.Fprintf(&b, "- **ERF number:** %d\n", p.ERFNumber())
	fmt.Fprintf(&b, "- **Address:** %s\n", p.Address())
	fmt.Fprintf(&b, "- **Deadline:** %s\n", models.FormatDate(p.Deadline()))
	fmt.Fprintf(&b, "- **Total fee:** %s\n", styles.Amount(currency, p.TotalFee()))
	fmt.Fprintf(&b, "- **Total paid:** %s\n", styles.Amount(currency, p.TotalPaid()))
	fmt.Fprintf(&b, "- **Project manager:** %s\n", p.Manager())
	if done, ok := p.CompletionDate(); ok {
		fmt.Fprintf(&b, "- **Completed:** %s\n", models.FormatDate(done))
	}
	b.WriteString("\n")

	contactMarkdown(&b, "Customer", p.Customer())
	contactMarkdown(&b, "Contractor", p.Contractor())
	contactMarkdown(&b, "Architect", p.Architect())
	return b.String()
}

// invoiceMarkdown is the final invoice sent to the customer of p
func invoiceMarkdown(p *models.Project, due models.Money, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Final invoice: project %d\n\n", p.Number())
	contactMarkdown(&b, "Bill to", p.Customer())
	fmt.Fprintf(&b, "> **Payable:** %s\n", styles.Amount(currency, due))
	return b.String()
}

// renderProject renders the project card for human output
func renderProject(p *models.Project, currency string) string {
	return styles.RenderCard(renderMarkdown(projectMarkdown(p, currency)))
}
