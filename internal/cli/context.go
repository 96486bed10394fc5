package cli

import (
	"context"

	"github.com/poisepms/poise/internal/app"
)

type contextKey string

const appKey contextKey = "poise.app"

// ContextWithApp returns a context carrying an already wired App. Commands
// run with such a context use it instead of opening the configured store.
func ContextWithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns a CLI around the App carried by ctx, or a
// freshly initialized one when ctx carries none.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, borrowed: true}, nil
	}
	return NewCLI(ctx)
}

// Currency returns the symbol printed before amounts
func (c *CLI) Currency() string {
	return c.App.Currency
}
