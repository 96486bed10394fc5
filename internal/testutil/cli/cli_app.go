package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/app"
	"github.com/poisepms/poise/internal/cli"
	"github.com/poisepms/poise/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app travels in the command context, so commands use the test
// database instead of opening the configured store.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	SetupCobraCommand(cmd, args)
	ctxWithApp := cli.ContextWithApp(ctx, testApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
