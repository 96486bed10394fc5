package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/poisepms/poise/internal/config"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write the configuration file",
	}

	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the configuration file",
		Long: `Write the effective configuration (defaults, then the existing file, then
POISE_ environment variables) to the configuration file.

Examples:
  poise config init
  POISE_DATABASE_DRIVER=mysql POISE_DATABASE_DSN="poise:secret@tcp(localhost:3306)/poisepms" poise config init --force
`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	force, _ := cmd.Flags().GetBool("force")
	formatter := &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	path, err := config.Path()
	if err != nil {
		return formatter.Fail(err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return formatter.Usage("configuration file already exists at "+path, "Pass --force to overwrite it")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return formatter.Fail(err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return formatter.Fail(fmt.Errorf("failed to write config: %w", err))
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"path":    path,
			"driver":  cfg.Database.Driver,
		})
	}

	fmt.Printf("✓ Configuration written to %s\n", path)
	return nil
}
