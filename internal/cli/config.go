package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	envgen "github.com/goliatone/go-envgen"
	"github.com/goliatone/go-envgen/internal/output"
	"github.com/goliatone/go-envgen/pkg/config"
	envgenerrors "github.com/goliatone/go-envgen/pkg/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the project configuration",
	}
	cmd.AddCommand(newConfigSaveCmd(), newConfigPrintValueCmd())
	return cmd
}

func newConfigSaveCmd() *cobra.Command {
	var interactive bool
	var sets []string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Update the saved configuration and regenerate the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(cmd)

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			for _, assignment := range sets {
				key, value, found := strings.Cut(assignment, "=")
				if !found || key == "" {
					return envgenerrors.Newf("Invalid assignment %q, expected KEY=VALUE", assignment)
				}
				cfg[strings.ToUpper(key)] = value
			}
			if interactive {
				if err := askConfig(cfg); err != nil {
					return err
				}
			}
			// Resolve template-bearing values (generated secrets, derived
			// hosts) before persisting, so they stay stable across runs.
			if err := envgen.RenderConfigValues(cfg); err != nil {
				return err
			}

			if err := config.Save(root, cfg); err != nil {
				return err
			}
			output.Info("Configuration saved", "path", config.Path(root))

			return envgen.Save(root, cfg)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for configuration values")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "set a configuration value (KEY=VALUE, repeatable)")
	return cmd
}

func newConfigPrintValueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "printvalue KEY",
		Short: "Print a rendered configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(cmd)

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := envgen.RenderConfigValues(cfg); err != nil {
				return err
			}

			key := strings.ToUpper(args[0])
			value, ok := cfg[key]
			if !ok {
				return envgenerrors.Newf("Missing configuration value: %s", key)
			}
			output.Println(fmt.Sprint(value))
			return nil
		},
	}
}

// askConfig prompts for the user-facing configuration values, keeping the
// current values as defaults.
func askConfig(cfg config.Config) error {
	prompts := []struct {
		key     string
		message string
	}{
		{"PROJECT_NAME", "Project name:"},
		{"HOST", "Host name:"},
		{"DOCKER_REGISTRY", "Docker registry (with trailing slash):"},
	}

	for _, prompt := range prompts {
		var answer string
		input := &survey.Input{
			Message: prompt.message,
			Default: fmt.Sprint(cfg[prompt.key]),
		}
		if err := survey.AskOne(input, &answer); err != nil {
			return err
		}
		cfg[prompt.key] = answer
	}

	https, _ := cfg["ENABLE_HTTPS"].(bool)
	confirm := &survey.Confirm{
		Message: "Enable HTTPS?",
		Default: https,
	}
	if err := survey.AskOne(confirm, &https); err != nil {
		return err
	}
	cfg["ENABLE_HTTPS"] = https
	return nil
}
