package cli

import (
	"github.com/spf13/cobra"

	envgen "github.com/goliatone/go-envgen"
	"github.com/goliatone/go-envgen/pkg/config"
)

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Render the full environment from the saved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(cmd)

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := envgen.RenderConfigValues(cfg); err != nil {
				return err
			}
			return envgen.Save(root, cfg)
		},
	}
}
