package cli

import (
	"github.com/spf13/cobra"

	envgen "github.com/goliatone/go-envgen"
	"github.com/goliatone/go-envgen/internal/output"
	"github.com/goliatone/go-envgen/pkg/config"
	"github.com/goliatone/go-envgen/pkg/env"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render PATH...",
		Short: "Render individual templates to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := projectRoot(cmd)
			env.CheckIsUpToDate(root)

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			if err := envgen.RenderConfigValues(cfg); err != nil {
				return err
			}

			for _, path := range args {
				rendered, err := envgen.RenderFile(cfg, path)
				if err != nil {
					return err
				}
				output.Println(rendered)
			}
			return nil
		},
	}
}
