package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-envgen/internal/output"
	"github.com/goliatone/go-envgen/internal/version"
	"github.com/goliatone/go-envgen/pkg/env"
)

func newVersionCmd() *cobra.Command {
	var environment bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tool version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if environment {
				output.Println(env.Version(projectRoot(cmd)))
				return nil
			}
			output.Println(fmt.Sprintf("envgen %s (commit %s, built %s)",
				version.Version, version.Commit, version.Date))
			return nil
		},
	}

	cmd.Flags().BoolVar(&environment, "env", false, "print the materialized environment version instead")
	return cmd
}
