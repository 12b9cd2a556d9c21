// Package cli wires the envgen command tree.
package cli

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-envgen/internal/output"
)

// NewRootCmd builds the envgen root command.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "envgen",
		Short: "Render configuration templates into a deployable environment",
		Long: "envgen renders a tree of configuration templates (container manifests,\n" +
			"deployment files, app configs) into an environment directory, using a\n" +
			"flat key/value configuration plus plugin-contributed templates and patches.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(verbose)
		},
	}

	cmd.PersistentFlags().StringP("root", "r", defaultRoot(), "project root directory")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSaveCmd(),
		newRenderCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

func defaultRoot() string {
	if root := os.Getenv("ENVGEN_ROOT"); root != "" {
		return root
	}
	return filepath.Join(xdg.DataHome, "envgen")
}

func projectRoot(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("root")
	return root
}
