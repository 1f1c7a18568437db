package cli

import (
	"github.com/spf13/cobra"
)

// Build metadata, set through -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
)

type RootOptions struct {
	ConfigPath string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "mealplan-gateway",
		Short:         "HTTP gateway for the meal planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the YAML config (default: $GATEWAY_CONFIG_PATH or ./config/gateway.yaml)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
