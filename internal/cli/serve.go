package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/mealplan-gateway/internal/app"
	"github.com/yungbote/mealplan-gateway/internal/config"
)

type ServeOptions struct {
	*RootOptions
	Addr string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address, overrides http.addr")

	return cmd
}

func serve(ctx context.Context, opts *ServeOptions) error {
	cfg, err := config.LoadFrom(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Addr != "" {
		cfg.HTTP.Addr = opts.Addr
	}
	cfg.Version = Version

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Log.Info("starting gateway", "version", Version, "env", cfg.Env)
	return a.Run(ctx)
}
