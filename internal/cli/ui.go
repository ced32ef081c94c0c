package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/web"
)

const uiShortDescription = "Serve the operator page"

const uiLongDescription = `Command "ui"

Serve the operator page on UI_HOST:UI_PORT (127.0.0.1:5173 by default).
Load sample data, a JSON file or the remote endpoint, review the table and
copy it straight into a spreadsheet.`

func uiCommand(root *rootCommand) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: uiShortDescription,
		Long:  uiLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host != "" {
				root.cfg.UI.Host = host
			}
			if cmd.Flags().Changed("port") {
				root.cfg.UI.Port = port
			}
			if err := root.cfg.Validate(); err != nil {
				return err
			}

			service, err := root.newService()
			if err != nil {
				return err
			}

			slog.Info("configuration loaded",
				"addr", root.cfg.UI.Addr(),
				"default_layout", root.cfg.Export.DefaultLayout,
				"layouts", core.LayoutCount(),
				"remote_enabled", root.cfg.Remote.BaseURL != "",
				"load_max_concurrent", root.cfg.Load.MaxConcurrent,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, root, service)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to bind (default $UI_HOST)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default $UI_PORT)")

	return cmd
}

// serve runs the server until ctx is done, then shuts it down, giving
// running loads until the shutdown timeout to finish.
func serve(ctx context.Context, root *rootCommand, service *core.Service) error {
	server := web.NewServer(service, root.cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), root.cfg.UI.ShutdownTimeout)
	defer cancel()

	if status := service.LoadLimiterStatus(); status.Active > 0 {
		slog.Info("waiting for loads to complete", "active", status.Active)
		if err := service.WaitForLoads(shutdownCtx); err != nil {
			slog.Warn("loads did not complete in time", "error", err)
		} else {
			slog.Info("all loads completed")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	return <-errCh
}
