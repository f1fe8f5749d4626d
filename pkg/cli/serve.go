package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/horae/pkg/cli/config"
	httpctrl "github.com/secmon-lab/horae/pkg/controller/http"
	"github.com/secmon-lab/horae/pkg/usecase"
	"github.com/secmon-lab/horae/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var wbCfg config.Workbook

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("HORAE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML application config file (static links, timezone)",
			Sources:     cli.EnvVars("HORAE_CONFIG"),
			Destination: &configPath,
		},
	}
	flags = append(flags, wbCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var ucOpts []usecase.Option

			loc, err := wbCfg.Timezone()
			if err != nil {
				return err
			}

			if configPath != "" {
				appCfg, err := config.LoadAppConfiguration(configPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load application config")
				}
				if static := appCfg.StaticLinks(); len(static) > 0 {
					ucOpts = append(ucOpts, usecase.WithStaticLinks(static))
					logging.Default().Info("Static links loaded", "count", len(static))
				}
				if appCfg.Timezone != "" {
					loc, err = time.LoadLocation(appCfg.Timezone)
					if err != nil {
						return goerr.Wrap(err, "invalid timezone in application config")
					}
				}
			}

			wb, err := wbCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize workbook")
			}

			uc := usecase.New(wb, loc, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "timezone", loc.String())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
