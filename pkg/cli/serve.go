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

	"github.com/taskhubnet/statuswatch/pkg/cli/config"
	httpctrl "github.com/taskhubnet/statuswatch/pkg/controller/http"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/repository/memory"
	"github.com/taskhubnet/statuswatch/pkg/service/worker"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var configPath string
	var requestTimeout time.Duration
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STATUSWATCH_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("STATUSWATCH_CONFIG"),
			Destination: &configPath,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Per-request deadline for report endpoints",
			Value:       httpctrl.DefaultRequestTimeout,
			Sources:     cli.EnvVars("STATUSWATCH_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
	}

	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP report server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := config.LoadAppConfig(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack service")
			}
			logging.Default().Info("Slack service configured", "slack", slackCfg)

			ucOpts := []usecase.Option{
				usecase.WithDefaultChannel(appCfg.DefaultChannel),
				usecase.WithTags(appCfg.TagSet()),
			}

			var cache *memory.Cache
			if appCfg.Cache.Enabled {
				ttl, err := appCfg.CacheTTL()
				if err != nil {
					return err
				}
				cache = memory.New()
				ucOpts = append(ucOpts, usecase.WithCache(cache, ttl))
				logging.Default().Info("Report cache enabled", "ttl", ttl.String())
			}

			uc := usecase.New(slackSvc, ucOpts...)

			// Keep configured dashboards warm so their report reads never wait
			// on a full Slack scan
			var refreshWorker *worker.ReportRefreshWorker
			if cache != nil && len(appCfg.Dashboards) > 0 {
				dashboards, err := buildDashboards(appCfg.Dashboards)
				if err != nil {
					return err
				}
				interval, err := appCfg.RefreshInterval()
				if err != nil {
					return err
				}
				refreshWorker = worker.NewReportRefreshWorker(uc, dashboards, interval)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start report refresh worker")
				}
			}

			handler := httpctrl.New(uc, httpctrl.WithRequestTimeout(requestTimeout))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if refreshWorker != nil {
					refreshWorker.Stop()
				}

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

// buildDashboards converts validated config entries into worker dashboards.
// Entries without explicit kinds refresh all three report families.
func buildDashboards(entries []config.DashboardConfig) ([]worker.Dashboard, error) {
	dashboards := make([]worker.Dashboard, 0, len(entries))
	for _, e := range entries {
		tf, err := types.ParseTimeframe(e.Timeframe)
		if err != nil {
			return nil, err
		}

		kinds := types.AllReportKinds()
		if len(e.Kinds) > 0 {
			kinds = make([]types.ReportKind, 0, len(e.Kinds))
			for _, k := range e.Kinds {
				kind, err := types.ParseReportKind(k)
				if err != nil {
					return nil, err
				}
				kinds = append(kinds, kind)
			}
		}

		dashboards = append(dashboards, worker.Dashboard{
			Channel:   e.Channel,
			Timeframe: tf,
			Kinds:     kinds,
		})
	}
	return dashboards, nil
}
