// Command aegisweb runs the Aegiscan console web shell.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/digitranslab/aegisweb"
	"github.com/digitranslab/aegisweb/analytics"
	"github.com/digitranslab/aegisweb/site"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "aegisweb",
		Short:         "Aegiscan console web shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML server config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newConfigCmd(),
		newAnalyticsCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the console shell over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := aegisweb.LoadServerConfig(*configPath, os.LookupEnv)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger, err := aegisweb.NewLogger(cfg.AppEnv)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			// A bad base URL stops the process here, before any request is served.
			siteCfg, err := site.Load()
			if err != nil {
				logger.Error("invalid site configuration", zap.Error(err))
				return err
			}

			app := aegisweb.New(cfg, siteCfg, site.Routes(), logger)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config and environment")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved site configuration and route aliases as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			siteCfg, err := site.Load()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"site":   siteCfg,
				"routes": site.Routes(),
			})
		},
	}
}

func newAnalyticsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Inspect recorded page views",
	}

	var days, limit int
	top := &cobra.Command{
		Use:   "top",
		Short: "List the most viewed pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := aegisweb.LoadServerConfig(*configPath, os.LookupEnv)
			if err != nil {
				return err
			}
			store, err := analytics.NewStore(cfg.AnalyticsDatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			return runTopPages(cmd.Context(), cmd.OutOrStdout(), store, days, limit)
		},
	}
	top.Flags().IntVar(&days, "days", 30, "look back this many days")
	top.Flags().IntVar(&limit, "limit", 10, "maximum number of pages")
	cmd.AddCommand(top)
	return cmd
}

func runTopPages(ctx context.Context, w io.Writer, store *analytics.Store, days, limit int) error {
	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)
	stats, err := store.TopPages(ctx, from, to, limit)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintf(w, "no page views in the last %d days\n", days)
		return nil
	}
	for _, s := range stats {
		fmt.Fprintf(w, "%8d  %s\n", s.Views, s.Path)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aegisweb version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aegisweb %s\n", version)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
