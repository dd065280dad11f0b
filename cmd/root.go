package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"portfolio_spider/internal/app"
	"portfolio_spider/internal/config"
	"portfolio_spider/internal/db"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "portfolio-spider",
		Short: "Crawl venture-capital sites and extract portfolio companies",
		Long: `portfolio-spider starts from one or more VC firm pages, follows portfolio,
company and team links and stores one record per portfolio company found.

Settings come from a YAML file; flags override the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	flags.StringArrayP("start-url", "u", nil, "Start URL (repeatable)")
	flags.IntP("max-requests", "n", 0, "Maximum number of requests per crawl")
	flags.Bool("follow-internal-only", true, "Only follow links on the first start URL's host")
	flags.String("db-driver", "", "Storage driver: sqlite or mongo")
	flags.String("db-path", "", "SQLite database file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	sink, err := db.NewSink(cfg.DB)
	if err != nil {
		return fmt.Errorf("open %s sink: %w", cfg.DB.Driver, err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Error("Error closing sink", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spider := app.NewSpiderApp(cfg, sink, logger)
	if err := spider.Run(ctx); err != nil {
		return err
	}

	logger.Info("Spider successfully run", "run_id", spider.RunID())
	return nil
}

// applyFlags overrides config values with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.SpiderConfig) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("start-url") {
		if cfg.Input.StartURLs, err = flags.GetStringArray("start-url"); err != nil {
			return err
		}
	}
	if flags.Changed("max-requests") {
		if cfg.Input.MaxRequestsPerCrawl, err = flags.GetInt("max-requests"); err != nil {
			return err
		}
	}
	if flags.Changed("follow-internal-only") {
		follow, err := flags.GetBool("follow-internal-only")
		if err != nil {
			return err
		}
		cfg.Input.FollowInternalOnly = &follow
	}
	if flags.Changed("db-driver") {
		if cfg.DB.Driver, err = flags.GetString("db-driver"); err != nil {
			return err
		}
		if cfg.DB.Driver == config.DriverSQLite && cfg.DB.Path == "" {
			cfg.DB.Path = config.DefaultSQLitePath
		}
	}
	if flags.Changed("db-path") {
		if cfg.DB.Path, err = flags.GetString("db-path"); err != nil {
			return err
		}
	}
	return nil
}
