package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"schedlink/internal/config"
	"schedlink/internal/ics"
	appLog "schedlink/internal/log"
	"schedlink/internal/pipeline"
	"schedlink/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	once       bool
	format     string
	debug      bool
}

func main() {
	appLog.Info("schedlink starting", "version", "0.1.0-dev")

	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"offset_hours", conf.OffsetHours,
		"refresh", conf.RefreshCron,
		"page_count", len(conf.Pages),
		"once", flags.once,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	runner := pipeline.NewRunner(conf)

	if flags.once {
		if err := runOnce(ctx, runner, flags.format); err != nil {
			appLog.Error("single-shot run failed", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, conf, runner); err != nil {
		appLog.Error("server exited", err)
		os.Exit(1)
	}
	appLog.Info("schedlink exiting")
}

// runOnce scans all pages once and prints the result to stdout.
func runOnce(ctx context.Context, runner *pipeline.Runner, format string) error {
	links := runner.Run(ctx)

	switch format {
	case "links":
		for _, l := range links {
			fmt.Printf("%s\t%s\n", l.Title, l.URL)
		}
	case "json":
		data, err := json.MarshalIndent(links, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "ics":
		fmt.Print(ics.Feed(links))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

// serve runs the initial scan, schedules periodic re-scans per the config
// cron expression, and serves the HTTP API until the context is canceled.
func serve(ctx context.Context, conf *config.Config, runner *pipeline.Runner) error {
	srv := web.NewServer(conf)
	srv.SetSchedule(runner.Run(ctx))

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, func() {
		appLog.Info("scheduled re-scan starting")
		srv.SetSchedule(runner.Run(ctx))
	}); err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", conf.RefreshCron, err)
	}
	c.Start()
	defer c.Stop()

	httpSrv := &http.Server{
		Addr:    conf.Listen,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/schedlink/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Scan all pages once, print output, and exit")
	flag.StringVar(&cfg.format, "format", "links", "Output format for -once: links, json or ics")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
