package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feeddigest/pkg/archive"
	"github.com/umputun/feeddigest/pkg/config"
	"github.com/umputun/feeddigest/pkg/digest"
	"github.com/umputun/feeddigest/pkg/feed"
	"github.com/umputun/feeddigest/pkg/output"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"path to yaml config, built-in feed list if empty"`
	Dir     string `short:"d" long:"dir" env:"DIGEST_DIR" description:"output directory, overrides config"`
	Date    string `long:"date" env:"DIGEST_DATE" description:"digest date as YYYY-MM-DD, today if empty"`
	Profile string `short:"p" long:"profile" env:"DIGEST_PROFILE" choice:"plain" choice:"enriched" description:"rendering profile, overrides config"`
	HTML    bool   `long:"html" env:"DIGEST_HTML" description:"write html companion next to markdown digest"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
}

// run builds today's digest, writes it and records it in the archive index
func run(ctx context.Context, opts Opts) error {
	log.Printf("[INFO] starting feeddigest version %s", revision)

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	date, err := digestDate(opts.Date, time.Now())
	if err != nil {
		return err
	}
	dateStr := date.Format(digest.DateLayout)

	digestCfg := cfg.GetDigestConfig()
	renderer, err := digest.NewRenderer(digestCfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to make renderer: %w", err)
	}

	fetchCfg := cfg.GetFetchConfig()
	builder := digest.NewBuilder(feed.NewParser(fetchCfg.Timeout, fetchCfg.UserAgent), digest.Options{
		ItemsPerFeed: digestCfg.ItemsPerFeed,
		Timeout:      fetchCfg.Timeout,
		Renderer:     renderer,
	})

	sources := cfg.Sources()
	log.Printf("[INFO] fetching digest for %s from %d feeds, profile %s", dateStr, len(sources), digestCfg.Profile)
	report := builder.Build(ctx, date, sources)
	if ctx.Err() != nil {
		return fmt.Errorf("digest for %s interrupted: %w", dateStr, ctx.Err())
	}
	writer := output.NewWriter(digestCfg.Dir, digestCfg.HTML)
	if err := writer.Prepare(); err != nil {
		return err
	}
	paths, err := writer.Write(dateStr, report.Text)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("[INFO] saved %s", p)
	}

	indexPath := filepath.Join(writer.Dir(), archive.FileName)
	added, err := archive.Update(indexPath, dateStr, output.DigestName(dateStr))
	if err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}
	if added {
		log.Printf("[INFO] index %s updated", indexPath)
	}

	log.Printf("[INFO] digest %s done, %d of %d feeds failed", dateStr, len(report.Failures()), len(sources))
	return nil
}

// loadConfig reads the config file if set and applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Dir != "" {
		cfg.Digest.Dir = opts.Dir
	}
	if opts.Profile != "" {
		cfg.Digest.Profile = opts.Profile
	}
	if opts.HTML {
		cfg.Digest.HTML = true
	}
	return cfg, nil
}

// digestDate parses the date option, empty value means the local date of now
func digestDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	date, err := time.ParseInLocation(digest.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}

// SetupLog configures lgr and the standard logger
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
