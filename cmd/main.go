// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"chakri-scan/internal/alerts"
	"chakri-scan/internal/cache"
	"chakri-scan/internal/cleaner"
	"chakri-scan/internal/config"
	"chakri-scan/internal/job"
	"chakri-scan/internal/observability"
	"chakri-scan/internal/parser"
	"chakri-scan/internal/scheduler"
	"chakri-scan/internal/scrapers"
	"chakri-scan/internal/store"
	"chakri-scan/internal/version"
	"chakri-scan/internal/web"

	"chakri-scan/internal/formatters"
	_ "chakri-scan/internal/formatters/csv"
	_ "chakri-scan/internal/formatters/json"
	_ "chakri-scan/internal/formatters/text"
)

func main() {
	// Parse command line flags
	inputFile := flag.String("input", "", "Path to input file with raw job records (.json array, .html page, or .pdf circular)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	minQuality := flag.Float64("min-quality", 0, "Minimum quality score (0-100) for a job to be kept")
	keepLowQuality := flag.Bool("keep-low-quality", false, "Keep jobs below the quality threshold instead of dropping them")
	workers := flag.Int("workers", 0, "Number of parallel parse workers")
	scrapeMode := flag.Bool("scrape", false, "Run one scrape cycle against the configured job portals")
	serveMode := flag.Bool("serve", false, "Start the JSON API server")
	scheduleMode := flag.Bool("schedule", false, "Run the continuous scheduled pipeline (scrape, alerts, cleanup)")
	verbose := flag.Bool("verbose", false, "Display detailed information for each job")
	debug := flag.Bool("debug", false, "Enable debug logging to show extraction and cleaning flow")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stderr) || *quiet || os.Getenv("CI") != "" {
		*noColor = true
	}
	if *noColor {
		color.NoColor = true
	}

	// Create debug observer early for configuration logging
	var debugObs *observability.DebugObserver
	if *debug {
		debugObs = observability.NewDebugObserver(os.Stderr)
		debugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", os.Args))
	}

	cfg := config.LoadConfigOrDefault(*configFile)

	// Flags win over the config file
	if *outputFormat == "" {
		*outputFormat = cfg.Defaults.Format
	}
	if *minQuality == 0 {
		*minQuality = cfg.Defaults.MinQualityScore
	}
	if !*keepLowQuality {
		*keepLowQuality = cfg.Defaults.KeepLowQuality
	}
	if *workers == 0 {
		*workers = cfg.Defaults.Workers
	}
	if !*verbose {
		*verbose = cfg.Defaults.Verbose
	}

	p := parser.New()
	if *debug {
		p.SetObserver(debugObs.StandardObserver)
	} else if *verbose {
		p.SetObserver(observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr))
	}

	app := &application{
		cfg:            cfg,
		parser:         p,
		debugObs:       debugObs,
		format:         *outputFormat,
		outputFile:     *outputFile,
		minQuality:     *minQuality,
		keepLowQuality: *keepLowQuality,
		workers:        *workers,
		verbose:        *verbose,
		quiet:          *quiet,
	}

	var err error
	switch {
	case *scheduleMode:
		err = app.runScheduled(*serveMode)
	case *serveMode:
		err = app.runServer()
	case *scrapeMode:
		err = app.runScrape()
	case *inputFile != "":
		err = app.runBatch(*inputFile)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of -input, -scrape, -serve or -schedule is required")
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// application carries the resolved runtime configuration across modes.
type application struct {
	cfg            *config.Config
	parser         *parser.Parser
	debugObs       *observability.DebugObserver
	format         string
	outputFile     string
	minQuality     float64
	keepLowQuality bool
	workers        int
	verbose        bool
	quiet          bool
}

// runBatch parses a local file of raw records and writes the cleaned batch.
func (app *application) runBatch(inputFile string) error {
	records, err := app.loadRecords(inputFile)
	if err != nil {
		return err
	}
	if app.debugObs != nil {
		app.debugObs.LogMetric("main", "records_loaded", len(records))
	}

	scored, report := app.processRecords(records)
	output, err := formatters.Export(app.format, scored, report, formatters.FormatterOptions{
		Verbose:       app.verbose,
		NoColor:       color.NoColor,
		IncludeScores: app.verbose,
		IncludeReport: true,
	})
	if err != nil {
		return err
	}

	if app.outputFile != "" {
		if err := os.WriteFile(app.outputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		fmt.Println(output)
	}

	app.printSummary(report)
	return nil
}

// loadRecords reads raw records from JSON, HTML or PDF input. A directory is
// read one level deep; files of unsupported types are skipped.
func (app *application) loadRecords(inputFile string) ([]job.RawRecord, error) {
	info, err := os.Stat(inputFile)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		entries, err := os.ReadDir(inputFile)
		if err != nil {
			return nil, fmt.Errorf("read input dir: %w", err)
		}
		var records []job.RawRecord
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".json", ".pdf", ".html", ".htm":
			default:
				continue
			}
			batch, err := app.loadRecords(filepath.Join(inputFile, e.Name()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", e.Name(), err)
				continue
			}
			records = append(records, batch...)
		}
		return records, nil
	}

	switch strings.ToLower(filepath.Ext(inputFile)) {
	case ".json":
		data, err := os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		var records []job.RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		return records, nil

	case ".pdf":
		record, err := scrapers.NewPDFCircular().Read(inputFile)
		if err != nil {
			return nil, err
		}
		return []job.RawRecord{record}, nil

	case ".html", ".htm":
		data, err := os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return []job.RawRecord{{
			Description: string(data),
			SourceURL:   inputFile,
			SourceSite:  "local-html",
		}}, nil

	default:
		return nil, fmt.Errorf("unsupported input type %q (want .json, .html or .pdf)", filepath.Ext(inputFile))
	}
}

// processRecords runs parse and clean over raw records.
func (app *application) processRecords(records []job.RawRecord) ([]job.ScoredJob, cleaner.BatchReport) {
	parsed, errs := app.parser.ParseAll(records, app.workers)

	var valid []job.CanonicalJob
	for i, err := range errs {
		if err != nil {
			if !app.quiet {
				fmt.Fprintf(os.Stderr, "record %d rejected: %v\n", i, err)
			}
			continue
		}
		valid = append(valid, parsed[i])
	}

	return app.parser.Cleaner().CleanBatch(valid, cleaner.BatchOptions{
		MinQualityScore: app.minQuality,
		KeepLowQuality:  app.keepLowQuality,
	})
}

// runScrape executes one scrape cycle. With DATABASE_URL configured the
// results are persisted; otherwise they are written to stdout like a batch.
func (app *application) runScrape() error {
	ctx, cancel := signalContext()
	defer cancel()

	manager := scrapers.NewManager(
		app.cfg.Scraper.Sites,
		time.Duration(app.cfg.Scraper.TimeoutSeconds)*time.Second,
		app.cfg.Scraper.MaxRetries,
	)
	if app.debugObs != nil {
		manager.SetObserver(app.debugObs.StandardObserver)
	}

	records := manager.ScrapeAll(ctx)
	if !app.quiet {
		fmt.Fprintf(os.Stderr, "scraped %d raw records\n", len(records))
	}

	scored, report := app.processRecords(records)

	if app.cfg.Database.URL != "" {
		pool, err := store.NewPostgresPool(ctx, app.cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		st := store.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}
		inserted, updated, err := st.UpsertJobs(ctx, scored)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if !app.quiet {
			fmt.Fprintf(os.Stderr, "persisted %d new, %d refreshed\n", len(inserted), updated)
		}
		app.printSummary(report)
		return nil
	}

	output, err := formatters.Export(app.format, scored, report, formatters.FormatterOptions{
		Verbose:       app.verbose,
		NoColor:       color.NoColor,
		IncludeScores: app.verbose,
		IncludeReport: true,
	})
	if err != nil {
		return err
	}
	fmt.Println(output)
	app.printSummary(report)
	return nil
}

// runServer starts the JSON API over the stored jobs.
func (app *application) runServer() error {
	ctx, cancel := signalContext()
	defer cancel()

	st, c, cleanup, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	server := web.NewServer(app.cfg.Web.Addr, st, c)
	go func() {
		<-ctx.Done()
		server.Stop()
	}()
	return server.Start()
}

// runScheduled starts the cron pipeline, optionally with the API server.
func (app *application) runScheduled(withServer bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	st, c, cleanup, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	manager := scrapers.NewManager(
		app.cfg.Scraper.Sites,
		time.Duration(app.cfg.Scraper.TimeoutSeconds)*time.Second,
		app.cfg.Scraper.MaxRetries,
	)

	var notifier *alerts.TelegramNotifier
	if app.cfg.Telegram.Enabled {
		notifier, err = alerts.NewTelegramNotifier(app.cfg.Telegram.BotToken, app.cfg.Telegram.ChatID)
		if err != nil {
			return err
		}
	}

	var searches []alerts.SavedSearch
	for _, s := range app.cfg.Telegram.Searches {
		searches = append(searches, alerts.SavedSearch{
			Keywords:    s.Keywords,
			Departments: s.Departments,
			Locations:   s.Locations,
		})
	}

	sched := scheduler.New(manager, app.parser, st, c, notifier, scheduler.Options{
		IntervalHours:   app.cfg.Scraper.IntervalHours,
		Workers:         app.workers,
		MinQualityScore: app.minQuality,
		KeepLowQuality:  app.keepLowQuality,
		SavedSearches:   searches,
	})
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	if withServer {
		server := web.NewServer(app.cfg.Web.Addr, st, c)
		go func() {
			<-ctx.Done()
			server.Stop()
		}()
		return server.Start()
	}

	<-ctx.Done()
	return nil
}

// connect establishes the Postgres store and optional Redis cache.
func (app *application) connect(ctx context.Context) (*store.Store, *cache.Cache, func(), error) {
	if app.cfg.Database.URL == "" {
		return nil, nil, nil, fmt.Errorf("DATABASE_URL is required for this mode")
	}

	pool, err := store.NewPostgresPool(ctx, app.cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	cleanup := func() { pool.Close() }

	var c *cache.Cache
	if app.cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, app.cfg.Redis.URL)
		if err != nil {
			// Cache is an optimization; run without it rather than failing.
			fmt.Fprintf(os.Stderr, "Warning: redis unavailable: %v\n", err)
		} else {
			c = cache.New(rdb, time.Duration(app.cfg.Redis.TTLMinutes)*time.Minute)
			poolCleanup := cleanup
			cleanup = func() {
				rdb.Close()
				poolCleanup()
			}
		}
	}

	return st, c, cleanup, nil
}

// printSummary writes the colored batch summary to stderr.
func (app *application) printSummary(report cleaner.BatchReport) {
	if app.quiet {
		return
	}

	bold := color.New(color.FgWhite, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(os.Stderr)
	bold.Fprintln(os.Stderr, "Batch summary")
	fmt.Fprintf(os.Stderr, "  Records in:       %d\n", report.OriginalCount)
	green.Fprintf(os.Stderr, "  Jobs out:         %d\n", report.CleanedCount)
	if report.InvalidCount > 0 {
		yellow.Fprintf(os.Stderr, "  Invalid:          %d\n", report.InvalidCount)
	}
	if report.LowQualityCount > 0 {
		yellow.Fprintf(os.Stderr, "  Below threshold:  %d\n", report.LowQualityCount)
	}
	if report.DuplicateCount > 0 {
		yellow.Fprintf(os.Stderr, "  Duplicates:       %d\n", report.DuplicateCount)
	}
	fmt.Fprintf(os.Stderr, "  Average quality:  %.1f\n", report.AverageQuality)
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// isTerminal checks whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
