package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"listing-advisor/advisor"
	"listing-advisor/config"
	"listing-advisor/mapview"
	"listing-advisor/models"
	"listing-advisor/predictor"
	"listing-advisor/services"
	"listing-advisor/storage"
	"listing-advisor/utils"
)

const usage = `Usage: listing-advisor <command> [flags]

Commands:
  summary                         print dataset statistics
  show <n | "Listing n">          show one listing and focus the map on it
  recommend -max-price -rooms -garage
                                  find the best listing for a budget
  evaluate -suburb -rooms -bathrooms [-garage] [-year]
                                  estimate a price from comparables and the model
  browse                          pick listings interactively
  seed                            copy the CSV dataset into PostgreSQL
  export -out <file>              write the cleaned dataset as CSV
  serve                           start the HTTP API
`

// app holds everything a command needs once the dataset is loaded.
type app struct {
	cfg     *config.Config
	logger  *utils.Logger
	table   *services.Table
	canvas  *mapview.Canvas
	session *advisor.Session
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := utils.NewLoggerWithOptions(utils.LoggerOptions{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Level:     cfg.LogLevel,
		Color:     cfg.LogColor,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "seed" {
		if err := runSeed(ctx, cfg, logger); err != nil {
			logger.Error("Seed failed: %v", err)
			os.Exit(1)
		}
		return
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	switch cmd {
	case "summary":
		err = a.runSummary()
	case "show":
		err = a.runShow(ctx, args)
	case "recommend":
		err = a.runRecommend(ctx, args)
	case "evaluate":
		err = a.runEvaluate(ctx, args)
	case "browse":
		err = a.runBrowse(ctx)
	case "export":
		err = a.runExport(args)
	case "serve":
		err = a.runServe(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("%s: %v", cmd, err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*app, error) {
	logger.Info("=== Listing advisor starting ===")
	logger.Info("Config: source: %s | dataset: %s | model: %s",
		cfg.DatasetSource, cfg.DatasetPath, cfg.ModelPath)

	listings, err := loadListings(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", cfg.DatasetPath)
	}

	table := services.NewTable(listings)
	summary := services.NewInsightService(logger).Generate(table.All())
	logger.Info("Loaded %d listings (%d priced, %d with coordinates) across %d suburbs",
		summary.TotalListings, summary.PricedListings, summary.WithCoordinates, len(summary.ListingsBySuburb))

	home := models.GeoPoint{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon}
	canvas := mapview.NewCanvas(home, cfg.DefaultZoom)
	presenter := mapview.NewPresenter(canvas, home, cfg.DefaultZoom, cfg.FocusZoom)

	return &app{
		cfg:     cfg,
		logger:  logger,
		table:   table,
		canvas:  canvas,
		session: advisor.NewSession(table, presenter, modelLoader(cfg, logger), logger),
	}, nil
}

// loadListings reads raw rows from the configured source and cleans them.
func loadListings(ctx context.Context, cfg *config.Config, logger *utils.Logger) ([]*models.Listing, error) {
	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	raw, err := src.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("Read %d raw rows from %s", len(raw), cfg.DatasetSource)
	return services.NewCleaner(logger).Clean(raw), nil
}

func openSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.ListingSource, error) {
	switch cfg.DatasetSource {
	case "csv":
		return storage.NewCSVReader(cfg.DatasetPath)
	case "postgres":
		logger.Info("Connecting to PostgreSQL at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
		return storage.NewPostgresStore(ctx, cfg.DSN(), storage.DefaultRetry(cfg.MaxRetries, logger))
	default:
		return nil, fmt.Errorf("unknown DATASET_SOURCE %q (want csv or postgres)", cfg.DatasetSource)
	}
}

func modelLoader(cfg *config.Config, logger *utils.Logger) advisor.ModelLoader {
	return func() (services.PriceModel, error) {
		m, err := predictor.Load(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Price model loaded from %s (%d named features)", cfg.ModelPath, len(m.FeatureNames()))
		return m, nil
	}
}

// runSeed copies the CSV dataset into the PostgreSQL mirror, replacing its
// contents.
func runSeed(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	reader, err := storage.NewCSVReader(cfg.DatasetPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	raw, err := reader.Load()
	if err != nil {
		return err
	}
	listings := services.NewCleaner(logger).Clean(raw)
	if len(listings) == 0 {
		return fmt.Errorf("dataset %s is empty", cfg.DatasetPath)
	}

	store, err := storage.NewPostgresStore(ctx, cfg.DSN(), storage.DefaultRetry(cfg.MaxRetries, logger))
	if err != nil {
		logger.Error("Make sure PostgreSQL is reachable with the POSTGRES_* settings")
		return err
	}
	if err := writeAll(store, listings); err != nil {
		return err
	}
	logger.Info("Seeded %d listings into PostgreSQL (table: listings)", len(listings))
	return nil
}
