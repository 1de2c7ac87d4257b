package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"listing-advisor/api"
	"listing-advisor/mapview"
	"listing-advisor/models"
	"listing-advisor/services"
	"listing-advisor/storage"
	"listing-advisor/utils"
)

const mapTitle = "Listing advisor"

func (a *app) runSummary() error {
	svc := services.NewInsightService(a.logger)
	svc.Print(os.Stdout, svc.Generate(a.table.All()))
	return nil
}

func (a *app) runShow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(`usage: show <n | "Listing n">`)
	}
	view, err := a.session.ShowListing(strings.Join(args, " "))
	if err != nil {
		return err
	}
	printListing(os.Stdout, view.Listing, view.Details)
	if !view.OnMap {
		fmt.Println("  (no coordinates, map unchanged)")
		return nil
	}
	return a.writeMap(ctx, "listing")
}

func (a *app) runRecommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	var form services.RecommendForm
	fs.StringVar(&form.MaxPrice, "max-price", "", "maximum price")
	fs.StringVar(&form.MinRooms, "rooms", "", "minimum rooms (0-30)")
	fs.StringVar(&form.MinGarage, "garage", "", "minimum garage spaces (0-30)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rec, err := a.session.OpenRecommend().Search(form)
	if errors.Is(err, services.ErrNoMatch) {
		fmt.Printf("\n  %s\n\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	printRecommendation(os.Stdout, rec)
	return a.writeMap(ctx, "recommend")
}

func (a *app) runEvaluate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	var form services.EvaluateForm
	fs.StringVar(&form.Suburb, "suburb", "", "suburb, one of the dataset's suburbs")
	fs.StringVar(&form.MinRooms, "rooms", "", "minimum rooms (0-30)")
	fs.StringVar(&form.MinBathrooms, "bathrooms", "", "minimum bathrooms (0-30)")
	fs.StringVar(&form.MinGarage, "garage", "", "minimum garage spaces (optional, 0-30)")
	fs.StringVar(&form.MinYear, "year", "", "minimum construction year (optional, 1900-2025)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dialog, err := a.session.OpenEvaluate()
	if err != nil {
		return err
	}
	eval, err := dialog.Evaluate(form)
	if err != nil {
		return err
	}

	printEvaluation(os.Stdout, eval)
	return a.writeMap(ctx, "evaluate")
}

func (a *app) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", filepath.Join(a.cfg.MapOutputDir, "listings_clean.csv"), "output CSV path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w, err := storage.NewCSVWriter(*out)
	if err != nil {
		return err
	}
	if err := writeAll(w, a.table.All()); err != nil {
		return err
	}
	a.logger.Info("Cleaned dataset written to %s", *out)
	return nil
}

func (a *app) runServe(ctx context.Context) error {
	handlers := api.NewHandlers(a.session, mapTitle)
	srv := api.NewServer(a.cfg.HTTPAddr, handlers, a.logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// writeAll writes listings and closes w.
func writeAll(w storage.ListingWriter, listings []*models.Listing) error {
	if err := w.Write(listings); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// writeMap saves the current map under name in the output directory: always
// as HTML, then PNG and shapefiles side by side when enabled.
func (a *app) writeMap(ctx context.Context, name string) error {
	state := a.canvas.State()
	base := filepath.Join(a.cfg.MapOutputDir, name)

	if err := mapview.WriteHTML(base+".html", mapTitle, state); err != nil {
		return err
	}
	a.logger.Info("Map written to %s.html", base)

	pool := utils.NewWorkerPool(a.cfg.MaxConcurrency, 0)
	if a.cfg.MapSnapshot {
		pool.Submit(func() error {
			snap := mapview.NewSnapshotter(a.cfg.ChromeBin, a.cfg.MaxRetries, a.logger)
			if err := snap.Capture(ctx, state, base+".png"); err != nil {
				a.logger.Warn("Map snapshot failed: %v", err)
				return nil
			}
			a.logger.Info("Map snapshot written to %s.png", base)
			return nil
		})
	}
	if a.cfg.MapShapefile {
		pool.Submit(func() error {
			written, err := mapview.ExportShapefiles(state, base)
			if err != nil {
				return err
			}
			for _, p := range written {
				a.logger.Info("Shapefile written to %s", p)
			}
			return nil
		})
	}
	return pool.Wait()
}

func printListing(w io.Writer, l *models.Listing, details []services.DetailLine) {
	fmt.Fprintf(w, "\n\033[1;35m  %s\033[0m\n", services.SelectionLabel(l.ID))
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 54))
	for _, d := range details {
		fmt.Fprintf(w, "  %-20s: %s\n", d.Label, d.Value)
	}
	fmt.Fprintln(w)
}

func printRecommendation(w io.Writer, rec *models.Recommendation) {
	fmt.Fprintf(w, "\n\033[1;33m  Recommended listing\033[0m (%d candidates)\n", rec.Candidates)
	printListing(w, rec.Best, services.Details(rec.Best))

	fmt.Fprintf(w, "\033[1;33m  Other listings in %s\033[0m (%d)\n", orNA(rec.Best.Suburb), len(rec.Peers))
	for _, p := range rec.Peers {
		fmt.Fprintf(w, "  %-14s %-40s %s\n", services.SelectionLabel(p.ID), orNA(p.Address), services.FormatCurrency(p.Price))
	}
	fmt.Fprintln(w)
}

func printEvaluation(w io.Writer, e *models.Evaluation) {
	fmt.Fprintf(w, "\n\033[1;33m  Price evaluation for %s\033[0m\n", e.Suburb)
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 54))
	fmt.Fprintf(w, "  Comparable listings   : %d\n", e.ComparableCount())
	fmt.Fprintf(w, "  Mean comparable price : \033[1;32m%s\033[0m\n", services.FormatOptionalCurrency(e.MeanComparablePrice))
	fmt.Fprintf(w, "  Model estimate        : \033[1;32m%s\033[0m\n\n", services.FormatCurrency(e.ModelEstimate))
}

func orNA(s string) string {
	if s == "" {
		return services.NotAvailable
	}
	return s
}
