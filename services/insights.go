package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"listing-advisor/models"
	"listing-advisor/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.DatasetSummary {
	report := &models.DatasetSummary{
		ListingsBySuburb: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var total float64
	for _, l := range listings {
		if l.HasCoordinates() {
			report.WithCoordinates++
		}
		if l.Suburb != "" {
			report.ListingsBySuburb[l.Suburb]++
		}
		// Coerced prices of 0 mean the source cell was empty.
		if l.Price <= 0 {
			continue
		}
		if report.PricedListings == 0 || l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if report.PricedListings == 0 || l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
			report.MostExpensive = l
		}
		total += l.Price
		report.PricedListings++
	}

	if report.PricedListings > 0 {
		report.AveragePrice = round2(total / float64(report.PricedListings))
	}

	s.logger.Debug("[insights] %d listings, %d priced, %d suburbs",
		report.TotalListings, report.PricedListings, len(report.ListingsBySuburb))
	return report
}

// SuburbCount is one row of the per-suburb breakdown.
type SuburbCount struct {
	Suburb string
	Count  int
}

// TopSuburbs returns suburbs by descending listing count, then by name.
func TopSuburbs(r *models.DatasetSummary, limit int) []SuburbCount {
	out := make([]SuburbCount, 0, len(r.ListingsBySuburb))
	for s, n := range r.ListingsBySuburb {
		out = append(out, SuburbCount{s, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Suburb < out[j].Suburb
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *InsightService) Print(w io.Writer, r *models.DatasetSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  LISTING DATASET SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total listings     : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  With a price       : \033[1m%d\033[0m\n", r.PricedListings)
	fmt.Fprintf(w, "  With coordinates   : \033[1m%d\033[0m\n", r.WithCoordinates)
	fmt.Fprintf(w, "  Suburbs            : \033[1m%d\033[0m\n", len(r.ListingsBySuburb))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.PricedListings > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m%s\033[0m\n", FormatCurrency(r.AveragePrice))
		fmt.Fprintf(w, "  Minimum price : \033[1;32m%s\033[0m\n", FormatCurrency(r.MinPrice))
		fmt.Fprintf(w, "  Maximum price : \033[1;32m%s\033[0m\n", FormatCurrency(r.MaxPrice))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s (%s)\n", SelectionLabel(r.MostExpensive.ID), truncate(text(r.MostExpensive.Address), 40))
		fmt.Fprintf(w, "  Suburb : %s\n", text(r.MostExpensive.Suburb))
		fmt.Fprintf(w, "  Price  : \033[1;31m%s\033[0m\n", FormatCurrency(r.MostExpensive.Price))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Top Suburbs by Listings\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	top := TopSuburbs(r, 10)
	if len(top) == 0 {
		fmt.Fprintf(w, "  No suburb data\n")
	}
	for _, sc := range top {
		bar := strings.Repeat("█", min(sc.Count, 30))
		fmt.Fprintf(w, "  %-24s %s (%d)\n", truncate(sc.Suburb, 22), bar, sc.Count)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
