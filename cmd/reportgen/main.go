// Command reportgen renders a farm report to HTML without the server.
// It loads a dataset file (or the embedded sample), applies optional
// filters and writes the standalone report document.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"farmdx/internal/loader"
	"farmdx/internal/services"
	"farmdx/pkg/contracts/domain"
)

func main() {
	input := flag.String("in", "", "dataset file (.csv, .tsv or .xlsx); embedded sample when empty")
	outputDir := flag.String("out", ".", "output directory for the report")
	farm := flag.String("farm", "", "farm to report on (defaults to the first farm in the filtered set)")
	specie := flag.String("specie", "", "specie filter")
	disease := flag.String("disease", "", "disease filter")
	result := flag.String("result", "", "result filter")
	from := flag.String("from", "", "period start (YYYY-MM-DD)")
	to := flag.String("to", "", "period end (YYYY-MM-DD)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	store := loader.NewStore(logger)
	svc := services.NewDataService(store, logger)
	ctx := context.Background()

	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			logger.Error("Failed to read dataset file", "error", err)
			os.Exit(1)
		}
		if _, err := svc.Upload(ctx, filepath.Base(*input), data); err != nil {
			logger.Error("Failed to load dataset", "error", err)
			os.Exit(1)
		}
	}

	sel := domain.Selection{
		Specie:  *specie,
		Farm:    *farm,
		Disease: *disease,
		Result:  *result,
	}
	var err error
	if sel.From, err = parseDate(*from); err != nil {
		logger.Error("Invalid -from date", "error", err)
		os.Exit(1)
	}
	if sel.To, err = parseDate(*to); err != nil {
		logger.Error("Invalid -to date", "error", err)
		os.Exit(1)
	}

	target := *farm
	if target == "" {
		target, err = svc.DefaultReportFarm(ctx, sel)
		if err != nil {
			logger.Error("No farm available for reporting", "error", err)
			os.Exit(1)
		}
	}

	doc, filename, err := svc.ReportHTML(ctx, sel, target)
	if err != nil {
		logger.Error("Failed to build report", "farm", target, "error", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outputDir, filename)
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		logger.Error("Failed to write report", "path", outPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Report written to %s\n", outPath)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
