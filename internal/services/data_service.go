package services

import (
	"context"
	"fmt"
	"log/slog"

	"farmdx/internal/dataprocessing"
	"farmdx/internal/exporter"
	"farmdx/internal/loader"
	"farmdx/pkg/contracts/domain"
)

// DataService answers every data question for one session: it owns the
// dataset store and runs the pure filtering/aggregation pipeline on each
// request. All derived values are computed fresh; nothing here mutates
// the base record set.
type DataService struct {
	store  *loader.Store
	logger *slog.Logger
}

// NewDataService creates a data service backed by the given store.
func NewDataService(store *loader.Store, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		store:  store,
		logger: logger.With(slog.String("component", "data_service")),
	}
}

// Upload replaces the session dataset with an uploaded file. On failure
// the previous dataset stays active.
func (s *DataService) Upload(ctx context.Context, filename string, data []byte) (*loader.Dataset, error) {
	s.logger.InfoContext(ctx, "loading uploaded dataset",
		slog.String("filename", filename),
		slog.Int("bytes", len(data)))

	ds, err := s.store.LoadBytes(filename, data)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "uploaded dataset active",
		slog.String("filename", filename),
		slog.Int("records", len(ds.Records)))
	return ds, nil
}

// Dataset returns the active base record set, loading the embedded sample
// on first use.
func (s *DataService) Dataset(ctx context.Context) (*loader.Dataset, error) {
	ds, err := s.store.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDataset, err)
	}
	return ds, nil
}

// Resolve runs one cascading-filter pass for the given selection.
func (s *DataService) Resolve(ctx context.Context, sel domain.Selection) (domain.Resolution, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.Resolution{}, err
	}
	return dataprocessing.Resolve(ds.Records, sel), nil
}

// Summary computes the KPI summary for the current filter.
func (s *DataService) Summary(ctx context.Context, sel domain.Selection) (domain.Summary, error) {
	res, err := s.Resolve(ctx, sel)
	if err != nil {
		return domain.Summary{}, err
	}
	return dataprocessing.Summarize(res.Candidates), nil
}

// Farms computes the per-farm overview cards for the current filter.
func (s *DataService) Farms(ctx context.Context, sel domain.Selection) ([]domain.FarmSummary, error) {
	res, err := s.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	return dataprocessing.GroupByFarm(res.Candidates), nil
}

// Pivot computes the disease-by-result matrix for the current filter.
func (s *DataService) Pivot(ctx context.Context, sel domain.Selection) (domain.Pivot, error) {
	res, err := s.Resolve(ctx, sel)
	if err != nil {
		return domain.Pivot{}, err
	}
	return dataprocessing.PivotDiseaseByResult(res.Candidates), nil
}

// Report assembles the per-farm report for the current filter. A farm
// absent from the base set yields *dataprocessing.EmptyFarmError; a farm
// filtered to zero rows yields a valid empty report.
func (s *DataService) Report(ctx context.Context, sel domain.Selection, farm string) (domain.Report, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	res := dataprocessing.Resolve(ds.Records, sel)
	report, err := dataprocessing.BuildReport(ds.Records, res.Candidates, farm)
	if err != nil {
		return domain.Report{}, err
	}

	s.logger.InfoContext(ctx, "report assembled",
		slog.String("farm", farm),
		slog.Int("total", report.Summary.Total))
	return report, nil
}

// ReportHTML renders the standalone HTML report document plus its
// download filename.
func (s *DataService) ReportHTML(ctx context.Context, sel domain.Selection, farm string) ([]byte, string, error) {
	report, err := s.Report(ctx, sel, farm)
	if err != nil {
		return nil, "", err
	}
	doc, err := exporter.FarmReportHTML(report)
	if err != nil {
		return nil, "", err
	}
	return doc, exporter.ReportFilename(farm), nil
}

// DefaultReportFarm picks the farm a report defaults to: the selected
// farm filter when it is a concrete value still present in the filtered
// set, else the first available farm.
func (s *DataService) DefaultReportFarm(ctx context.Context, sel domain.Selection) (string, error) {
	res, err := s.Resolve(ctx, sel)
	if err != nil {
		return "", err
	}
	farms := domain.DistinctValues(res.Candidates, func(r domain.TestRecord) string { return r.FarmName })
	if len(farms) == 0 {
		return "", ErrNoFarms
	}
	if !domain.IsAll(sel.Farm) {
		for _, f := range farms {
			if f == sel.Farm {
				return f, nil
			}
		}
	}
	return farms[0], nil
}

// DetailCSV renders the filtered detail rows as CSV for download.
func (s *DataService) DetailCSV(ctx context.Context, sel domain.Selection) ([]byte, error) {
	res, err := s.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.DetailRow, 0, len(res.Candidates))
	for _, rec := range res.Candidates {
		rows = append(rows, domain.DetailRow{
			SampleID:   rec.SampleID,
			Specie:     rec.Specie,
			Disease:    rec.Disease,
			TestDate:   rec.Day(),
			CTValueRaw: rec.CTValueRaw,
			Result:     rec.Result,
		})
	}
	return exporter.DetailCSV(rows, true)
}
