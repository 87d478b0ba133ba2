package http

import (
	"context"

	"farmdx/internal/loader"
	"farmdx/pkg/contracts/domain"
)

// DataServiceInterface defines the service surface the data handler
// depends on. Declared transport-side so tests can substitute a stub.
type DataServiceInterface interface {
	Upload(ctx context.Context, filename string, data []byte) (*loader.Dataset, error)
	Resolve(ctx context.Context, sel domain.Selection) (domain.Resolution, error)
	Summary(ctx context.Context, sel domain.Selection) (domain.Summary, error)
	Farms(ctx context.Context, sel domain.Selection) ([]domain.FarmSummary, error)
	Pivot(ctx context.Context, sel domain.Selection) (domain.Pivot, error)
	Report(ctx context.Context, sel domain.Selection, farm string) (domain.Report, error)
	ReportHTML(ctx context.Context, sel domain.Selection, farm string) ([]byte, string, error)
	DetailCSV(ctx context.Context, sel domain.Selection) ([]byte, error)
}
