package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "farmdx/internal/errors"
	"farmdx/pkg/contracts/domain"
)

// defaultMaxUploadBytes caps dataset uploads when no limit is configured.
const defaultMaxUploadBytes = 10 << 20

// queryDateLayout is the wire format for from/to query parameters.
const queryDateLayout = "2006-01-02"

// DataHandler handles dataset and reporting HTTP requests.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
	maxUpload    int64
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxUpload:    defaultMaxUploadBytes,
	}
}

// WithUploadLimit overrides the maximum accepted upload size.
func (h *DataHandler) WithUploadLimit(limit int64) *DataHandler {
	if limit > 0 {
		h.maxUpload = limit
	}
	return h
}

// Routes returns the data routes with proper Chi patterns.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.Upload)
	r.Get("/resolve", h.Resolve)
	r.Get("/records", h.GetRecords)
	r.Get("/records/csv", h.DownloadRecordsCSV)
	r.Get("/summary", h.GetSummary)
	r.Get("/farms", h.GetFarms)
	r.Get("/pivot", h.GetPivot)

	r.Route("/report/{farm}", func(r chi.Router) {
		r.Use(h.FarmCtx)
		r.Get("/", h.DownloadReport)
	})

	return r
}

// selectionParams carries the raw filter query parameters before
// validation and date parsing.
type selectionParams struct {
	Specie  string `validate:"omitempty,max=100"`
	Farm    string `validate:"omitempty,max=200"`
	Disease string `validate:"omitempty,max=200"`
	Result  string `validate:"omitempty,max=50"`
	From    string `validate:"omitempty,datetime=2006-01-02"`
	To      string `validate:"omitempty,datetime=2006-01-02"`
}

// bindSelection builds a validated Selection from query parameters.
// Absent or "All" values leave that stage unfiltered.
func (h *DataHandler) bindSelection(r *http.Request) (domain.Selection, error) {
	q := r.URL.Query()
	params := selectionParams{
		Specie:  q.Get("specie"),
		Farm:    q.Get("farm"),
		Disease: q.Get("disease"),
		Result:  q.Get("result"),
		From:    q.Get("from"),
		To:      q.Get("to"),
	}

	if err := h.validate.Struct(params); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field := errs[0].Field()
			return domain.Selection{}, apierrors.ErrValidation(field, fmt.Sprintf("Invalid value for %s", field))
		}
		return domain.Selection{}, apierrors.ErrValidationFailed
	}

	sel := domain.Selection{
		Specie:  params.Specie,
		Farm:    params.Farm,
		Disease: params.Disease,
		Result:  params.Result,
	}
	if params.From != "" {
		from, _ := time.Parse(queryDateLayout, params.From)
		sel.From = from
	}
	if params.To != "" {
		to, _ := time.Parse(queryDateLayout, params.To)
		sel.To = to
	}
	if !sel.From.IsZero() && !sel.To.IsZero() && sel.To.Before(sel.From) {
		return domain.Selection{}, apierrors.ErrValidation("to", "End date must not precede start date")
	}
	return sel, nil
}

// FarmCtx validates the farm URL parameter.
func (h *DataHandler) FarmCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		farm := chi.URLParam(r, "farm")
		if farm == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("farm", "Farm name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/data/upload. Accepts one multipart file field
// named "file"; on success the uploaded dataset replaces the active one.
func (h *DataHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest, "INVALID_UPLOAD", "Upload must be multipart form data within the size limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A dataset file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset upload received",
		slog.String("filename", header.Filename),
		slog.Int("bytes", len(data)),
	)

	ds, err := h.service.Upload(r.Context(), header.Filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status":  "success",
		"dataset": ds.Key,
		"name":    ds.Name,
		"records": len(ds.Records),
	})
}

// Resolve handles GET /api/data/resolve. Returns the per-stage option
// lists, the resolved period and the candidate count for the selection.
func (h *DataHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := h.service.Resolve(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   res,
		"count":  len(res.Candidates),
	})
}

// GetRecords handles GET /api/data/records.
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := h.service.Resolve(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   res.Candidates,
		"count":  len(res.Candidates),
	})
}

// DownloadRecordsCSV handles GET /api/data/records/csv.
func (h *DataHandler) DownloadRecordsCSV(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.service.DetailCSV(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	w.Write(data)
}

// GetSummary handles GET /api/data/summary.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   summary,
	})
}

// GetFarms handles GET /api/data/farms.
func (h *DataHandler) GetFarms(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	farms, err := h.service.Farms(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   farms,
		"count":  len(farms),
	})
}

// GetPivot handles GET /api/data/pivot.
func (h *DataHandler) GetPivot(w http.ResponseWriter, r *http.Request) {
	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	pivot, err := h.service.Pivot(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   pivot,
	})
}

// DownloadReport handles GET /api/data/report/{farm}. Streams the
// standalone HTML document with a download disposition.
func (h *DataHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	farm := chi.URLParam(r, "farm")

	sel, err := h.bindSelection(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	doc, filename, err := h.service.ReportHTML(r.Context(), sel, farm)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "report download",
		slog.String("farm", farm),
		slog.String("filename", filename),
		slog.Int("bytes", len(doc)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Write(doc)
}
