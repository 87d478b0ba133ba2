package services

import (
	"context"
	"log/slog"
	"time"
)

// HealthService reports service liveness and build information.
type HealthService struct {
	version   string
	buildTime string
	startedAt time.Time
	data      *DataService
	logger    *slog.Logger
}

// NewHealthService creates a health service with build metadata.
func NewHealthService(version, buildTime string, data *DataService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startedAt: time.Now(),
		data:      data,
		logger:    logger,
	}
}

// HealthStatus is the response body for health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Dataset string `json:"dataset,omitempty"`
	Records int    `json:"records,omitempty"`
}

// HealthCheck reports overall status including the active dataset.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:  "healthy",
		Version: s.version,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}
	if ds, err := s.data.Dataset(ctx); err == nil {
		status.Dataset = ds.Name
		status.Records = len(ds.Records)
	} else {
		status.Status = "degraded"
	}
	return status
}

// LivenessCheck reports process liveness only.
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:  "alive",
		Version: s.version,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}
}

// ReadinessCheck reports whether a dataset is loadable.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := s.HealthCheck(ctx)
	if status.Status == "healthy" {
		status.Status = "ready"
	}
	return status
}

// VersionInfo is the response body for the version endpoint.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
}

// Version returns build metadata.
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{Version: s.version, BuildTime: s.buildTime}
}
