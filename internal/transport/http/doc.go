// Package http provides the HTTP transport layer for the reporting API.
//
// Handlers translate HTTP requests into service calls and service
// results into JSON responses. They hold no business logic: query
// parameters are bound and validated here, then handed to the services
// layer, and every failure goes through the central error handler so
// all endpoints share one error envelope.
//
// # Routes
//
//	POST /api/data/upload         replace the session dataset
//	GET  /api/data/resolve        cascading filter options and period
//	GET  /api/data/records        filtered detail rows
//	GET  /api/data/records/csv    filtered detail rows as CSV download
//	GET  /api/data/summary        KPI summary for the current filter
//	GET  /api/data/farms          per-farm summary cards
//	GET  /api/data/pivot          disease by result counts
//	GET  /api/data/report/{farm}  standalone HTML report download
//	GET  /api/health              health, liveness, readiness, version
package http
