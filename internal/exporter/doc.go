// Package exporter renders assembled reports into downloadable artifacts:
// a standalone per-farm HTML document and a CSV projection of detail rows.
// It only formats; all aggregation happens in dataprocessing.
package exporter
