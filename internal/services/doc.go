// Package services orchestrates the dataset store and the
// dataprocessing engine behind the HTTP transport: one DataService per
// session holds the immutable base record set and answers filter,
// aggregation, and report requests as fresh derived values, plus a
// HealthService for liveness and build information.
package services
