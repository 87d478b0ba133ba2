// Package dataprocessing implements the filtering-and-aggregation engine
// for diagnostic lab records: record normalization, cascading filter
// resolution, aggregation, and per-farm report assembly.
//
// # Architecture
//
// The package is organized into four components, in dependency order:
//
//  1. Normalizer: parses raw heterogeneous rows into canonical records
//  2. Resolver: applies the five cascading filter stages and computes the
//     option universe each stage may offer
//  3. Aggregator: KPI summaries, per-farm breakdowns, disease×result pivot
//  4. Report assembler: combines the above into a per-farm report document
//
// # Data Flow
//
//	Raw rows → Normalize → []TestRecord → Resolve → filtered set
//	          → Summarize / GroupByFarm / PivotDiseaseByResult → BuildReport
//
// Everything past normalization is a pure function over immutable inputs:
// filtering produces fresh slices and never mutates the base record set,
// so repeated calls on the same input yield identical output.
//
// # Error Handling
//
// Load-time failures are typed: *SchemaError for missing columns and
// *DateParseError for unreadable dates, both fatal to the load attempt.
// CT parse failures are not errors; they coerce to an absent value, which
// is the domain convention for "No Ct". *EmptyFarmError is per-request
// and only raised when the farm is absent from the base set entirely.
package dataprocessing
