package dataprocessing

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an input header after
// normalization. It is fatal to the load attempt: no partial dataset is
// ever produced.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// DateParseError reports a test-date cell that matched none of the known
// textual formats nor the spreadsheet serial fallback. Dates are a sort
// and filter key, so the whole load aborts rather than skipping the row.
type DateParseError struct {
	Row   int
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: unparseable test date %q", e.Row, e.Value)
}

// EmptyFarmError reports a report request for a farm with zero rows in the
// base record set. A farm filtered down to zero rows is not this error;
// that case yields a valid empty report.
type EmptyFarmError struct {
	Farm string
}

func (e *EmptyFarmError) Error() string {
	return fmt.Sprintf("farm %q has no records in the dataset", e.Farm)
}
