package services

import "errors"

var (
	// ErrNoDataset indicates the session has no loaded dataset and the
	// embedded sample could not be loaded either.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrNoFarms indicates report generation was requested while the
	// current filter leaves no farm to default to.
	ErrNoFarms = errors.New("no farms available for report")
)
