package loader

import (
	"bytes"
	_ "embed"

	"farmdx/pkg/contracts/domain"
)

// SampleKey is the store key for the embedded sample dataset.
const SampleKey = "sample"

// Embedded sample dataset, used when no upload has been supplied.
//
//go:embed sample.tsv
var sampleData []byte

// Sample parses the embedded sample dataset.
func (l *Loader) Sample() ([]domain.TestRecord, error) {
	return l.ReadCSV(bytes.NewReader(sampleData))
}
