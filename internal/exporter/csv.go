package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"farmdx/pkg/contracts/domain"
)

var detailHeader = []string{"Sample ID", "Specie", "Disease", "Test Date", "CT Value", "Result"}

// DetailCSV writes the six-column detail projection as CSV bytes. The
// UTF-8 BOM prefix helps Excel recognize the encoding.
func DetailCSV(rows []domain.DetailRow, bom bool) ([]byte, error) {
	var buf bytes.Buffer
	if bom {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}

	writer := csv.NewWriter(&buf)
	if err := writer.Write(detailHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			row.SampleID,
			row.Specie,
			row.Disease,
			row.TestDate.Format(dateLayout),
			row.CTValueRaw,
			row.Result,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
