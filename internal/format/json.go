package format

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/picatlas/picatlas/internal/models"
)

// jsonRecord is the wire shape of a single report record in the structured
// output. Absent coordinate fields are omitted entirely.
type jsonRecord struct {
	Paths     []string `json:"paths"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// RenderJSON serializes records as an indented JSON document keyed by
// fingerprint.
func RenderJSON(records []models.ReportRecord) ([]byte, error) {
	doc := make(map[models.Fingerprint]jsonRecord, len(records))
	for _, record := range records {
		doc[record.Fingerprint] = jsonRecord{
			Paths:     record.Paths,
			Latitude:  record.Coordinate.Latitude,
			Longitude: record.Coordinate.Longitude,
			Altitude:  record.Coordinate.Altitude,
			Address:   record.Address,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return data, nil
}

// ParseJSON decodes a document produced by RenderJSON back into report
// records, ordered by fingerprint. Fingerprints, path lists and coordinate
// values round-trip exactly.
func ParseJSON(data []byte) ([]models.ReportRecord, error) {
	var doc map[models.Fingerprint]jsonRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	records := make([]models.ReportRecord, 0, len(doc))
	for fingerprint, rec := range doc {
		records = append(records, models.ReportRecord{
			Fingerprint: fingerprint,
			Paths:       rec.Paths,
			Coordinate: models.Coordinate{
				Latitude:  rec.Latitude,
				Longitude: rec.Longitude,
				Altitude:  rec.Altitude,
			},
			Address: rec.Address,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Fingerprint < records[j].Fingerprint
	})

	return records, nil
}
