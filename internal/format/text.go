package format

import (
	"fmt"
	"strings"

	"github.com/picatlas/picatlas/internal/models"
)

// renderText produces the human-readable report: one block per record with
// the duplicate path list, the coordinate and the resolved address.
func renderText(records []models.ReportRecord) []byte {
	var b strings.Builder

	for i, record := range records {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s\n", record.Paths[0])
		fmt.Fprintf(&b, "  fingerprint: %s\n", record.Fingerprint)
		for _, dup := range record.Paths[1:] {
			fmt.Fprintf(&b, "  duplicate:   %s\n", dup)
		}

		if record.Coordinate.HasLatLong() {
			fmt.Fprintf(&b, "  latitude:    %.6f\n", *record.Coordinate.Latitude)
			fmt.Fprintf(&b, "  longitude:   %.6f\n", *record.Coordinate.Longitude)
		} else {
			b.WriteString("  location:    none\n")
		}
		if record.Coordinate.Altitude != nil {
			fmt.Fprintf(&b, "  altitude:    %.1f m\n", *record.Coordinate.Altitude)
		}
		if record.Address != "" {
			fmt.Fprintf(&b, "  address:     %s\n", record.Address)
		}
	}

	return []byte(b.String())
}
