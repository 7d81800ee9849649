// Package format renders an ordered sequence of report records into one of
// the supported output representations.
package format

import (
	"fmt"

	"github.com/picatlas/picatlas/internal/models"
)

// Mode selects the output representation of a report.
type Mode string

const (
	// ModeText is a human-readable multi-line report.
	ModeText Mode = "text"
	// ModeJSON is a machine-readable document indexed by fingerprint.
	ModeJSON Mode = "json"
	// ModeKML is a geospatial overlay with one labeled point per record.
	ModeKML Mode = "kml"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeText, ModeJSON, ModeKML:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", s)
	}
}

// Render serializes records in the given mode. Record order is preserved in
// every mode.
func Render(mode Mode, records []models.ReportRecord) ([]byte, error) {
	switch mode {
	case ModeText:
		return renderText(records), nil
	case ModeJSON:
		return RenderJSON(records)
	case ModeKML:
		return renderKML(records)
	default:
		return nil, fmt.Errorf("unsupported output format: %q", mode)
	}
}
