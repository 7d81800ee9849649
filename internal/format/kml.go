package format

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/picatlas/picatlas/internal/models"
)

// KML overlay document. Each located record becomes one labeled point at
// its (longitude, latitude).
type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Point       kmlPoint `xml:"Point"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

// renderKML produces the map-overlay document. Records without a position
// cannot be placed and are left out.
func renderKML(records []models.ReportRecord) ([]byte, error) {
	doc := kmlRoot{
		Xmlns:    "http://www.opengis.net/kml/2.2",
		Document: kmlDocument{Name: "Photo locations"},
	}

	for _, record := range records {
		if !record.Coordinate.HasLatLong() {
			continue
		}

		doc.Document.Placemarks = append(doc.Document.Placemarks, kmlPlacemark{
			Name:        filepath.Base(record.Paths[0]),
			Description: describe(record),
			Point:       kmlPoint{Coordinates: kmlCoordinates(record.Coordinate)},
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal KML: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}

// kmlCoordinates formats a position as "lon,lat" with the altitude appended
// when present.
func kmlCoordinates(coord models.Coordinate) string {
	parts := []string{
		strconv.FormatFloat(*coord.Longitude, 'f', -1, 64),
		strconv.FormatFloat(*coord.Latitude, 'f', -1, 64),
	}
	if coord.Altitude != nil {
		parts = append(parts, strconv.FormatFloat(*coord.Altitude, 'f', -1, 64))
	}

	return strings.Join(parts, ",")
}

func describe(record models.ReportRecord) string {
	var b strings.Builder

	b.WriteString(strings.Join(record.Paths, "\n"))
	if record.Address != "" {
		b.WriteString("\n")
		b.WriteString(record.Address)
	}

	return b.String()
}
