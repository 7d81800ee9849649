package format_test

import (
	"testing"

	"github.com/picatlas/picatlas/internal/format"
	"github.com/picatlas/picatlas/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.ReportRecord {
	return []models.ReportRecord{
		{
			Fingerprint: "aaa111",
			Paths:       []string{"/photos/munich.jpg", "/backup/munich.jpg"},
			Coordinate: models.Coordinate{
				Latitude:  models.Float64Ptr(48.268275),
				Longitude: models.Float64Ptr(11.603361),
				Altitude:  models.Float64Ptr(540.05),
			},
			Address: "Garching bei München, Germany",
		},
		{
			Fingerprint: "bbb222",
			Paths:       []string{"/photos/scan.jpg"},
		},
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"text", "json", "kml"} {
		mode, err := format.ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, format.Mode(valid), mode)
	}

	_, err := format.ParseMode("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRenderText(t *testing.T) {
	output, err := format.Render(format.ModeText, sampleRecords())

	require.NoError(t, err)
	text := string(output)
	assert.Contains(t, text, "/photos/munich.jpg")
	assert.Contains(t, text, "duplicate:   /backup/munich.jpg")
	assert.Contains(t, text, "latitude:    48.268275")
	assert.Contains(t, text, "longitude:   11.603361")
	assert.Contains(t, text, "address:     Garching bei München, Germany")
	assert.Contains(t, text, "location:    none")
}

func TestJSONRoundTrip(t *testing.T) {
	records := sampleRecords()

	output, err := format.RenderJSON(records)
	require.NoError(t, err)

	parsed, err := format.ParseJSON(output)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	// ParseJSON orders by fingerprint; the sample is already sorted.
	for i, record := range records {
		assert.Equal(t, record.Fingerprint, parsed[i].Fingerprint)
		assert.Equal(t, record.Paths, parsed[i].Paths)
		assert.Equal(t, record.Address, parsed[i].Address)
	}

	require.NotNil(t, parsed[0].Coordinate.Latitude)
	assert.InDelta(t, 48.268275, *parsed[0].Coordinate.Latitude, 1e-9)
	require.NotNil(t, parsed[0].Coordinate.Longitude)
	assert.InDelta(t, 11.603361, *parsed[0].Coordinate.Longitude, 1e-9)
	require.NotNil(t, parsed[0].Coordinate.Altitude)
	assert.InDelta(t, 540.05, *parsed[0].Coordinate.Altitude, 1e-9)

	assert.Nil(t, parsed[1].Coordinate.Latitude)
	assert.Nil(t, parsed[1].Coordinate.Longitude)
	assert.Nil(t, parsed[1].Coordinate.Altitude)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := format.ParseJSON([]byte("not json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal report")
}

func TestRenderKML(t *testing.T) {
	output, err := format.Render(format.ModeKML, sampleRecords())

	require.NoError(t, err)
	kml := string(output)
	assert.Contains(t, kml, `<kml xmlns="http://www.opengis.net/kml/2.2">`)
	assert.Contains(t, kml, "<name>munich.jpg</name>")
	// KML points are longitude-first.
	assert.Contains(t, kml, "<coordinates>11.603361,48.268275,540.05</coordinates>")
	assert.Contains(t, kml, "Garching bei München, Germany")
	// The record without a position cannot be placed on the map.
	assert.NotContains(t, kml, "scan.jpg")
}

func TestRenderKML_NoAltitude(t *testing.T) {
	records := []models.ReportRecord{
		{
			Fingerprint: "ccc333",
			Paths:       []string{"/photos/flat.jpg"},
			Coordinate: models.Coordinate{
				Latitude:  models.Float64Ptr(-48.2766),
				Longitude: models.Float64Ptr(11.60336),
			},
		},
	}

	output, err := format.Render(format.ModeKML, records)

	require.NoError(t, err)
	assert.Contains(t, string(output), "<coordinates>11.60336,-48.2766</coordinates>")
}

func TestRender_UnknownMode(t *testing.T) {
	_, err := format.Render(format.Mode("yaml"), sampleRecords())

	require.Error(t, err)
}
