package exifgps

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/picatlas/picatlas/internal/models"
	"github.com/rwcarlsen/goexif/exif"
)

// ErrUnreadable is returned when the source file cannot be opened or read.
// Unlike a missing or corrupt EXIF block, this is a real failure and callers
// must not mistake it for a "no location data" result.
var ErrUnreadable = errors.New("file cannot be read")

// belowSeaLevel is the GPSAltitudeRef value marking a negative altitude.
const belowSeaLevel = 1

// Extractor reads the EXIF block of a photo and produces a Coordinate with
// hemisphere sign correction applied.
type Extractor struct {
	log *slog.Logger
}

// NewExtractor creates an Extractor logging through the given logger.
func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

// ExtractFile opens the file at path and extracts its GPS coordinate. The
// file handle never outlives the call. An open failure is reported as
// ErrUnreadable; a file without usable EXIF data yields an empty Coordinate
// and no error.
func (e *Extractor) ExtractFile(path string) (models.Coordinate, error) {
	file, err := os.Open(path)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()

	return e.Extract(file)
}

// Extract reads the EXIF block from r and returns the embedded GPS
// coordinate. Missing tags yield absent fields: latitude and longitude are
// only populated together, altitude independently. A missing or malformed
// EXIF block is not an error.
func (e *Extractor) Extract(r io.Reader) (models.Coordinate, error) {
	var coord models.Coordinate

	meta, err := exif.Decode(r)
	if err != nil {
		// No recognizable EXIF header, or a block too damaged to parse.
		e.log.Debug("no usable EXIF block", "error", err)
		return coord, nil
	}

	lat, latOK := e.angle(meta, exif.GPSLatitude)
	lon, lonOK := e.angle(meta, exif.GPSLongitude)
	if latOK && lonOK {
		if e.ref(meta, exif.GPSLatitudeRef) == "S" {
			lat = -lat
		}
		if e.ref(meta, exif.GPSLongitudeRef) == "W" {
			lon = -lon
		}
		coord.Latitude = models.Float64Ptr(lat)
		coord.Longitude = models.Float64Ptr(lon)
	}

	if alt, ok := e.altitude(meta); ok {
		coord.Altitude = models.Float64Ptr(alt)
	}

	return coord, nil
}

// angle decodes a three-rational DMS tag into unsigned decimal degrees.
// Any missing, short or zero-denominator tag counts as absent.
func (e *Extractor) angle(meta *exif.Exif, field exif.FieldName) (float64, bool) {
	tag, err := meta.Get(field)
	if err != nil {
		return 0, false
	}

	var angle RationalAngle
	if angle.DegNum, angle.DegDen, err = tag.Rat2(0); err != nil {
		return 0, false
	}
	if angle.MinNum, angle.MinDen, err = tag.Rat2(1); err != nil {
		return 0, false
	}
	if angle.SecNum, angle.SecDen, err = tag.Rat2(2); err != nil {
		return 0, false
	}

	value, err := DMSToDecimal(angle)
	if err != nil {
		e.log.Debug("corrupt DMS tag", "field", field, "error", err)
		return 0, false
	}

	return value, true
}

// ref returns the printable hemisphere reference for field, or "" when the
// tag is absent. Matching against "S"/"W" is exact and case-sensitive; any
// other value is treated as northern/eastern.
func (e *Extractor) ref(meta *exif.Exif, field exif.FieldName) string {
	tag, err := meta.Get(field)
	if err != nil {
		return ""
	}

	value, err := tag.StringVal()
	if err != nil {
		return ""
	}

	return value
}

// altitude decodes the single-rational GPSAltitude tag, negated when
// GPSAltitudeRef marks the value as below sea level. An absent altitude tag
// stays absent; there is no zero default.
func (e *Extractor) altitude(meta *exif.Exif) (float64, bool) {
	tag, err := meta.Get(exif.GPSAltitude)
	if err != nil {
		return 0, false
	}

	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}

	value := float64(num) / float64(den)
	if refTag, refErr := meta.Get(exif.GPSAltitudeRef); refErr == nil {
		if ref, intErr := refTag.Int(0); intErr == nil && ref == belowSeaLevel {
			value = -value
		}
	}

	return value, true
}
