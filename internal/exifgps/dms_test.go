package exifgps_test

import (
	"testing"

	"github.com/picatlas/picatlas/internal/exifgps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMSToDecimal(t *testing.T) {
	t.Run("camera-style rationals", func(t *testing.T) {
		// 48° 16' 5.79" as written by a typical phone camera.
		angle := exifgps.RationalAngle{
			DegNum: 48, DegDen: 1,
			MinNum: 16, MinDen: 1,
			SecNum: 579, SecDen: 100,
		}

		value, err := exifgps.DMSToDecimal(angle)

		require.NoError(t, err)
		assert.InDelta(t, 48.0+16.0/60.0+5.79/3600.0, value, 1e-9)
	})

	t.Run("whole-number components", func(t *testing.T) {
		angle := exifgps.RationalAngle{
			DegNum: 37, DegDen: 1,
			MinNum: 48, MinDen: 1,
			SecNum: 30, SecDen: 1,
		}

		value, err := exifgps.DMSToDecimal(angle)

		require.NoError(t, err)
		assert.InDelta(t, 37.808333333, value, 1e-9)
	})

	t.Run("zero magnitude", func(t *testing.T) {
		angle := exifgps.RationalAngle{DegDen: 1, MinDen: 1, SecDen: 1}

		value, err := exifgps.DMSToDecimal(angle)

		require.NoError(t, err)
		assert.Zero(t, value)
	})

	t.Run("zero denominators", func(t *testing.T) {
		angles := map[string]exifgps.RationalAngle{
			"degrees": {DegNum: 48, DegDen: 0, MinDen: 1, SecDen: 1},
			"minutes": {DegDen: 1, MinNum: 16, MinDen: 0, SecDen: 1},
			"seconds": {DegDen: 1, MinDen: 1, SecNum: 579, SecDen: 0},
		}

		for name, angle := range angles {
			_, err := exifgps.DMSToDecimal(angle)
			assert.ErrorIs(t, err, exifgps.ErrZeroDenominator, name)
		}
	})
}
