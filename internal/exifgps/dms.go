package exifgps

import "errors"

// ErrZeroDenominator is returned when a rational angle component carries a
// zero denominator. The caller must treat the source tag as corrupt and
// leave the corresponding coordinate field absent.
var ErrZeroDenominator = errors.New("rational angle has zero denominator")

// RationalAngle is an unsigned angle magnitude encoded the EXIF way: three
// rational pairs for degrees, minutes and seconds.
type RationalAngle struct {
	DegNum, DegDen int64 // Degrees numerator and denominator.
	MinNum, MinDen int64 // Minutes numerator and denominator.
	SecNum, SecDen int64 // Seconds numerator and denominator.
}

// DMSToDecimal converts a degree/minute/second rational triple into an
// unsigned decimal degree value: deg + min/60 + sec/3600.
func DMSToDecimal(angle RationalAngle) (float64, error) {
	if angle.DegDen == 0 || angle.MinDen == 0 || angle.SecDen == 0 {
		return 0, ErrZeroDenominator
	}

	degrees := float64(angle.DegNum) / float64(angle.DegDen)
	minutes := float64(angle.MinNum) / float64(angle.MinDen) / 60
	seconds := float64(angle.SecNum) / float64(angle.SecDen) / 3600

	return degrees + minutes + seconds, nil
}
