package scan

import "bytes"

// TypeSniffer inspects the leading bytes of a file and returns a recognized
// type tag, or an empty string for unsupported content. Recognition is by
// content signature only; file extensions are never consulted. New formats
// are added by swapping the sniffer, not by touching the pipeline.
type TypeSniffer func(prefix []byte) string

// TypeJPEG is the tag returned for JPEG content, the only supported photo
// type.
const TypeJPEG = "jpeg"

// sniffLen is how many leading bytes the scanner reads for type detection.
const sniffLen = 16

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

// SniffImage is the default TypeSniffer. It recognizes JPEG by its SOI
// marker.
func SniffImage(prefix []byte) string {
	if bytes.HasPrefix(prefix, jpegMagic) {
		return TypeJPEG
	}

	return ""
}
