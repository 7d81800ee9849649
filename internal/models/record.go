package models

// Fingerprint is a content-derived file identifier: the lowercase hex
// encoding of a SHA-256 digest over the whole file. Two files with
// identical bytes always share a fingerprint.
type Fingerprint string

// FileGroup collects every scanned path whose content hashes to the same
// fingerprint. Paths keep their first-seen discovery order; Paths[0] is the
// representative used for metadata extraction. Groups are owned by the scan
// phase and read-only afterwards.
type FileGroup struct {
	Fingerprint Fingerprint // Content hash shared by every path in the group.
	Paths       []string    // All paths with this content, in discovery order.
}

// ReportRecord is one output-ready unit describing a unique photo: the
// duplicate set it stands for, its coordinate, and an optionally resolved
// address. Records are immutable once assembled.
type ReportRecord struct {
	Fingerprint Fingerprint // Identity of the duplicate set.
	Paths       []string    // Every path sharing the fingerprint.
	Coordinate  Coordinate  // Location extracted from the representative file.
	Address     string      // Resolved human-readable address, empty if unavailable.
}
