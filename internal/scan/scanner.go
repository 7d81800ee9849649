package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/picatlas/picatlas/internal/metrics"
	"github.com/picatlas/picatlas/internal/models"
)

// ErrUnsupportedType is returned when a candidate file's content signature
// does not match a supported photo type.
var ErrUnsupportedType = errors.New("unsupported file type")

// Scanner fingerprints candidate files and groups byte-identical duplicates.
// Files are processed strictly one at a time; given the same bytes and the
// same discovery order the grouping is fully deterministic.
type Scanner struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	sniff   TypeSniffer
}

// NewScanner creates a Scanner using the given sniffer to recognize
// supported photo types.
func NewScanner(log *slog.Logger, appMetrics *metrics.Metrics, sniff TypeSniffer) *Scanner {
	return &Scanner{log: log, metrics: appMetrics, sniff: sniff}
}

// Scan fingerprints every candidate path and returns one FileGroup per
// distinct content, in first-seen order. Paths within a group keep their
// discovery order; Paths[0] is the representative. A file that cannot be
// read is logged and excluded without aborting the scan.
func (s *Scanner) Scan(ctx context.Context, paths []string) []models.FileGroup {
	groups := make([]models.FileGroup, 0, len(paths))
	index := make(map[models.Fingerprint]int)

	for i, path := range paths {
		if ctx.Err() != nil {
			s.log.WarnContext(ctx, "Scan interrupted", "remaining", len(paths)-i)
			break
		}

		s.metrics.FilesScanned.Inc()

		fingerprint, err := s.fingerprint(path)
		switch {
		case errors.Is(err, ErrUnsupportedType):
			s.metrics.FilesSkipped.WithLabelValues(metrics.ReasonUnsupported).Inc()
			s.log.DebugContext(ctx, "Skipping unsupported file", "path", path)
			continue
		case err != nil:
			s.metrics.FilesSkipped.WithLabelValues(metrics.ReasonUnreadable).Inc()
			s.log.ErrorContext(ctx, "Failed to fingerprint file", "path", path, "error", err)
			continue
		}

		if at, ok := index[fingerprint]; ok {
			groups[at].Paths = append(groups[at].Paths, path)
			s.metrics.DuplicateHits.Inc()
			s.log.DebugContext(ctx, "Duplicate content", "path", path, "original", groups[at].Paths[0])
			continue
		}

		index[fingerprint] = len(groups)
		groups = append(groups, models.FileGroup{Fingerprint: fingerprint, Paths: []string{path}})
	}

	return groups
}

// fingerprint sniffs the file's content signature and, for supported types,
// computes the canonical streaming SHA-256 digest over the whole file. The
// handle does not outlive the call.
func (s *Scanner) fingerprint(path string) (models.Fingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	prefix := make([]byte, sniffLen)
	n, err := io.ReadFull(file, prefix)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}

	if s.sniff(prefix[:n]) != TypeJPEG {
		return "", ErrUnsupportedType
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	digest := sha256.New()
	if _, err = io.Copy(digest, file); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return models.Fingerprint(hex.EncodeToString(digest.Sum(nil))), nil
}

// Walk lists the regular files under root in deterministic lexical order.
// With recursive false, subdirectories of root are not descended into.
// A root that does not exist or cannot be listed fails the whole run.
func Walk(root string, recursive bool) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return paths, nil
}
