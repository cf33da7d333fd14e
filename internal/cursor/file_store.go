// Package cursor persists the run high-water-mark timestamp.
package cursor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"ActivityPublisher/internal/ports"
)

// TimestampLayout is the on-disk cursor format (microsecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// DefaultPath places the cursor file under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "activitypublisher", "last_timestamp.txt")
}

// FileStore keeps the cursor in a single text file.
type FileStore struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

var _ ports.CursorStore = (*FileStore)(nil)

// NewFileStore wires a store for the given path; empty path uses DefaultPath.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path, now: time.Now, logger: logger}
}

// Load returns the persisted timestamp. A missing file bootstraps to the
// start of the current day UTC and persists that default immediately; an
// unreadable or unparsable file falls back to the same default without
// overwriting it.
func (s *FileStore) Load() (time.Time, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			start := s.startOfToday()
			s.info("cursor file absent, bootstrapping", "path", s.path, "cursor", start.Format(TimestampLayout))
			if saveErr := s.Save(start); saveErr != nil {
				s.warn("persist bootstrap cursor failed", "error", saveErr)
			}
			return start, nil
		}
		s.warn("read cursor file failed", "path", s.path, "error", err)
		return s.startOfToday(), nil
	}

	ts, err := parseTimestamp(strings.TrimSpace(string(raw)))
	if err != nil {
		s.warn("parse cursor file failed", "path", s.path, "error", err)
		return s.startOfToday(), nil
	}
	return ts, nil
}

// Save writes the timestamp in the canonical layout. Zero timestamps are
// refused; the caller treats a write failure as logged and non-fatal.
func (s *FileStore) Save(ts time.Time) error {
	if ts.IsZero() {
		return fmt.Errorf("refusing to save zero timestamp")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cursor directory: %w", err)
	}
	value := ts.UTC().Format(TimestampLayout)
	if err := os.WriteFile(s.path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write cursor file: %w", err)
	}
	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("cursor file is empty")
	}
	if ts, err := time.Parse(TimestampLayout, value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed cursor %q", value)
	}
	return ts.UTC(), nil
}

func (s *FileStore) startOfToday() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *FileStore) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *FileStore) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
