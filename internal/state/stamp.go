// Package state persists the small pieces of build state that survive
// between runs under the internal .publish folder.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// StampFileName holds the previous run's generation time as a one-line
// decimal Unix-seconds string.
const StampFileName = "lastGenerationDate"

// StampStore reads and writes the last-generation timestamp in a directory.
type StampStore struct {
	dir string
}

// NewStampStore returns a store rooted at dir. The directory must already
// exist; the stamp file is created on first Save.
func NewStampStore(dir string) *StampStore { return &StampStore{dir: dir} }

func (s *StampStore) path() string { return filepath.Join(s.dir, StampFileName) }

// Load returns the persisted timestamp. A missing file is reported via
// os.IsNotExist on the returned error.
func (s *StampStore) Load() (time.Time, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return time.Time{}, err
	}
	raw := strings.TrimSpace(string(data))
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", StampFileName, err)
	}
	return time.Unix(secs, 0), nil
}

// Save overwrites the stamp with t, written atomically via a temp file and
// rename so a concurrent reader never sees a partial write.
func (s *StampStore) Save(t time.Time) error {
	line := strconv.FormatInt(t.Unix(), 10) + "\n"
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, []byte(line), 0o600); err != nil {
		return fmt.Errorf("write temp stamp: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("atomic rename stamp: %w", err)
	}
	return nil
}
