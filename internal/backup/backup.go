package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
)

const (
	// MaxBackups is the number of snapshots kept per store
	MaxBackups = 14
	DirName    = "backups"
	filePrefix = constants.AppName + "-"
	timeLayout = "20060102-150405"
)

var ErrNoSource = errors.New("storage file does not exist")

// Snapshot describes one backup file
type Snapshot struct {
	Path      string
	Timestamp time.Time
	Size      int64

	seq int
}

// Manager snapshots a file-backed store (SQLite or JSON) into a sibling
// backups directory and restores it from there.
type Manager struct {
	source string
	dir    string
	ext    string
	now    func() time.Time
}

func NewManager(source string) *Manager {
	return &Manager{
		source: source,
		dir:    filepath.Join(filepath.Dir(source), DirName),
		ext:    filepath.Ext(source),
		now:    time.Now,
	}
}

// WithClock replaces the clock used to name snapshots
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) isJSON() bool {
	return strings.EqualFold(m.ext, ".json")
}

// Create snapshots the store and prunes snapshots beyond MaxBackups
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to prune old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.source); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoSource, m.source)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = copyFile(m.source, path)
	} else {
		err = vacuumInto(m.source, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.source, err)
	}

	logger.Debug("Created backup", "path", path)
	return path, nil
}

// nextPath names a snapshot after the current second, adding a counter
// when several are taken within the same second
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timeLayout)
	path := filepath.Join(m.dir, filePrefix+stamp+m.ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, m.ext))
	}
}

// List returns the snapshots for this store, newest first
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	snapshots := []Snapshot{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.EqualFold(filepath.Ext(name), m.ext) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), filepath.Ext(name))
		seq := 0
		if i := strings.LastIndex(stamp, "-"); i > len("20060102") {
			if seq, err = strconv.Atoi(stamp[i+1:]); err != nil {
				continue
			}
			stamp = stamp[:i]
		}
		ts, err := time.ParseInLocation(timeLayout, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		if snapshots[i].Timestamp.Equal(snapshots[j].Timestamp) {
			return snapshots[i].seq > snapshots[j].seq
		}
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})
	return snapshots, nil
}

func (m *Manager) prune() error {
	snapshots, err := m.List()
	if err != nil {
		return err
	}
	for _, s := range snapshots[min(MaxBackups, len(snapshots)):] {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", s.Path, err)
		}
	}
	return nil
}

// Restore replaces the store with the given snapshot. The current store is
// snapshotted first and that snapshot's path is returned ("" when there was
// nothing to save). The store must be closed by the caller.
func (m *Manager) Restore(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := m.verify(path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.source); err == nil {
		if previous, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
	}

	tmp := m.source + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.source); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore storage: %w", err)
	}

	logger.Info("Restored storage from backup", "backup", path, "target", m.source)
	return previous, nil
}

func (m *Manager) verify(path string) error {
	if m.isJSON() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return errors.New("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// vacuumInto writes a consistent copy of a SQLite database
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
