package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

const (
	lockFileName  = ".simple-license.lock"
	lockRetryWait = 50 * time.Millisecond
)

// Config options for the file system sink
type Config struct {
	BaseDir string // Directory receiving the archives
}

// Sink writes archives into a directory. Writes go through a temporary file
// and a rename, serialized across processes by a lock file in BaseDir and
// within the process by mu, since a flock handle is re-entrant.
type Sink struct {
	baseDir string
	mu      sync.Mutex
	lock    *flock.Flock
}

// New creates a new file system sink
func New(config Config) (*Sink, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Sink{
		baseDir: config.BaseDir,
		lock:    flock.New(filepath.Join(config.BaseDir, lockFileName)),
	}, nil
}

// BaseDir returns the output directory
func (s *Sink) BaseDir() string {
	return s.baseDir
}

// Deliver writes the archive to BaseDir and returns its path
func (s *Sink) Deliver(ctx context.Context, download *simplelicense.PackagedDownload) (string, error) {
	if download == nil {
		return "", fmt.Errorf("%w: nil download", simplelicense.ErrInvalidFileName)
	}
	name := filepath.Base(download.ArchiveName)
	if name == "." || name == string(filepath.Separator) || name == lockFileName {
		return "", fmt.Errorf("%w: %q", simplelicense.ErrInvalidFileName, download.ArchiveName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return "", fmt.Errorf("failed to lock output directory: %w", err)
	}
	if !locked {
		return "", errors.New("failed to lock output directory")
	}
	defer s.lock.Unlock()

	target := filepath.Join(s.baseDir, name)
	if err := writeFileAtomic(target, download.Archive); err != nil {
		return "", err
	}
	return target, nil
}

// Get reads a delivered archive back
func (s *Sink) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", simplelicense.ErrSinkNotFound, name)
	}
	return data, err
}

func writeFileAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
