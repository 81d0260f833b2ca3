package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// Scheme prefixes the locations returned by Deliver
const Scheme = "memory://"

// Sink is an in-memory implementation of the simplelicense.Sink interface
type Sink struct {
	mu       sync.RWMutex
	archives map[string][]byte
}

// New creates a new in-memory sink
func New() *Sink {
	return &Sink{
		archives: make(map[string][]byte),
	}
}

// Deliver stores the archive under its archive name, replacing any previous
// archive of the same name.
func (s *Sink) Deliver(ctx context.Context, download *simplelicense.PackagedDownload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if download == nil || download.ArchiveName == "" {
		return "", fmt.Errorf("%w: download has no archive name", simplelicense.ErrInvalidFileName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.archives[download.ArchiveName] = slices.Clone(download.Archive)
	return Scheme + download.ArchiveName, nil
}

// Get returns a copy of a delivered archive
func (s *Sink) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.archives[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", simplelicense.ErrSinkNotFound, name)
	}
	return slices.Clone(data), nil
}

// Names lists delivered archives in lexical order
func (s *Sink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.archives))
	for name := range s.archives {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Delete removes a delivered archive
func (s *Sink) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.archives[name]; !ok {
		return fmt.Errorf("%w: %s", simplelicense.ErrSinkNotFound, name)
	}
	delete(s.archives, name)
	return nil
}
