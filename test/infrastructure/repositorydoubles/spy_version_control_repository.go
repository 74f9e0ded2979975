//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, fakes) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// SpyVersionControlRepository implements repositories.VersionControlRepository as a configurable spy.
// Export writes "<path>@<revision>" into the destination file.
type SpyVersionControlRepository struct {
	// --- identity ---
	ClientName  string
	Unavailable bool

	// --- Log ---
	Commits []entities.Commit // Newest first
	LogErr  error
	// spy: options received
	LogCalls []repositories.LogOptions

	// --- Export ---
	ExportErr     error
	ExportErrPath string // When set, only exporting this path fails
	// spy: exports performed
	Exports []ExportCall

	mu sync.Mutex
}

// ExportCall records a single invocation of Export.
type ExportCall struct {
	Path        string
	Revision    int
	Destination string
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) Name() string {
	if s.ClientName == "" {
		return "spy"
	}
	return s.ClientName
}

func (s *SpyVersionControlRepository) Available(_ context.Context) bool { return !s.Unavailable }

func (s *SpyVersionControlRepository) Log(
	_ context.Context,
	opts repositories.LogOptions,
) ([]entities.Commit, error) {
	s.mu.Lock()
	s.LogCalls = append(s.LogCalls, opts)
	s.mu.Unlock()

	if s.LogErr != nil {
		return nil, s.LogErr
	}

	if len(opts.Revisions) > 0 {
		result := make([]entities.Commit, 0, len(opts.Revisions))
		for _, revision := range opts.Revisions {
			commit, ok := s.find(revision)
			if !ok {
				return nil, fmt.Errorf("r%d: no such revision", revision)
			}
			result = append(result, commit)
		}
		return result, nil
	}

	if opts.Limit > 0 && len(s.Commits) > opts.Limit {
		return s.Commits[:opts.Limit], nil
	}
	return s.Commits, nil
}

func (s *SpyVersionControlRepository) Export(
	_ context.Context,
	path string,
	opts repositories.ExportOptions,
) error {
	s.mu.Lock()
	s.Exports = append(s.Exports, ExportCall{Path: path, Revision: opts.Revision, Destination: opts.Destination})
	s.mu.Unlock()

	if s.ExportErr != nil && (s.ExportErrPath == "" || s.ExportErrPath == path) {
		return s.ExportErr
	}
	content := fmt.Sprintf("%s@%d", path, opts.Revision)
	return os.WriteFile(filepath.Join(opts.Destination, filepath.Base(path)), []byte(content), 0o600)
}

func (s *SpyVersionControlRepository) find(revision int) (entities.Commit, bool) {
	for _, commit := range s.Commits {
		if commit.Revision == revision {
			return commit, true
		}
	}
	return entities.Commit{}, false
}
