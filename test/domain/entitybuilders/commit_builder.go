//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// CommitBuilder helps create test commits with a fluent interface.
type CommitBuilder struct {
	*testkit.BaseBuilder
	revision int
	author   string
	date     time.Time
	message  string
	paths    []entities.ChangeEntry
}

// NewCommitBuilder creates a new commit builder with sensible defaults.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		revision:    1,
		author:      "tanaka",
		date:        time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
		message:     "test commit",
	}
}

// WithRevision sets the revision number.
func (b *CommitBuilder) WithRevision(revision int) *CommitBuilder {
	b.revision = revision
	return b
}

// WithAuthor sets the author.
func (b *CommitBuilder) WithAuthor(author string) *CommitBuilder {
	b.author = author
	return b
}

// WithDate sets the commit date.
func (b *CommitBuilder) WithDate(date time.Time) *CommitBuilder {
	b.date = date
	return b
}

// WithMessage sets the commit message.
func (b *CommitBuilder) WithMessage(message string) *CommitBuilder {
	b.message = message
	return b
}

// WithPath adds a changed path.
func (b *CommitBuilder) WithPath(action entities.ChangeAction, path string) *CommitBuilder {
	b.paths = append(b.paths, entities.ChangeEntry{Path: path, Action: action, Kind: "file"})
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() entities.Commit {
	paths := make([]entities.ChangeEntry, 0, len(b.paths))
	for _, entry := range b.paths {
		entry.Revision = b.revision
		paths = append(paths, entry)
	}
	return entities.Commit{
		Revision: b.revision,
		Author:   b.author,
		Date:     b.date,
		Message:  b.message,
		Paths:    paths,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.revision = 1
	b.author = "tanaka"
	b.date = time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
	b.message = "test commit"
	b.paths = nil
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		revision:    b.revision,
		author:      b.author,
		date:        b.date,
		message:     b.message,
		paths:       append([]entities.ChangeEntry(nil), b.paths...),
	}
}
