package repositories

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// RevisionRange selects a span of revisions, e.g. {From: "HEAD", To: "1"}.
type RevisionRange struct {
	From string
	To   string
}

// LogOptions selects the commits returned by Log. When Revisions is set,
// each revision is fetched individually and returned in the same order.
type LogOptions struct {
	Revisions []int
	Range     *RevisionRange
	Limit     int
}

// ExportOptions selects what Export materializes.
type ExportOptions struct {
	Revision    int
	Destination string // Directory that receives the file
}

// VersionControlRepository abstracts the version-control client (svn, git).
type VersionControlRepository interface {
	// Name returns the client identifier (e.g. "svn", "git").
	Name() string

	// Available reports whether the client can be used at all.
	Available(ctx context.Context) bool

	// Log returns commits newest first, including their changed paths.
	Log(ctx context.Context, opts LogOptions) ([]entities.Commit, error)

	// Export writes the content of path as of the given revision into the
	// destination directory. It fails if the path did not exist then.
	Export(ctx context.Context, path string, opts ExportOptions) error
}
