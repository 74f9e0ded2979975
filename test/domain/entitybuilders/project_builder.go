//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// ProjectBuilder helps create test projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	name       string
	localPath  string
	serverPath string
	ledgerDir  string
	vcsType    string
	maxLog     int
}

// NewProjectBuilder creates a new project builder with sensible defaults.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "phase1",
		localPath:   "/work/dc/phase1",
		serverPath:  "/srv/phase1",
		ledgerDir:   "/work/ledger",
		vcsType:     "svn",
		maxLog:      entities.DefaultMaxLog,
	}
}

// WithName sets the project name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// WithLocalPath sets the working copy root.
func (b *ProjectBuilder) WithLocalPath(path string) *ProjectBuilder {
	b.localPath = path
	return b
}

// WithServerPath sets the build output tree.
func (b *ProjectBuilder) WithServerPath(path string) *ProjectBuilder {
	b.serverPath = path
	return b
}

// WithLedgerDir sets the release manager path.
func (b *ProjectBuilder) WithLedgerDir(path string) *ProjectBuilder {
	b.ledgerDir = path
	return b
}

// WithVCSType sets the version-control client.
func (b *ProjectBuilder) WithVCSType(vcsType string) *ProjectBuilder {
	b.vcsType = vcsType
	return b
}

// WithMaxLog sets the number of latest commits tracked.
func (b *ProjectBuilder) WithMaxLog(maxLog int) *ProjectBuilder {
	b.maxLog = maxLog
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() entities.Project {
	return entities.Project{
		Name:               b.name,
		LocalPath:          b.localPath,
		ServerPath:         b.serverPath,
		ReleaseManagerPath: b.ledgerDir,
		VCS:                entities.VCSConfig{Type: b.vcsType, MaxLog: b.maxLog},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "phase1"
	b.localPath = "/work/dc/phase1"
	b.serverPath = "/srv/phase1"
	b.ledgerDir = "/work/ledger"
	b.vcsType = "svn"
	b.maxLog = entities.DefaultMaxLog
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	return &ProjectBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		localPath:   b.localPath,
		serverPath:  b.serverPath,
		ledgerDir:   b.ledgerDir,
		vcsType:     b.vcsType,
		maxLog:      b.maxLog,
	}
}
