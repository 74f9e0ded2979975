//go:build unit

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packman/internal/domain/repositories"
	"github.com/rios0rios0/packman/internal/infrastructure/repositories"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/packman/test/infrastructure/repositorydoubles"
)

// fixture wires the commands to in-memory stores, a spy client and a
// temporary working copy (<root>/phase1) with its build output (<root>/server).
type fixture struct {
	settings  *entities.Settings
	documents *doubles.InMemoryDocumentRepository
	history   *doubles.InMemoryHistoryRepository
	vcs       *doubles.SpyVersionControlRepository
	sessions  *commands.SessionLoader
	project   entities.Project
	outputDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	localPath := filepath.Join(root, "phase1")
	serverPath := filepath.Join(root, "server")

	writeFile(t, filepath.Join(localPath, "src", "Util", "ecbeing.Util.vbproj"), "<Project/>")
	writeFile(t, filepath.Join(localPath, "src", "App", "ecbeing.App.vbproj"), "<Project/>")
	writeFile(t, filepath.Join(serverPath, "web", "bin", "ecbeing.Util.dll"), "util")
	writeFile(t, filepath.Join(serverPath, "tools", "ecbeing.App.exe"), "app")

	project := builders.NewProjectBuilder().
		WithLocalPath(localPath).
		WithServerPath(serverPath).
		WithLedgerDir(filepath.Join(root, "ledger")).
		BuildProject()

	settings := entities.DefaultSettings()
	settings.DataDir = filepath.Join(root, "data")
	settings.PackageDir = filepath.Join(root, "releasePackage")

	documents := &doubles.InMemoryDocumentRepository{
		Project: &project,
		Dependencies: []entities.AssemblyDescriptor{
			builders.NewAssemblyDescriptorBuilder().WithName("ecbeing.Util").BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("ecbeing.App").AsExecutable().
				WithReferences("ecbeing.Util").BuildDescriptor(),
		},
	}

	vcs := &doubles.SpyVersionControlRepository{ClientName: "svn", Commits: latestCommits()}
	registry := repositories.NewVersionControlRegistry()
	registry.Register("svn", func(_ string, _ entities.Project) domainRepos.VersionControlRepository {
		return vcs
	})

	return &fixture{
		settings:  settings,
		documents: documents,
		history:   doubles.NewInMemoryHistoryRepository(),
		vcs:       vcs,
		sessions:  commands.NewSessionLoader(settings, documents, registry),
		project:   project,
		outputDir: filepath.Join(root, "pkg"),
	}
}

// latestCommits: r12 touches Util, r11 touches App (which references Util),
// r10 only changes a web page.
func latestCommits() []entities.Commit {
	return []entities.Commit{
		builders.NewCommitBuilder().WithRevision(12).WithMessage("fix totals").
			WithPath(entities.ActionModify, "/trunk/phase1/src/Util/Calc.vb").
			WithPath(entities.ActionAdd, "/trunk/phase1/web/a.aspx").
			WithPath(entities.ActionModify, "/trunk/phase1/config/app.xml").
			BuildCommit(),
		builders.NewCommitBuilder().WithRevision(11).WithMessage("new menu").
			WithPath(entities.ActionModify, "/trunk/phase1/src/App/Main.vb").
			BuildCommit(),
		builders.NewCommitBuilder().WithRevision(10).WithMessage("wording").
			WithPath(entities.ActionModify, "/trunk/phase1/web/b.aspx").
			BuildCommit(),
	}
}

func (f *fixture) pack() *commands.PackCommand {
	return commands.NewPackCommand(f.settings, f.documents, f.sessions, f.history.Factory())
}

func (f *fixture) historyCommand() *commands.HistoryCommand {
	return commands.NewHistoryCommand(f.sessions, f.history.Factory())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
