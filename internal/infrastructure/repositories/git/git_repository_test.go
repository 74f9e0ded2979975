//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
	"github.com/rios0rios0/packman/internal/infrastructure/repositories/git"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
)

type workTree struct {
	t        *testing.T
	dir      string
	worktree *gogit.Worktree
	when     time.Time
}

func newWorkTree(t *testing.T) *workTree {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return &workTree{t: t, dir: dir, worktree: worktree, when: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (w *workTree) write(rel, content string) {
	w.t.Helper()
	full := filepath.Join(w.dir, rel)
	require.NoError(w.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(w.t, os.WriteFile(full, []byte(content), 0o600))
	_, err := w.worktree.Add(rel)
	require.NoError(w.t, err)
}

func (w *workTree) remove(rel string) {
	w.t.Helper()
	_, err := w.worktree.Remove(rel)
	require.NoError(w.t, err)
}

func (w *workTree) commit(message string) {
	w.t.Helper()
	w.when = w.when.Add(time.Hour)
	_, err := w.worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "sato", Email: "sato@example.com", When: w.when},
	})
	require.NoError(w.t, err)
}

// threeRevisions builds: r1 adds two files, r2 modifies one and adds a page, r3 deletes a file.
func threeRevisions(t *testing.T) *workTree {
	t.Helper()
	w := newWorkTree(t)
	w.write("src/Util.vb", "v1")
	w.write("config/app.xml", "<app/>")
	w.commit("initial import")
	w.write("src/Util.vb", "v2")
	w.write("web/a.aspx", "<%@ Page %>")
	w.commit("fix totals\n\ndetails")
	w.remove("config/app.xml")
	w.commit("drop config")
	return w
}

func TestRepositoryLog(t *testing.T) {
	t.Parallel()

	t.Run("should number first-parent commits from the root and report changed paths", func(t *testing.T) {
		t.Parallel()
		// given
		w := threeRevisions(t)
		repo := git.NewRepository("", builders.NewProjectBuilder().WithLocalPath(w.dir).WithVCSType(git.Name).BuildProject())

		// when
		commits, err := repo.Log(context.Background(), repositories.LogOptions{
			Range: &repositories.RevisionRange{From: "HEAD", To: "1"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1}, entities.Revisions(commits))
		assert.Equal(t, "fix totals", commits[1].Summary())
		assert.Equal(t, "sato", commits[1].Author)

		assert.Equal(t, []entities.ChangeAction{entities.ActionDelete}, actions(commits[0]))
		assert.Equal(t, "/config/app.xml", commits[0].Paths[0].Path)
		assert.Equal(t, []string{"/src/Util.vb", "/web/a.aspx"}, paths(commits[1]))
		assert.Equal(t, []entities.ChangeAction{entities.ActionModify, entities.ActionAdd}, actions(commits[1]))
		assert.Equal(t, []string{"/config/app.xml", "/src/Util.vb"}, paths(commits[2]))
	})

	t.Run("should apply the limit and explicit revisions", func(t *testing.T) {
		t.Parallel()
		// given
		w := threeRevisions(t)
		repo := git.NewRepository("", builders.NewProjectBuilder().WithLocalPath(w.dir).BuildProject())
		ctx := context.Background()

		// when
		latest, latestErr := repo.Log(ctx, repositories.LogOptions{Limit: 2})
		picked, pickedErr := repo.Log(ctx, repositories.LogOptions{Revisions: []int{1, 3}})
		_, missingErr := repo.Log(ctx, repositories.LogOptions{Revisions: []int{4}})

		// then
		require.NoError(t, latestErr)
		require.NoError(t, pickedErr)
		assert.Equal(t, []int{3, 2}, entities.Revisions(latest))
		assert.Equal(t, []int{1, 3}, entities.Revisions(picked))
		require.ErrorIs(t, missingErr, git.ErrRevisionOutOfRange)
	})
}

func TestRepositoryExport(t *testing.T) {
	t.Parallel()

	t.Run("should write the file content as of the revision", func(t *testing.T) {
		t.Parallel()
		// given
		w := threeRevisions(t)
		repo := git.NewRepository("", builders.NewProjectBuilder().WithLocalPath(w.dir).BuildProject())
		dest := t.TempDir()

		// when
		err := repo.Export(context.Background(), filepath.Join(w.dir, "src", "Util.vb"),
			repositories.ExportOptions{Revision: 1, Destination: dest})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(dest, "Util.vb"))
		require.NoError(t, readErr)
		assert.Equal(t, "v1", string(content))
	})

	t.Run("should fail for a file missing at the revision", func(t *testing.T) {
		t.Parallel()
		// given
		w := threeRevisions(t)
		repo := git.NewRepository("", builders.NewProjectBuilder().WithLocalPath(w.dir).BuildProject())

		// when
		err := repo.Export(context.Background(), filepath.Join(w.dir, "config", "app.xml"),
			repositories.ExportOptions{Revision: 3, Destination: t.TempDir()})

		// then
		require.Error(t, err)
	})

	t.Run("should be unavailable outside a repository", func(t *testing.T) {
		t.Parallel()
		// given
		repo := git.NewRepository("", builders.NewProjectBuilder().WithLocalPath(t.TempDir()).BuildProject())

		// when
		available := repo.Available(context.Background())

		// then
		assert.False(t, available)
	})
}

func paths(commit entities.Commit) []string {
	result := make([]string, 0, len(commit.Paths))
	for _, entry := range commit.Paths {
		result = append(result, entry.Path)
	}
	return result
}

func actions(commit entities.Commit) []entities.ChangeAction {
	result := make([]entities.ChangeAction, 0, len(commit.Paths))
	for _, entry := range commit.Paths {
		result = append(result, entry.Action)
	}
	return result
}
