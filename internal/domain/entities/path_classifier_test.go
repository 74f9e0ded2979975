//go:build unit

package entities_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/packman/internal/domain/entities"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
)

const localRoot = "/work/dc/phase1"

func newClassifier() *entities.PathClassifier {
	return entities.NewPathClassifier(entities.ClassifierOptions{
		ProjectName: "phase1",
		LocalPath:   localRoot,
	})
}

func local(rel string) string {
	return filepath.Join(localRoot, filepath.FromSlash(rel))
}

func TestPathClassifierClassify(t *testing.T) {
	t.Parallel()

	t.Run("should sort entries with the first matching rule", func(t *testing.T) {
		t.Parallel()
		// given
		commit := builders.NewCommitBuilder().
			WithRevision(10).
			WithPath(entities.ActionDelete, "/trunk/phase1/src/Old.vb").
			WithPath(entities.ActionAdd, "/trunk/phase1/config/app.xml").
			WithPath(entities.ActionModify, "/trunk/phase1/config/web.config.xml").
			WithPath(entities.ActionModify, "/trunk/phase1/schema/tables.sql").
			WithPath(entities.ActionModify, "/trunk/phase1/schema/phase1.sql").
			WithPath(entities.ActionModify, "/trunk/phase1/schema/ecbeing.sql").
			WithPath(entities.ActionModify, "/trunk/phase1/schema/master.xls").
			WithPath(entities.ActionModify, "/trunk/phase1/web/index.aspx").
			WithPath(entities.ActionModify, "/trunk/phase1/web/bin/Util.dll").
			WithPath(entities.ActionModify, "/trunk/phase1/src/Util/Helper.vb").
			WithPath(entities.ActionModify, "/trunk/phase1/src/App/Program.cs").
			WithPath(entities.ActionModify, "/trunk/phase1/docs/readme.md").
			BuildCommit()

		// when
		result := newClassifier().Classify([]entities.Commit{commit})

		// then
		expected := entities.ClassifiedChangeSet{
			DirectCopy:      []string{local("schema/tables.sql"), local("web/index.aspx")},
			MergeAdded:      []string{local("config/app.xml")},
			MergeModified:   []string{local("config/web.config.xml")},
			BuildableSource: []string{local("src/Util/Helper.vb"), local("src/App/Program.cs")},
		}
		if diff := cmp.Diff(expected, result, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should treat a file added and modified as added only", func(t *testing.T) {
		t.Parallel()
		// given
		commits := []entities.Commit{
			builders.NewCommitBuilder().WithRevision(2).WithPath(entities.ActionModify, "/trunk/phase1/config/app.xml").BuildCommit(),
			builders.NewCommitBuilder().WithRevision(1).WithPath(entities.ActionAdd, "/trunk/phase1/config/app.xml").BuildCommit(),
		}

		// when
		result := newClassifier().Classify(commits)

		// then
		assert.Equal(t, []string{local("config/app.xml")}, result.MergeAdded)
		assert.Empty(t, result.MergeModified)
	})

	t.Run("should classify a pair touched by two commits once", func(t *testing.T) {
		t.Parallel()
		// given
		commits := []entities.Commit{
			builders.NewCommitBuilder().WithRevision(2).WithPath(entities.ActionModify, "/trunk/phase1/src/A/A.vb").BuildCommit(),
			builders.NewCommitBuilder().WithRevision(3).WithPath(entities.ActionModify, "/trunk/phase1/src/A/A.vb").BuildCommit(),
		}

		// when
		result := newClassifier().Classify(commits)

		// then
		assert.Equal(t, []string{local("src/A/A.vb")}, result.BuildableSource)
	})

	t.Run("should exclude a path whose first action is a deletion", func(t *testing.T) {
		t.Parallel()
		// given
		commit := builders.NewCommitBuilder().
			WithPath(entities.ActionDelete, "/trunk/phase1/web/old.aspx").
			WithPath(entities.ActionDelete, "/trunk/phase1/config/old.xml").
			BuildCommit()

		// when
		result := newClassifier().Classify([]entities.Commit{commit})

		// then
		assert.Empty(t, result.DirectCopy)
		assert.Empty(t, result.MergeAdded)
		assert.Empty(t, result.MergeModified)
		assert.Empty(t, result.BuildableSource)
	})

	t.Run("should keep buckets pairwise disjoint", func(t *testing.T) {
		t.Parallel()
		// given
		var commits []entities.Commit
		actions := []entities.ChangeAction{entities.ActionAdd, entities.ActionModify, entities.ActionReplace}
		paths := []string{
			"/trunk/phase1/web/a.xml", "/trunk/phase1/web/a.vb", "/trunk/phase1/schema/a.cs",
			"/trunk/phase1/schema/b.xml", "/trunk/phase1/src/x.vbproj", "/trunk/phase1/web/x.html",
		}
		for i, action := range actions {
			builder := builders.NewCommitBuilder().WithRevision(i + 1)
			for _, p := range paths {
				builder.WithPath(action, p)
			}
			commits = append(commits, builder.BuildCommit())
		}

		// when
		result := newClassifier().Classify(commits)

		// then
		buckets := [][]string{result.DirectCopy, result.MergeAdded, result.MergeModified, result.BuildableSource}
		seen := map[string]int{}
		for i, bucket := range buckets {
			for _, p := range bucket {
				previous, ok := seen[p]
				assert.False(t, ok, "%s is in buckets %d and %d", p, previous, i)
				seen[p] = i
			}
		}
	})
}

func TestPathClassifierLocalPath(t *testing.T) {
	t.Parallel()

	t.Run("should rejoin the segments after the local root name", func(t *testing.T) {
		t.Parallel()
		// given
		classifier := newClassifier()

		// when
		result := classifier.LocalPath("/repos/trunk/phase1/src/App/Program.cs")

		// then
		assert.Equal(t, local("src/App/Program.cs"), result)
	})

	t.Run("should join every segment when the local root name is absent", func(t *testing.T) {
		t.Parallel()
		// given
		classifier := newClassifier()

		// when
		result := classifier.LocalPath("/src/App/Program.cs")

		// then
		assert.Equal(t, local("src/App/Program.cs"), result)
	})
}
