//go:build unit

package release_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/release"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
)

func TestConflictDetectorDetect(t *testing.T) {
	t.Parallel()

	graph := entities.NewDependencyGraph([]entities.AssemblyDescriptor{
		builders.NewAssemblyDescriptorBuilder().WithName("A").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("B").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("C").BuildDescriptor(),
	})
	classifier := entities.NewPathClassifier(entities.ClassifierOptions{ProjectName: "phase1", LocalPath: "/work/phase1"})
	resolver := release.NewResolverWithFinder(graph, ownersByDir(map[string]string{
		"/work/phase1/src/A": "A",
		"/work/phase1/src/B": "B",
		"/work/phase1/src/C": "C",
	}))
	detector := release.NewConflictDetector(classifier, resolver)

	t.Run("should report only the shared assemblies of a pending revision", func(t *testing.T) {
		t.Parallel()
		// given
		chosen := entities.ReleaseTargetSet{"A.dll"}
		pending := []entities.Commit{
			builders.NewCommitBuilder().WithRevision(7).WithMessage("touch A and C\nmore").
				WithPath(entities.ActionModify, "/trunk/phase1/src/A/a.vb").
				WithPath(entities.ActionModify, "/trunk/phase1/src/C/c.vb").
				BuildCommit(),
		}

		// when
		conflicts, err := detector.Detect(chosen, pending)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Conflict{
			{Revision: 7, Summary: "touch A and C", Assemblies: []string{"A.dll"}},
		}, conflicts)
	})

	t.Run("should ignore disjoint revisions and revisions without sources", func(t *testing.T) {
		t.Parallel()
		// given
		chosen := entities.ReleaseTargetSet{"A.dll"}
		pending := []entities.Commit{
			builders.NewCommitBuilder().WithRevision(8).WithPath(entities.ActionModify, "/trunk/phase1/src/B/b.vb").BuildCommit(),
			builders.NewCommitBuilder().WithRevision(9).WithPath(entities.ActionModify, "/trunk/phase1/web/a.aspx").BuildCommit(),
		}

		// when
		conflicts, err := detector.Detect(chosen, pending)

		// then
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("should fail when a pending source has no descriptor", func(t *testing.T) {
		t.Parallel()
		// given
		pending := []entities.Commit{
			builders.NewCommitBuilder().WithRevision(10).WithPath(entities.ActionAdd, "/trunk/phase1/src/Z/z.cs").BuildCommit(),
		}

		// when
		_, err := detector.Detect(entities.ReleaseTargetSet{"A.dll"}, pending)

		// then
		require.ErrorIs(t, err, entities.ErrDescriptorNotFound)
	})
}
