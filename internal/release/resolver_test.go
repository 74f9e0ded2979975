//go:build unit

package release_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/release"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
)

// ownersByDir resolves a source to "<dir>/<Assembly>.vbproj" using a fixed table.
func ownersByDir(owners map[string]string) release.OwnerFinder {
	return func(source string) (string, error) {
		dir := filepath.Dir(source)
		name, ok := owners[dir]
		if !ok {
			return "", fmt.Errorf("%w for %s", entities.ErrDescriptorNotFound, source)
		}
		return filepath.Join(dir, name+".vbproj"), nil
	}
}

func layeredGraph() *entities.DependencyGraph {
	return entities.NewDependencyGraph([]entities.AssemblyDescriptor{
		builders.NewAssemblyDescriptorBuilder().WithName("Core").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("Util").WithReferences("Core").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("App").AsExecutable().WithReferences("Util").BuildDescriptor(),
	})
}

func TestResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("should resolve changed sources to their assemblies and dependents", func(t *testing.T) {
		t.Parallel()
		// given
		resolver := release.NewResolverWithFinder(layeredGraph(), ownersByDir(map[string]string{
			"/work/src/Util": "Util",
		}))

		// when
		result, err := resolver.Resolve([]string{"/work/src/Util/Text.vb", "/work/src/Util/Date.vb"})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ReleaseTargetSet{"Util.dll", "App.exe"}, result)
	})

	t.Run("should deduplicate owners in first-seen order", func(t *testing.T) {
		t.Parallel()
		// given
		resolver := release.NewResolverWithFinder(layeredGraph(), ownersByDir(map[string]string{
			"/work/src/App":  "App",
			"/work/src/Core": "Core",
		}))

		// when
		owners, err := resolver.Owners([]string{
			"/work/src/App/Main.vb", "/work/src/Core/A.vb", "/work/src/App/Form.vb",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"App", "Core"}, owners)
	})

	t.Run("should keep an owner missing from the graph but release nothing for it", func(t *testing.T) {
		t.Parallel()
		// given
		resolver := release.NewResolverWithFinder(layeredGraph(), ownersByDir(map[string]string{
			"/work/src/Reports": "Reports",
		}))

		// when
		owners, ownersErr := resolver.Owners([]string{"/work/src/Reports/Daily.vb"})
		result, resolveErr := resolver.Resolve([]string{"/work/src/Reports/Daily.vb"})

		// then
		require.NoError(t, ownersErr)
		assert.Equal(t, []string{"Reports"}, owners)
		require.NoError(t, resolveErr)
		assert.Empty(t, result)
	})

	t.Run("should surface a source without descriptor", func(t *testing.T) {
		t.Parallel()
		// given
		resolver := release.NewResolverWithFinder(layeredGraph(), ownersByDir(nil))

		// when
		_, err := resolver.Resolve([]string{"/work/src/Stray/File.cs"})

		// then
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrDescriptorNotFound))
		assert.Contains(t, err.Error(), "/work/src/Stray/File.cs")
	})
}
