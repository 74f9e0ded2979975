//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/packman/internal/domain/entities"
	builders "github.com/rios0rios0/packman/test/domain/entitybuilders"
)

func layeredGraph() *entities.DependencyGraph {
	return entities.NewDependencyGraph([]entities.AssemblyDescriptor{
		builders.NewAssemblyDescriptorBuilder().WithName("Core").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("Util").WithReferences("Core", "System.Data").BuildDescriptor(),
		builders.NewAssemblyDescriptorBuilder().WithName("App").AsExecutable().WithReferences("Util").BuildDescriptor(),
	})
}

func TestDependencyGraphResolveDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should include dependents and exclude dependencies of the target", func(t *testing.T) {
		t.Parallel()
		// given
		graph := layeredGraph()

		// when
		result := graph.ResolveDependencies([]string{"Util"})

		// then
		assert.Equal(t, entities.ReleaseTargetSet{"Util.dll", "App.exe"}, result)
		assert.False(t, result.Contains("Core.dll"))
	})

	t.Run("should always include the targets themselves", func(t *testing.T) {
		t.Parallel()
		// given
		graph := layeredGraph()

		for _, targets := range [][]string{{"Core"}, {"Util"}, {"App"}, {"Core", "App"}} {
			// when
			result := graph.ResolveDependencies(targets)

			// then
			for _, target := range targets {
				descriptor, ok := graph.Lookup(target)
				assert.True(t, ok)
				assert.Contains(t, result, descriptor.FileName())
			}
		}
	})

	t.Run("should return the same result on repeated calls", func(t *testing.T) {
		t.Parallel()
		// given
		graph := layeredGraph()

		// when
		first := graph.ResolveDependencies([]string{"Core"})
		second := graph.ResolveDependencies([]string{"Core"})

		// then
		assert.Equal(t, first, second)
		assert.Equal(t, entities.ReleaseTargetSet{"Core.dll", "Util.dll", "App.exe"}, first)
	})

	t.Run("should be monotonic in the target set", func(t *testing.T) {
		t.Parallel()
		// given
		graph := entities.NewDependencyGraph([]entities.AssemblyDescriptor{
			builders.NewAssemblyDescriptorBuilder().WithName("A").BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("B").BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("C").WithReferences("A").BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("D").WithReferences("B").BuildDescriptor(),
		})

		// when
		small := graph.ResolveDependencies([]string{"A"})
		large := graph.ResolveDependencies([]string{"A", "B"})

		// then
		for _, artifact := range small {
			assert.Contains(t, large, artifact)
		}
		assert.Equal(t, entities.ReleaseTargetSet{"A.dll", "C.dll"}, small)
		assert.Equal(t, entities.ReleaseTargetSet{"A.dll", "B.dll", "C.dll", "D.dll"}, large)
	})

	t.Run("should terminate on a reference cycle", func(t *testing.T) {
		t.Parallel()
		// given
		graph := entities.NewDependencyGraph([]entities.AssemblyDescriptor{
			builders.NewAssemblyDescriptorBuilder().WithName("A").WithReferences("B").BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("B").WithReferences("A").BuildDescriptor(),
		})

		// when
		fromA := graph.ResolveDependencies([]string{"A"})
		fromB := graph.ResolveDependencies([]string{"B"})

		// then
		assert.Equal(t, entities.ReleaseTargetSet{"A.dll", "B.dll"}, fromA)
		assert.Contains(t, fromB, "B.dll")
	})

	t.Run("should treat references outside the graph as inert leaves", func(t *testing.T) {
		t.Parallel()
		// given
		graph := layeredGraph()

		// when
		result := graph.ResolveDependencies([]string{"System.Data"})

		// then
		assert.Empty(t, result)
	})

	t.Run("should keep the first descriptor of a duplicated name", func(t *testing.T) {
		t.Parallel()
		// given
		graph := entities.NewDependencyGraph([]entities.AssemblyDescriptor{
			builders.NewAssemblyDescriptorBuilder().WithName("Tool").AsExecutable().BuildDescriptor(),
			builders.NewAssemblyDescriptorBuilder().WithName("Tool").BuildDescriptor(),
		})

		// when
		result := graph.ResolveDependencies([]string{"Tool"})

		// then
		assert.Equal(t, 1, graph.Len())
		assert.Equal(t, entities.ReleaseTargetSet{"Tool.exe"}, result)
	})
}

func TestReleaseTargetSetIntersect(t *testing.T) {
	t.Parallel()

	t.Run("should keep shared artifacts in receiver order", func(t *testing.T) {
		t.Parallel()
		// given
		pending := entities.ReleaseTargetSet{"C.dll", "A.dll"}
		chosen := entities.ReleaseTargetSet{"A.dll", "B.dll", "C.dll"}

		// when
		shared := pending.Intersect(chosen)

		// then
		assert.Equal(t, entities.ReleaseTargetSet{"C.dll", "A.dll"}, shared)
	})

	t.Run("should return nothing when sets are disjoint", func(t *testing.T) {
		t.Parallel()
		// given
		pending := entities.ReleaseTargetSet{"X.dll"}

		// when
		shared := pending.Intersect(entities.ReleaseTargetSet{"A.dll"})

		// then
		assert.Empty(t, shared)
	})
}
