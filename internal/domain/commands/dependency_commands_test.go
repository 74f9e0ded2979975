//go:build unit

package commands_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

const coreDescriptor = `<?xml version="1.0" encoding="utf-8"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <AssemblyName>ecbeing.Core</AssemblyName>
    <OutputType>Library</OutputType>
  </PropertyGroup>
</Project>`

const batchDescriptor = `<?xml version="1.0" encoding="utf-8"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <AssemblyName>ecbeing.Batch</AssemblyName>
    <OutputType>Exe</OutputType>
  </PropertyGroup>
  <ItemGroup>
    <ProjectReference Include="..\Core\ecbeing.Core.vbproj">
      <Name>ecbeing.Core</Name>
    </ProjectReference>
  </ItemGroup>
</Project>`

func TestScanCommand(t *testing.T) {
	t.Parallel()

	t.Run("should replace the stored graph with the scanned descriptors", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		src := filepath.Join(f.project.LocalPath, "src")
		writeFile(t, filepath.Join(src, "Core", "ecbeing.Core.vbproj"), coreDescriptor)
		writeFile(t, filepath.Join(src, "Batch", "ecbeing.Batch.vbproj"), batchDescriptor)
		writeFile(t, filepath.Join(src, "Template[雛形]", "ecbeing.Template.vbproj"), "not parsed")
		// the fixture's placeholder descriptors are not valid XML
		writeFile(t, filepath.Join(src, "Util", "ecbeing.Util.vbproj"), coreDescriptor)
		writeFile(t, filepath.Join(src, "App", "ecbeing.App.vbproj"), batchDescriptor)
		cmd := commands.NewScanCommand(f.settings, f.documents, f.sessions)

		// when
		descriptors, err := cmd.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, descriptors, 4)
		assert.Equal(t, descriptors, f.documents.Dependencies)
		for _, descriptor := range descriptors {
			assert.NotEqual(t, "ecbeing.Template", descriptor.Name)
		}
	})

	t.Run("should abort on an unparsable descriptor and keep the stored graph", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		previous := f.documents.Dependencies
		cmd := commands.NewScanCommand(f.settings, f.documents, f.sessions)

		// when
		_, err := cmd.Execute(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dependency scan failed")
		assert.Equal(t, previous, f.documents.Dependencies)
	})

	t.Run("should keep the stored graph when a descriptor declares an unknown output type", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		previous := f.documents.Dependencies
		src := filepath.Join(f.project.LocalPath, "src")
		writeFile(t, filepath.Join(src, "Util", "ecbeing.Util.vbproj"), coreDescriptor)
		writeFile(t, filepath.Join(src, "App", "ecbeing.App.vbproj"), strings.Replace(batchDescriptor, "<OutputType>Exe", "<OutputType>WinExe", 1))
		cmd := commands.NewScanCommand(f.settings, f.documents, f.sessions)

		// when
		_, err := cmd.Execute(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrUnknownOutputType)
		assert.Equal(t, previous, f.documents.Dependencies)
	})
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	t.Run("should list the changed assembly and its dependents", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		cmd := commands.NewResolveCommand(f.documents)

		// when
		targets, err := cmd.Execute(context.Background(), []string{"ecbeing.Util"})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ReleaseTargetSet{"ecbeing.Util.dll", "ecbeing.App.exe"}, targets)
	})
}

func TestIgnoreCommand(t *testing.T) {
	t.Parallel()

	t.Run("should import one expression per non-blank line", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		path := filepath.Join(t.TempDir(), ".packIgnore")
		writeFile(t, path, "admin[/\\\\]\r\n\n\\.pdb$\n")
		cmd := commands.NewIgnoreCommand(f.settings, f.documents)

		// when
		patterns, err := cmd.Execute(context.Background(), path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{`admin[/\\]`, `\.pdb$`}, patterns)
		assert.Equal(t, patterns, f.documents.Ignores)
	})

	t.Run("should name the missing ignore file", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		f.settings.IgnoreFile = filepath.Join(t.TempDir(), ".packIgnore")
		cmd := commands.NewIgnoreCommand(f.settings, f.documents)

		// when
		_, err := cmd.Execute(context.Background(), "")

		// then
		require.ErrorIs(t, err, entities.ErrIgnoreFileNotFound)
		assert.Contains(t, err.Error(), f.settings.IgnoreFile)
	})

	t.Run("should reject an invalid expression", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture(t)
		path := filepath.Join(t.TempDir(), ".packIgnore")
		writeFile(t, path, "admin(\n")
		cmd := commands.NewIgnoreCommand(f.settings, f.documents)

		// when
		_, err := cmd.Execute(context.Background(), path)

		// then
		require.Error(t, err)
		assert.Nil(t, f.documents.Ignores)
	})
}
