package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

const dirMode = 0o755

// Layout is the directory structure of a release package.
type Layout struct {
	Dir         string // Package root
	ReleaseDir  string // Ready-to-deploy files
	DiffDir     string
	DiffBaseDir string // Merge-required files before the release
	DiffNewDir  string // Merge-required files after the release
}

// NewLayout returns the layout of a package rooted at dir.
func NewLayout(dir string) Layout {
	diffDir := filepath.Join(dir, "diff")
	return Layout{
		Dir:         dir,
		ReleaseDir:  filepath.Join(dir, "release"),
		DiffDir:     diffDir,
		DiffBaseDir: filepath.Join(diffDir, "base"),
		DiffNewDir:  filepath.Join(diffDir, "new"),
	}
}

// Reset removes the package directory, if any, and creates it empty.
// Packages are never built incrementally.
//
// The directory is refused when it is, or contains, the working directory or
// one of the protected paths.
func (l Layout) Reset(protected ...string) error {
	if err := checkOutputDir(l.Dir, protected); err != nil {
		return err
	}
	logger.Info("Initializing release package")
	if err := os.RemoveAll(l.Dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", l.Dir, err)
	}
	if err := os.MkdirAll(l.Dir, dirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.Dir, err)
	}
	return nil
}

func checkOutputDir(dir string, protected []string) error {
	out, err := canonicalPath(dir)
	if err != nil {
		return err
	}
	if cwd, cwdErr := os.Getwd(); cwdErr == nil {
		protected = append(slices.Clone(protected), cwd)
	}
	for _, path := range protected {
		if path == "" {
			continue
		}
		guarded, pathErr := canonicalPath(path)
		if pathErr != nil {
			return pathErr
		}
		rel, relErr := filepath.Rel(out, guarded)
		if relErr != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return fmt.Errorf("%w: %s contains %s", entities.ErrUnsafeOutputDir, dir, path)
		}
	}
	return nil
}

// canonicalPath resolves symlinks when the path exists.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		return resolved, nil
	}
	return abs, nil
}

// AssembleInput is what goes into a release package.
type AssembleInput struct {
	Revisions    []int
	Changes      entities.ClassifiedChangeSet
	FetchTargets []string // Pre-built artifacts under the server path
}

// Assembler copies pre-built artifacts and exports snapshots into a package.
type Assembler struct {
	vcs        repositories.VersionControlRepository
	localPath  string
	serverPath string
}

// NewAssembler creates an Assembler for a project.
func NewAssembler(
	vcs repositories.VersionControlRepository,
	localPath, serverPath string,
) *Assembler {
	return &Assembler{vcs: vcs, localPath: localPath, serverPath: serverPath}
}

// Assemble runs the four package operations concurrently:
// artifacts and direct-copy files go to release/, merge-required files as of
// the newest revision go to diff/new/, and modified merge-required files as
// of the revision preceding the oldest one go to diff/base/.
// The first failure fails the package; files already written stay on disk.
func (a *Assembler) Assemble(ctx context.Context, layout Layout, input AssembleInput) error {
	if len(input.Revisions) == 0 {
		return entities.ErrNoRevisions
	}
	newest := slices.Max(input.Revisions)
	base := slices.Min(input.Revisions) - 1

	var group errgroup.Group
	group.Go(func() error {
		return a.fetch(input.FetchTargets, layout.ReleaseDir)
	})
	group.Go(func() error {
		return a.export(ctx, newest, input.Changes.DirectCopy, layout.ReleaseDir)
	})
	group.Go(func() error {
		return a.export(ctx, newest, input.Changes.MergeRequired(), layout.DiffNewDir)
	})
	group.Go(func() error {
		return a.export(ctx, base, input.Changes.MergeModified, layout.DiffBaseDir)
	})
	return group.Wait()
}

// fetch copies pre-built artifacts, keeping their path relative to the server root.
func (a *Assembler) fetch(sources []string, destDir string) error {
	var group errgroup.Group
	for _, src := range sources {
		group.Go(func() error {
			rel, err := filepath.Rel(a.serverPath, src)
			if err != nil {
				return fmt.Errorf("failed to locate %s under %s: %w", src, a.serverPath, err)
			}
			return copyFile(src, filepath.Join(destDir, rel))
		})
	}
	return group.Wait()
}

// export snapshots local working-copy paths at a revision, keeping their
// path relative to the local root.
func (a *Assembler) export(ctx context.Context, revision int, localPaths []string, destDir string) error {
	var group errgroup.Group
	for _, localPath := range localPaths {
		group.Go(func() error {
			rel, err := filepath.Rel(a.localPath, localPath)
			if err != nil {
				return fmt.Errorf("failed to locate %s under %s: %w", localPath, a.localPath, err)
			}
			target := filepath.Dir(filepath.Join(destDir, rel))
			if mkErr := os.MkdirAll(target, dirMode); mkErr != nil {
				return mkErr
			}
			logger.Debugf("Exporting %s@%d to %s", localPath, revision, target)
			return a.vcs.Export(ctx, localPath, repositories.ExportOptions{
				Revision:    revision,
				Destination: target,
			})
		})
	}
	return group.Wait()
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
