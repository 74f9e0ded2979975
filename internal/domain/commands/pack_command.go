package commands

import (
	"context"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
	"github.com/rios0rios0/packman/internal/release"
)

// Pack is the interface for the release packaging command.
type Pack interface {
	Execute(ctx context.Context, opts PackOptions) (*PackResult, error)
}

// PackOptions holds runtime options for a single package.
type PackOptions struct {
	Revisions     []int
	AllUnreleased bool   // Package every unreleased revision among the latest commits
	Force         bool   // Package even when pending revisions conflict
	OutputDir     string // Defaults to the configured package directory
}

// PackResult summarizes a package.
type PackResult struct {
	Layout       release.Layout
	Commits      []entities.Commit
	Changes      entities.ClassifiedChangeSet
	Targets      entities.ReleaseTargetSet
	FetchTargets []string
	Conflicts    []entities.Conflict
	Files        []string
}

// PackCommand builds a release package from a set of revisions:
// classify changes -> resolve assemblies -> check conflicts -> assemble -> record.
type PackCommand struct {
	settings      *entities.Settings
	documents     repositories.DocumentRepository
	sessions      *SessionLoader
	openHistories repositories.HistoryRepositoryFactory
}

// NewPackCommand creates a new PackCommand.
func NewPackCommand(
	settings *entities.Settings,
	documents repositories.DocumentRepository,
	sessions *SessionLoader,
	openHistories repositories.HistoryRepositoryFactory,
) *PackCommand {
	return &PackCommand{
		settings:      settings,
		documents:     documents,
		sessions:      sessions,
		openHistories: openHistories,
	}
}

// Execute packages the revisions. When pending revisions share assemblies
// with the package, it stops with ErrConflictsFound unless forced; the
// returned result then lists the conflicts.
func (it *PackCommand) Execute(ctx context.Context, opts PackOptions) (*PackResult, error) {
	session, err := it.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	var result *PackResult
	err = withLedger(session.Project, it.openHistories, func(ledger *release.Ledger) error {
		var packErr error
		result, packErr = it.pack(ctx, session, ledger, opts)
		return packErr
	})
	return result, err
}

func (it *PackCommand) pack(
	ctx context.Context,
	session *Session,
	ledger *release.Ledger,
	opts PackOptions,
) (*PackResult, error) {
	project := session.Project

	latest, err := syncLatest(ctx, session, ledger)
	if err != nil {
		return nil, err
	}
	unreleased, err := ledger.UnreleasedCommits(ctx, latest)
	if err != nil {
		return nil, err
	}

	revisions := opts.Revisions
	if opts.AllUnreleased {
		revisions = entities.Revisions(unreleased)
	}
	if len(revisions) == 0 {
		return nil, entities.ErrNoRevisions
	}

	logger.Infof("Fetching commits %v", revisions)
	commits, err := session.VCS.Log(ctx, repositories.LogOptions{Revisions: revisions})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits: %w", err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = it.settings.PackageDir
	}
	layout := release.NewLayout(outputDir)
	if resetErr := layout.Reset(project.LocalPath, project.ServerPath, project.ReleaseManagerPath); resetErr != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", outputDir, resetErr)
	}
	if logErr := release.WriteRevisionLog(commits, layout.Dir); logErr != nil {
		return nil, fmt.Errorf("failed to write revision log: %w", logErr)
	}

	classifier := entities.NewPathClassifier(entities.ClassifierOptions{
		ProjectName:          project.Name,
		LocalPath:            project.LocalPath,
		ProtectedSchemaFiles: it.settings.Classification.ProtectedSchemaFiles,
	})
	changes := classifier.Classify(commits)
	logger.Infof(
		"Classified %d direct copies, %d added and %d modified merge files, %d sources",
		len(changes.DirectCopy), len(changes.MergeAdded), len(changes.MergeModified), len(changes.BuildableSource),
	)

	descriptors, err := it.documents.ListDependencies(ctx)
	if err != nil {
		return nil, err
	}
	if len(descriptors) == 0 && len(changes.BuildableSource) > 0 {
		return nil, entities.ErrNoDependencies
	}
	resolver := release.NewResolver(entities.NewDependencyGraph(descriptors))
	targets, err := resolver.Resolve(changes.BuildableSource)
	if err != nil {
		return nil, err
	}
	logger.Infof("Release targets: %v", targets)

	result := &PackResult{Layout: layout, Commits: commits, Changes: changes, Targets: targets}

	pending := slices.DeleteFunc(slices.Clone(unreleased), func(commit entities.Commit) bool {
		return slices.Contains(revisions, commit.Revision)
	})
	conflicts, err := release.NewConflictDetector(classifier, resolver).Detect(targets, pending)
	if err != nil {
		return nil, err
	}
	result.Conflicts = conflicts
	if len(conflicts) > 0 {
		if !opts.Force {
			return result, fmt.Errorf("%w: %d revision(s)", entities.ErrConflictsFound, len(conflicts))
		}
		logger.Warnf("Packaging despite %d conflicting revision(s)", len(conflicts))
	}

	ignores, err := it.documents.ListIgnores(ctx)
	if err != nil {
		return nil, err
	}
	result.FetchTargets, err = release.FetchTargets(project.ServerPath, targets, ignores)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	assembler := release.NewAssembler(session.VCS, project.LocalPath, project.ServerPath)
	if assembleErr := assembler.Assemble(ctx, layout, release.AssembleInput{
		Revisions:    revisions,
		Changes:      changes,
		FetchTargets: result.FetchTargets,
	}); assembleErr != nil {
		return result, fmt.Errorf("failed to assemble package in %s: %w", layout.Dir, assembleErr)
	}

	result.Files, err = release.ListPackedFiles(layout)
	if err != nil {
		return result, err
	}
	if manifestErr := release.WriteManifest(result.Files, layout.Dir); manifestErr != nil {
		return result, fmt.Errorf("failed to write manifest: %w", manifestErr)
	}

	if syncErr := ledger.Sync(ctx, commits); syncErr != nil {
		return result, syncErr
	}
	if markErr := ledger.MarkReleased(ctx, revisions); markErr != nil {
		return result, markErr
	}

	logger.Infof("Package ready in %s (%d files)", layout.Dir, len(result.Files))
	return result, nil
}
