package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
	"github.com/rios0rios0/packman/internal/scanner"
)

// Scan is the interface for the dependency scan command.
type Scan interface {
	Execute(ctx context.Context) ([]entities.AssemblyDescriptor, error)
}

// ScanCommand rebuilds the stored dependency graph from the project descriptors.
type ScanCommand struct {
	settings  *entities.Settings
	documents repositories.DocumentRepository
	sessions  *SessionLoader
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(
	settings *entities.Settings,
	documents repositories.DocumentRepository,
	sessions *SessionLoader,
) *ScanCommand {
	return &ScanCommand{settings: settings, documents: documents, sessions: sessions}
}

// Execute scans the source tree and replaces the stored descriptors with the
// result. A descriptor that cannot be parsed aborts the scan and keeps the
// previous graph.
func (it *ScanCommand) Execute(ctx context.Context) ([]entities.AssemblyDescriptor, error) {
	project, err := it.sessions.Project(ctx)
	if err != nil {
		return nil, err
	}

	include, err := regexp.Compile(it.settings.Descriptors.Include)
	if err != nil {
		return nil, fmt.Errorf("invalid descriptor pattern: %w", err)
	}

	sourceDir := filepath.Join(project.LocalPath, it.settings.Descriptors.SourceDir)
	logger.Infof("Scanning descriptors under %s", sourceDir)
	descriptors, err := scanner.ScanDescriptors(scanner.DescriptorOptions{
		SourceDir:       sourceDir,
		Include:         include,
		ExcludeKeywords: it.settings.Descriptors.ExcludeKeywords,
	})
	if err != nil {
		return nil, fmt.Errorf("dependency scan failed: %w", err)
	}

	if replaceErr := it.documents.ReplaceDependencies(ctx, descriptors); replaceErr != nil {
		return nil, replaceErr
	}
	logger.Infof("Stored %d assemblies", len(descriptors))
	return descriptors, nil
}
