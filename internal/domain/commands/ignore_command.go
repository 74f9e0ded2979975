package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Ignore is the interface for the ignore-list import command.
type Ignore interface {
	Execute(ctx context.Context, path string) ([]string, error)
}

// IgnoreCommand replaces the stored ignore list with the content of a file.
type IgnoreCommand struct {
	settings  *entities.Settings
	documents repositories.DocumentRepository
}

// NewIgnoreCommand creates a new IgnoreCommand.
func NewIgnoreCommand(settings *entities.Settings, documents repositories.DocumentRepository) *IgnoreCommand {
	return &IgnoreCommand{settings: settings, documents: documents}
}

// Execute imports one regular expression per non-blank line. The configured
// ignore file is used when path is empty.
func (it *IgnoreCommand) Execute(ctx context.Context, path string) ([]string, error) {
	if path == "" {
		path = it.settings.IgnoreFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: make sure %s exists", entities.ErrIgnoreFileNotFound, path)
		}
		return nil, err
	}

	patterns := ParseIgnoreList(string(content))
	for _, pattern := range patterns {
		if _, compileErr := regexp.Compile(pattern); compileErr != nil {
			return nil, fmt.Errorf("invalid ignore entry %q: %w", pattern, compileErr)
		}
	}

	logger.Infof("Importing %d ignore entries from %s", len(patterns), path)
	if replaceErr := it.documents.ReplaceIgnores(ctx, patterns); replaceErr != nil {
		return nil, replaceErr
	}
	return patterns, nil
}

// ParseIgnoreList splits newline-delimited content, dropping blank lines.
func ParseIgnoreList(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
