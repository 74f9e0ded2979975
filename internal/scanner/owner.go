package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// descriptorExtensions are the project descriptor types owning source files.
var descriptorExtensions = []string{".vbproj", ".csproj"} //nolint:gochecknoglobals // fixed set

// FindOwningDescriptor walks up from a source file until it reaches a
// directory holding exactly one project descriptor, and returns that
// descriptor's path. The walk stops at the filesystem root.
func FindOwningDescriptor(sourcePath string) (string, error) {
	dir := filepath.Dir(sourcePath)
	for {
		found, err := descriptorsIn(dir)
		if err != nil {
			return "", err
		}

		switch len(found) {
		case 1:
			return found[0], nil
		case 0:
		default:
			logger.Warnf("%s holds %d project descriptors, looking further up", dir, len(found))
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w for %s", entities.ErrDescriptorNotFound, sourcePath)
		}
		dir = parent
	}
}

// AssemblyNameOf returns the assembly named by a descriptor path. By
// convention the descriptor file name is the assembly name.
func AssemblyNameOf(descriptorPath string) string {
	base := filepath.Base(descriptorPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func descriptorsIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // deleted since the commit, keep walking up
		}
		return nil, err
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range descriptorExtensions {
			if ext == want {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return found, nil
}
