package release

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

const (
	// RevisionLogFile lists the packaged revisions.
	RevisionLogFile = "revisions.txt"
	// ManifestFile lists every packaged file, tab separated.
	ManifestFile = "manifest.tsv"

	fileMode   = 0o644
	dateLayout = "2006/01/02 15:04:05"
)

// WriteRevisionLog writes one block per commit (number, author, date,
// message, changed paths) into the package directory.
func WriteRevisionLog(commits []entities.Commit, dir string) error {
	blocks := make([]string, 0, len(commits))
	for _, commit := range commits {
		lines := []string{
			fmt.Sprintf("Revision: %d", commit.Revision),
			fmt.Sprintf("Author: %s", commit.Author),
			fmt.Sprintf("Date: %s", commit.Date.Local().Format(dateLayout)),
			"Message:",
			strings.TrimSpace(commit.Message),
			"---",
		}
		for _, entry := range commit.Paths {
			lines = append(lines, fmt.Sprintf("%s : %s", entry.Action, entry.Path))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	content := strings.Join(blocks, strings.Repeat("\n", 4)) + "\n" //nolint:mnd // three blank lines between blocks
	return os.WriteFile(filepath.Join(dir, RevisionLogFile), []byte(content), fileMode)
}

// ListPackedFiles returns the files under release/ and diff/new/, relative to
// those directories, slash separated and sorted.
func ListPackedFiles(layout Layout) ([]string, error) {
	var files []string
	for _, root := range []string{layout.ReleaseDir, layout.DiffNewDir} {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// WriteManifest writes "directory<TAB>filename" per packaged file.
func WriteManifest(files []string, dir string) error {
	var sb strings.Builder
	for _, file := range files {
		sb.WriteString(path.Dir(file))
		sb.WriteString("\t")
		sb.WriteString(path.Base(file))
		sb.WriteString("\n")
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), []byte(sb.String()), fileMode)
}
