package entities

import (
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// DefaultProtectedSchemaFiles are schema scripts that are never shipped as-is.
var DefaultProtectedSchemaFiles = []string{"ecbeing.sql"} //nolint:gochecknoglobals // documented default

var (
	mergeExtPattern       = regexp.MustCompile(`(?i)xml`)
	webExcludedExtPattern = regexp.MustCompile(`(?i)dll|exe|xml`)
	sourceExtPattern      = regexp.MustCompile(`(?i)vb|cs`)
)

// ClassifiedChangeSet buckets the local paths of a changeset by how they are released.
type ClassifiedChangeSet struct {
	DirectCopy      []string // Shipped as-is from the release revision
	MergeAdded      []string // New merge-required files
	MergeModified   []string // Changed merge-required files, never also in MergeAdded
	BuildableSource []string // Sources whose assemblies must be rebuilt
}

// MergeRequired returns the added and modified merge-required paths.
func (c ClassifiedChangeSet) MergeRequired() []string {
	return slices.Concat(c.MergeAdded, c.MergeModified)
}

// ClassifierOptions configures a PathClassifier.
type ClassifierOptions struct {
	ProjectName          string
	LocalPath            string   // Local working copy root
	ProtectedSchemaFiles []string // Basenames under schema/ that need manual handling
}

// PathClassifier maps commit change entries to release-handling buckets.
type PathClassifier struct {
	localPath string
	localRoot string
	protected *regexp.Regexp
}

// NewPathClassifier builds a classifier for the given project.
func NewPathClassifier(opts ClassifierOptions) *PathClassifier {
	protectedFiles := opts.ProtectedSchemaFiles
	if protectedFiles == nil {
		protectedFiles = DefaultProtectedSchemaFiles
	}

	alternatives := make([]string, 0, len(protectedFiles)+3) //nolint:mnd // project script + xls + txt
	if opts.ProjectName != "" {
		alternatives = append(alternatives, regexp.QuoteMeta(opts.ProjectName+".sql"))
	}
	for _, name := range protectedFiles {
		alternatives = append(alternatives, regexp.QuoteMeta(name))
	}
	alternatives = append(alternatives, `\.xls`, `\.txt`)

	return &PathClassifier{
		localPath: opts.LocalPath,
		localRoot: filepath.Base(opts.LocalPath),
		protected: regexp.MustCompile(`(?i)` + strings.Join(alternatives, "|")),
	}
}

// Classify flattens the entries of all commits, keeps the first occurrence of
// every (action, path) pair and sorts the survivors into buckets.
func (c *PathClassifier) Classify(commits []Commit) ClassifiedChangeSet {
	var result ClassifiedChangeSet

	for _, entry := range uniqueEntries(commits) {
		localPath := c.LocalPath(entry.Path)
		ext := path.Ext(entry.Path)

		switch {
		case entry.Action == ActionDelete:
			logger.Debugf("Deleted: %s", entry.Path)
		case mergeExtPattern.MatchString(ext):
			if entry.Action == ActionAdd {
				logger.Debugf("Merge (added): %s", entry.Path)
				result.MergeAdded = appendUnique(result.MergeAdded, localPath)
			} else {
				logger.Debugf("Merge (modified): %s", entry.Path)
				result.MergeModified = appendUnique(result.MergeModified, localPath)
			}
		case strings.Contains(entry.Path, "/schema/") && !c.protected.MatchString(path.Base(entry.Path)):
			logger.Debugf("Schema: %s", entry.Path)
			result.DirectCopy = appendUnique(result.DirectCopy, localPath)
		case strings.Contains(entry.Path, "/web/") && !webExcludedExtPattern.MatchString(ext):
			logger.Debugf("Web: %s", entry.Path)
			result.DirectCopy = appendUnique(result.DirectCopy, localPath)
		case sourceExtPattern.MatchString(ext):
			logger.Debugf("Source: %s", entry.Path)
			result.BuildableSource = appendUnique(result.BuildableSource, localPath)
		default:
			logger.Debugf("Not released: %s", entry.Path)
		}
	}

	result.MergeModified = slices.DeleteFunc(result.MergeModified, func(p string) bool {
		if slices.Contains(result.MergeAdded, p) {
			logger.Debugf("%s is treated as added", p)
			return true
		}
		return false
	})

	return result
}

// LocalPath translates a slash-separated version-control path to the local
// filesystem by rejoining the segments after the local root directory name.
// When the root name does not occur, every segment is joined onto the root.
func (c *PathClassifier) LocalPath(vcsPath string) string {
	segments := strings.Split(vcsPath, "/")
	rest := segments
	if i := slices.Index(segments, c.localRoot); i >= 0 {
		rest = segments[i+1:]
	}
	return filepath.Join(append([]string{c.localPath}, rest...)...)
}

func uniqueEntries(commits []Commit) []ChangeEntry {
	type entryKey struct {
		action ChangeAction
		path   string
	}

	seen := make(map[entryKey]struct{})
	var entries []ChangeEntry
	for _, commit := range commits {
		for _, entry := range commit.Paths {
			key := entryKey{action: entry.Action, path: entry.Path}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, entry)
		}
	}
	return entries
}

// appendUnique keeps a bucket free of duplicates, so that no two exports
// write the same destination file.
func appendUnique(bucket []string, localPath string) []string {
	if slices.Contains(bucket, localPath) {
		return bucket
	}
	return append(bucket, localPath)
}
