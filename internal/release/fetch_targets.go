package release

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// buildOnlyDirs hold intermediate or debug build output that never ships.
var buildOnlyDirs = []string{"debug", "obj", "batch"} //nolint:gochecknoglobals // fixed set

// FetchTargets lists the pre-built artifacts of the release targets under the
// server path. Candidates are .dll and .exe files below a top-level directory
// other than src. A candidate is dropped when it matches an ignore pattern or
// lies in a debug, obj or batch directory, and kept when its path contains
// one of the target artifact names.
func FetchTargets(serverPath string, targets entities.ReleaseTargetSet, ignores []string) ([]string, error) {
	ignorePatterns := make([]*regexp.Regexp, 0, len(ignores))
	for _, ignore := range ignores {
		pattern, err := regexp.Compile(ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore entry %q: %w", ignore, err)
		}
		ignorePatterns = append(ignorePatterns, pattern)
	}

	var found []string
	err := filepath.WalkDir(serverPath, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(serverPath, p)
		if relErr != nil {
			return relErr
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")

		if d.IsDir() {
			if len(segments) == 1 && segments[0] == "src" {
				return filepath.SkipDir
			}
			return nil
		}
		if len(segments) < 2 { //nolint:mnd // artifacts live below a top-level directory
			return nil
		}
		if ext := filepath.Ext(p); ext != ".dll" && ext != ".exe" {
			return nil
		}

		if slices.ContainsFunc(ignorePatterns, func(pattern *regexp.Regexp) bool { return pattern.MatchString(p) }) {
			logger.Debugf("Ignored: %s", p)
			return nil
		}
		if inBuildOnlyDir(segments[:len(segments)-1]) {
			return nil
		}
		if !slices.ContainsFunc(targets, func(name string) bool { return strings.Contains(p, name) }) {
			return nil
		}

		found = append(found, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func inBuildOnlyDir(dirs []string) bool {
	for _, dir := range dirs {
		for _, excluded := range buildOnlyDirs {
			if strings.EqualFold(dir, excluded) {
				return true
			}
		}
	}
	return false
}
