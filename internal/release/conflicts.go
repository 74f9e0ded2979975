package release

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// ConflictDetector finds pending revisions touching assemblies of a release.
type ConflictDetector struct {
	classifier *entities.PathClassifier
	resolver   *Resolver
}

// NewConflictDetector creates a ConflictDetector.
func NewConflictDetector(classifier *entities.PathClassifier, resolver *Resolver) *ConflictDetector {
	return &ConflictDetector{classifier: classifier, resolver: resolver}
}

// Detect classifies and resolves every pending commit on its own and reports
// one Conflict per commit sharing assemblies with the chosen release. The
// result is advisory.
func (d *ConflictDetector) Detect(
	chosen entities.ReleaseTargetSet,
	pending []entities.Commit,
) ([]entities.Conflict, error) {
	var conflicts []entities.Conflict

	for _, commit := range pending {
		sources := d.classifier.Classify([]entities.Commit{commit}).BuildableSource
		if len(sources) == 0 {
			logger.Infof("r%d changes no source file, skipping conflict check", commit.Revision)
			continue
		}

		assemblies, err := d.resolver.Resolve(sources)
		if err != nil {
			return nil, err
		}

		shared := assemblies.Intersect(chosen)
		if len(shared) == 0 {
			continue
		}

		conflicts = append(conflicts, entities.Conflict{
			Revision:   commit.Revision,
			Summary:    commit.Summary(),
			Assemblies: shared,
		})
	}

	return conflicts, nil
}
