package entities

import (
	"slices"
	"time"
)

// ReleaseTargetSet lists the artifacts ("name+extension") that must ship.
// Order follows the dependency graph, entries are unique.
type ReleaseTargetSet []string

// Contains reports whether the artifact is part of the set.
func (s ReleaseTargetSet) Contains(artifact string) bool {
	return slices.Contains(s, artifact)
}

// Intersect returns the artifacts of s that are also in other, keeping the order of s.
func (s ReleaseTargetSet) Intersect(other ReleaseTargetSet) ReleaseTargetSet {
	var shared ReleaseTargetSet
	for _, artifact := range s {
		if other.Contains(artifact) {
			shared = append(shared, artifact)
		}
	}
	return shared
}

// Conflict reports a pending revision sharing assemblies with the current release.
type Conflict struct {
	Revision   int
	Summary    string
	Assemblies []string
}

// ReleaseHistoryRecord is the ledger entry of one revision.
type ReleaseHistoryRecord struct {
	Revision   int        `json:"revision"`
	Summary    string     `json:"summary"`
	ReleasedAt *time.Time `json:"releasedAt"`
}

// Released reports whether the revision has been shipped.
func (r ReleaseHistoryRecord) Released() bool {
	return r.ReleasedAt != nil
}
