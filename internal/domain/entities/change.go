package entities

import (
	"strings"
	"time"
)

// ChangeAction is the version-control action recorded for a changed path.
type ChangeAction string

const (
	ActionAdd     ChangeAction = "A"
	ActionModify  ChangeAction = "M"
	ActionDelete  ChangeAction = "D"
	ActionReplace ChangeAction = "R"
)

// ChangeEntry is a single path touched by a commit.
type ChangeEntry struct {
	Path     string // Slash-separated version-control path
	Action   ChangeAction
	Kind     string // "file" or "dir", when the client reports it
	TextMods bool
	PropMods bool
	Revision int // Owning revision
}

// Commit is one log entry returned by the version-control client.
type Commit struct {
	Revision int
	Author   string
	Date     time.Time
	Message  string
	Paths    []ChangeEntry
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	summary, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimRight(summary, "\r")
}

// Revisions returns the revision numbers of the given commits, in order.
func Revisions(commits []Commit) []int {
	revisions := make([]int, 0, len(commits))
	for _, commit := range commits {
		revisions = append(revisions, commit.Revision)
	}
	return revisions
}
