package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Name identifies the git client in the registry.
const Name = "git"

const fileMode = 0o644

// ErrRevisionOutOfRange is returned for a revision number without a commit.
var ErrRevisionOutOfRange = errors.New("revision out of range")

// Repository reads history from a git working tree. Revision numbers are the
// positions of the commits on the first-parent chain of HEAD, the root
// commit being revision 1.
type Repository struct {
	path string
}

// NewRepository creates a client for the project's working tree. The binary
// argument is unused, the repository is read in-process.
func NewRepository(_ string, project entities.Project) repositories.VersionControlRepository {
	return &Repository{path: project.LocalPath}
}

func (it *Repository) Name() string { return Name }

func (it *Repository) Available(_ context.Context) bool {
	if _, _, err := it.open(); err != nil {
		logger.Debugf("No git repository at %s: %v", it.path, err)
		return false
	}
	return true
}

// Log returns commits of the first-parent chain, newest first.
func (it *Repository) Log(_ context.Context, opts repositories.LogOptions) ([]entities.Commit, error) {
	_, chain, err := it.chain()
	if err != nil {
		return nil, err
	}

	var revisions []int
	switch {
	case len(opts.Revisions) > 0:
		revisions = opts.Revisions
	default:
		from, to, rangeErr := resolveRange(opts.Range, len(chain))
		if rangeErr != nil {
			return nil, rangeErr
		}
		for revision := from; revision >= to; revision-- {
			revisions = append(revisions, revision)
		}
		if opts.Limit > 0 && len(revisions) > opts.Limit {
			revisions = revisions[:opts.Limit]
		}
	}

	commits := make([]entities.Commit, 0, len(revisions))
	for _, revision := range revisions {
		commit, lookupErr := lookup(chain, revision)
		if lookupErr != nil {
			return nil, lookupErr
		}
		converted, convertErr := toEntity(commit, revision)
		if convertErr != nil {
			return nil, convertErr
		}
		commits = append(commits, converted)
	}
	return commits, nil
}

// Export writes the blob of path at the revision into the destination directory.
func (it *Repository) Export(_ context.Context, path string, opts repositories.ExportOptions) error {
	root, chain, err := it.chain()
	if err != nil {
		return err
	}
	commit, err := lookup(chain, opts.Revision)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	file, err := commit.File(filepath.ToSlash(rel))
	if err != nil {
		return fmt.Errorf("%s@%d: %w", rel, opts.Revision, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(opts.Destination, filepath.Base(path)), []byte(contents), fileMode)
}

func (it *Repository) open() (*gogit.Repository, string, error) {
	repo, err := gogit.PlainOpenWithOptions(it.path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", err
	}
	return repo, worktree.Filesystem.Root(), nil
}

// chain returns the worktree root and the first-parent chain, oldest first.
func (it *Repository) chain() (string, []*object.Commit, error) {
	repo, root, err := it.open()
	if err != nil {
		return "", nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return "", nil, err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", nil, err
	}

	var chain []*object.Commit
	for {
		chain = append(chain, commit)
		if commit.NumParents() == 0 {
			break
		}
		if commit, err = commit.Parent(0); err != nil {
			return "", nil, err
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return root, chain, nil
}

func lookup(chain []*object.Commit, revision int) (*object.Commit, error) {
	if revision < 1 || revision > len(chain) {
		return nil, fmt.Errorf("r%d: %w (1..%d)", revision, ErrRevisionOutOfRange, len(chain))
	}
	return chain[revision-1], nil
}

// resolveRange turns a range such as HEAD:1 into inclusive bounds, highest first.
func resolveRange(r *repositories.RevisionRange, head int) (int, int, error) {
	if r == nil {
		return head, 1, nil
	}
	from, err := parseRevision(r.From, head)
	if err != nil {
		return 0, 0, err
	}
	to, err := parseRevision(r.To, head)
	if err != nil {
		return 0, 0, err
	}
	if from < to {
		from, to = to, from
	}
	return from, to, nil
}

func parseRevision(value string, head int) (int, error) {
	if value == "" || strings.EqualFold(value, "HEAD") {
		return head, nil
	}
	revision, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid revision %q: %w", value, err)
	}
	return revision, nil
}

func toEntity(commit *object.Commit, revision int) (entities.Commit, error) {
	paths, err := changedPaths(commit, revision)
	if err != nil {
		return entities.Commit{}, err
	}
	return entities.Commit{
		Revision: revision,
		Author:   commit.Author.Name,
		Date:     commit.Author.When,
		Message:  commit.Message,
		Paths:    paths,
	}, nil
}

// changedPaths reports every file of the root commit as added, and the tree
// diff against the first parent otherwise.
func changedPaths(commit *object.Commit, revision int) ([]entities.ChangeEntry, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var entries []entities.ChangeEntry
	if commit.NumParents() == 0 {
		err = tree.Files().ForEach(func(file *object.File) error {
			entries = append(entries, newEntry(file.Name, entities.ActionAdd, revision))
			return nil
		})
		return entries, err
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, err
	}

	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, actionErr
		}
		switch action {
		case merkletrie.Insert:
			entries = append(entries, newEntry(change.To.Name, entities.ActionAdd, revision))
		case merkletrie.Delete:
			entries = append(entries, newEntry(change.From.Name, entities.ActionDelete, revision))
		case merkletrie.Modify:
			entries = append(entries, newEntry(change.To.Name, entities.ActionModify, revision))
		}
	}
	return entries, nil
}

func newEntry(name string, action entities.ChangeAction, revision int) entities.ChangeEntry {
	return entities.ChangeEntry{
		Path:     "/" + name,
		Action:   action,
		Kind:     "file",
		TextMods: action == entities.ActionModify,
		Revision: revision,
	}
}
