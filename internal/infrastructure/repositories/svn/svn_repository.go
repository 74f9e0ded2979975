package svn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Name identifies the svn client in the registry.
const Name = "svn"

// Runner executes a command in dir and returns its captured output.
type Runner func(ctx context.Context, dir, binary string, args ...string) (stdout, stderr []byte, err error)

// Repository drives the svn command-line client in a working copy.
type Repository struct {
	binary   string
	workDir  string
	username string
	password string
	run      Runner
}

// NewRepository creates a client for the project's working copy.
func NewRepository(binary string, project entities.Project) repositories.VersionControlRepository {
	return NewRepositoryWithRunner(binary, project, execRunner)
}

// NewRepositoryWithRunner creates a client with a custom command runner.
func NewRepositoryWithRunner(
	binary string,
	project entities.Project,
	run Runner,
) *Repository {
	if binary == "" {
		binary = entities.DefaultVCSBinary
	}
	return &Repository{
		binary:   binary,
		workDir:  project.LocalPath,
		username: project.VCS.Username,
		password: project.VCS.Password,
		run:      run,
	}
}

func (it *Repository) Name() string { return Name }

// Available runs `svn info` in the working copy. Only a missing binary makes
// the client unavailable; any other failure is left to the command that follows.
func (it *Repository) Available(ctx context.Context) bool {
	if _, err := it.exec(ctx, "info"); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			logger.Errorf("%s is not installed or not on PATH", it.binary)
			return false
		}
		logger.Debugf("svn info failed: %v", err)
	}
	return true
}

// Log runs `svn log --xml -v`. Explicit revisions are fetched one call per
// revision, concurrently, and returned in the requested order.
func (it *Repository) Log(ctx context.Context, opts repositories.LogOptions) ([]entities.Commit, error) {
	if len(opts.Revisions) > 0 {
		return it.logRevisions(ctx, opts.Revisions)
	}

	args := []string{"log", "--xml", "-v"}
	if opts.Range != nil {
		args = append(args, "-r", opts.Range.From+":"+opts.Range.To)
	}
	if opts.Limit > 0 {
		args = append(args, "-l", strconv.Itoa(opts.Limit))
	}

	output, err := it.exec(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(output)
}

func (it *Repository) logRevisions(ctx context.Context, revisions []int) ([]entities.Commit, error) {
	commits := make([]entities.Commit, len(revisions))

	var group errgroup.Group
	for i, revision := range revisions {
		group.Go(func() error {
			output, err := it.exec(ctx, "log", "--xml", "-v", "-r", strconv.Itoa(revision))
			if err != nil {
				return fmt.Errorf("r%d: %w", revision, err)
			}
			parsed, err := parseLog(output)
			if err != nil {
				return err
			}
			if len(parsed) == 0 {
				return fmt.Errorf("r%d: no such revision", revision)
			}
			commits[i] = parsed[0]
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return commits, nil
}

// Export runs `svn export -r N path destination`.
func (it *Repository) Export(ctx context.Context, path string, opts repositories.ExportOptions) error {
	_, err := it.exec(ctx, "export", "-r", strconv.Itoa(opts.Revision), path, opts.Destination)
	return err
}

func (it *Repository) exec(ctx context.Context, args ...string) ([]byte, error) {
	if it.username != "" {
		args = append(args, "--username", it.username)
	}
	if it.password != "" {
		args = append(args, "--password", it.password)
	}
	args = append(args, "--non-interactive")

	stdout, stderr, err := it.run(ctx, it.workDir, it.binary, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, newVersionControlError(string(stdout), string(stderr), exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to run %s %s: %w", it.binary, args[0], err)
	}
	if len(bytes.TrimSpace(stderr)) > 0 {
		return nil, newVersionControlError(string(stdout), string(stderr), 0)
	}
	return stdout, nil
}

func execRunner(ctx context.Context, dir, binary string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
