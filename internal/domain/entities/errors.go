package entities

import "errors"

var (
	// ErrUnknownOutputType is returned when a descriptor declares an output type other than Library or Exe.
	ErrUnknownOutputType = errors.New("unknown output type")

	// ErrDescriptorNotFound is returned when no ancestor directory of a source file holds a project descriptor.
	ErrDescriptorNotFound = errors.New("no project descriptor found")

	// ErrNoProject is returned when a command needs a project but none was initialized.
	ErrNoProject = errors.New("no project configured; run 'packman init' first")

	// ErrNoDependencies is returned when sources changed but no dependency graph was scanned.
	ErrNoDependencies = errors.New("no dependency graph stored; run 'packman scan' first")

	// ErrNoRevisions is returned when a package is requested without any revision.
	ErrNoRevisions = errors.New("no revisions selected")

	// ErrConflictsFound is returned when pending revisions touch the same assemblies as the release.
	ErrConflictsFound = errors.New("release conflicts with unreleased revisions")

	// ErrIgnoreFileNotFound is returned when the ignore list to import does not exist.
	ErrIgnoreFileNotFound = errors.New("ignore list not found")

	// ErrDirectoryNotFound is returned when a project path does not point to an existing directory.
	ErrDirectoryNotFound = errors.New("directory does not exist")

	// ErrUnsafeOutputDir is returned when removing a package directory would also remove a protected tree.
	ErrUnsafeOutputDir = errors.New("output directory overlaps a protected path")

	// ErrInvalidDocument is returned when a persisted record fails validation for its scheme.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrVersionControlUnavailable is returned when the project's version-control client cannot be used.
	ErrVersionControlUnavailable = errors.New("version control client unavailable")
)
