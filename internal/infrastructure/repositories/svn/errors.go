package svn

import (
	"fmt"
	"regexp"
	"strings"
)

var errorCodePattern = regexp.MustCompile(`svn: (E\d+)`)

// VersionControlError describes a failed svn invocation.
type VersionControlError struct {
	Code     string // svn error code (e.g. "E155007"), empty when svn printed none
	ExitCode int
	Stderr   string
	Output   string
}

func (e *VersionControlError) Error() string {
	message := strings.TrimSpace(e.Stderr)
	if e.Code != "" {
		return fmt.Sprintf("svn failed (%s): %s", e.Code, message)
	}
	return fmt.Sprintf("svn failed (exit %d): %s", e.ExitCode, message)
}

func newVersionControlError(stdout, stderr string, exitCode int) *VersionControlError {
	code := ""
	if match := errorCodePattern.FindStringSubmatch(stderr); match != nil {
		code = match[1]
	}
	return &VersionControlError{Code: code, ExitCode: exitCode, Stderr: stderr, Output: stdout}
}
