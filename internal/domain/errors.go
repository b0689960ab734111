package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPatternNotFound is returned when the version file has no VERSION = "..." line.
	ErrPatternNotFound = errors.New("version declaration not found")
	// ErrTagExists is returned when the release tag is already present.
	ErrTagExists = errors.New("tag already exists")
	// ErrTagNotFound is returned when a push is requested for a tag that does not exist.
	ErrTagNotFound = errors.New("tag not found")
)

// InvalidVersionError reports an explicitly supplied version that is not a semantic version.
type InvalidVersionError struct {
	Input string
	Err   error
}

func (e *InvalidVersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid version %q: expected MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]", e.Input)
}

func (e *InvalidVersionError) Unwrap() error { return e.Err }

// FileRewriteError reports a failure to rewrite the version file. Nothing is written when it is returned.
type FileRewriteError struct {
	Path string
	Err  error
}

func (e *FileRewriteError) Error() string {
	return fmt.Sprintf("failed to rewrite %s: %v", e.Path, e.Err)
}

func (e *FileRewriteError) Unwrap() error { return e.Err }

// ToolOp names the version-control operation that failed.
type ToolOp string

const (
	ToolOpListTags ToolOp = "list-tags"
	ToolOpStatus   ToolOp = "status"
	ToolOpStage    ToolOp = "stage"
	ToolOpCommit   ToolOp = "commit"
	ToolOpTag      ToolOp = "tag"
	ToolOpPush     ToolOp = "push"
	ToolOpPublish  ToolOp = "publish"
)

// ExternalToolError reports a failed version-control or hosting operation.
type ExternalToolError struct {
	Op  ToolOp
	Err error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// NewToolError wraps err for op, or returns nil when err is nil.
func NewToolError(op ToolOp, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalToolError{Op: op, Err: err}
}

// IsToolError reports whether err is an ExternalToolError for op.
func IsToolError(err error, op ToolOp) bool {
	var toolErr *ExternalToolError
	return errors.As(err, &toolErr) && toolErr.Op == op
}
