package orchestrator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/compozy/versionbump/internal/domain"
)

// tagNameRegex matches the characters git accepts in a tag name
var tagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/+-]+$`)

// ValidateRequest checks a release request before any step runs.
func ValidateRequest(req domain.ReleaseRequest) error {
	if strings.TrimSpace(req.VersionFile) == "" {
		return fmt.Errorf("version file cannot be empty")
	}
	if filepath.IsAbs(req.VersionFile) || strings.Contains(req.VersionFile, "..") {
		return fmt.Errorf("version file must be inside the repository: %s", req.VersionFile)
	}
	if err := req.Bump.Validate(); err != nil {
		return err
	}
	if req.Publish && !req.Push {
		return fmt.Errorf("publishing a release requires the tag to be pushed")
	}
	return nil
}

// ValidateTagName validates a git tag name.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag name too long: %d characters (max: 255)", len(tag))
	}
	if strings.HasPrefix(tag, "/") || strings.HasSuffix(tag, "/") || strings.HasPrefix(tag, "-") {
		return fmt.Errorf("tag name cannot start or end with slash or start with dash: %s", tag)
	}
	if strings.Contains(tag, "..") {
		return fmt.Errorf("tag name cannot contain consecutive dots: %s", tag)
	}
	if strings.HasSuffix(tag, ".lock") {
		return fmt.Errorf("tag name cannot end with .lock: %s", tag)
	}
	if !tagNameRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag name format: %s", tag)
	}
	return nil
}
