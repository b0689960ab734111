package domain

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// semverRegex is the grammar from semver.org; Masterminds' strict parser accepts
// empty prerelease identifiers, so tags are gated on this first.
var semverRegex = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`,
)

// Version wraps semver.Version for additional methods.
// Values are never mutated after construction; every bump returns a new Version.
type Version struct {
	*semver.Version
}

// ZeroVersion returns 0.0.0, the base used when a repository has no version tags.
func ZeroVersion() *Version {
	return &Version{semver.New(0, 0, 0, "", "")}
}

// ParseTag parses a tag of the form v<version> or <version>.
// It reports false for anything that is not a strict semantic version.
func ParseTag(tag string) (*Version, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	if !semverRegex.MatchString(s) {
		return nil, false
	}
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, false
	}
	return &Version{v}, true
}

// NewVersion creates a new Version from an operator supplied string.
func NewVersion(s string) (*Version, error) {
	v, ok := ParseTag(s)
	if !ok {
		return nil, &InvalidVersionError{Input: s}
	}
	return v, nil
}

// ParseTags parses every tag and drops the ones that are not versions.
func ParseTags(tags []string) []*Version {
	versions := make([]*Version, 0, len(tags))
	for _, tag := range tags {
		if v, ok := ParseTag(tag); ok {
			versions = append(versions, v)
		}
	}
	return versions
}

// Latest returns the highest version by semver precedence, or 0.0.0 when empty.
func Latest(versions []*Version) *Version {
	var latest *Version
	for _, v := range versions {
		if v == nil || v.Version == nil {
			continue
		}
		if latest == nil || v.Compare(latest) > 0 {
			latest = v
		}
	}
	if latest == nil {
		return ZeroVersion()
	}
	return latest
}

// Compare compares two versions. Build metadata is ignored.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// Equal reports whether both versions render identically, build metadata included.
func (v *Version) Equal(other *Version) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.String() == other.String()
}

// String returns the version without any prefix.
func (v *Version) String() string {
	return v.Version.String()
}

// TagName returns the tag for this version using the given prefix.
func (v *Version) TagName(prefix string) string {
	return prefix + v.String()
}
