package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultPrereleaseToken starts a prerelease series: 1.2.3 -> 1.2.3-rc.1.
	DefaultPrereleaseToken = "rc"
	// DefaultBuildToken starts a build series: 1.2.3 -> 1.2.3+build.1.
	DefaultBuildToken = "build"
)

var tokenRegex = regexp.MustCompile(`^[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*$`)

// BumpSpec is the set of requested bumps for one call to Bump.
type BumpSpec struct {
	Major      bool
	Minor      bool
	Patch      bool
	Prerelease bool
	Build      bool
	// PrereleaseToken and BuildToken seed an absent segment. Empty means the default.
	PrereleaseToken string
	BuildToken      string
}

// Any reports whether at least one bump is requested.
func (s BumpSpec) Any() bool {
	return s.Major || s.Minor || s.Patch || s.Prerelease || s.Build
}

// Validate checks the seed tokens.
func (s BumpSpec) Validate() error {
	if s.PrereleaseToken != "" && !tokenRegex.MatchString(s.PrereleaseToken) {
		return fmt.Errorf("invalid prerelease token %q", s.PrereleaseToken)
	}
	if s.BuildToken != "" && !tokenRegex.MatchString(s.BuildToken) {
		return fmt.Errorf("invalid build token %q", s.BuildToken)
	}
	return nil
}

// Names returns the enabled bumps in application order.
func (s BumpSpec) Names() []string {
	var names []string
	for _, b := range []struct {
		on   bool
		name string
	}{
		{s.Major, "major"},
		{s.Minor, "minor"},
		{s.Patch, "patch"},
		{s.Prerelease, "prerelease"},
		{s.Build, "build"},
	} {
		if b.on {
			names = append(names, b.name)
		}
	}
	return names
}

// Bump applies the requested bumps in the order major, minor, patch, prerelease, build.
// Each step works on the result of the previous one. Once a numeric field has been
// bumped, lower numeric bumps in the same call are absorbed, so major+minor+patch
// on 1.2.3 gives 2.0.0. A patch bump on a prerelease drops the prerelease and keeps
// the patch number.
func (v *Version) Bump(spec BumpSpec) (*Version, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	next := *v.Version
	numeric := false
	if spec.Major {
		next = next.IncMajor()
		numeric = true
	}
	if spec.Minor && !numeric {
		next = next.IncMinor()
		numeric = true
	}
	if spec.Patch && !numeric {
		next = next.IncPatch()
	}
	if spec.Prerelease {
		token := spec.PrereleaseToken
		if token == "" {
			token = DefaultPrereleaseToken
		}
		cleared, err := next.SetMetadata("")
		if err != nil {
			return nil, fmt.Errorf("failed to clear build metadata: %w", err)
		}
		next, err = cleared.SetPrerelease(nextIdentifier(next.Prerelease(), token))
		if err != nil {
			return nil, fmt.Errorf("failed to bump prerelease: %w", err)
		}
	}
	if spec.Build {
		token := spec.BuildToken
		if token == "" {
			token = DefaultBuildToken
		}
		var err error
		next, err = next.SetMetadata(nextIdentifier(next.Metadata(), token))
		if err != nil {
			return nil, fmt.Errorf("failed to bump build metadata: %w", err)
		}
	}
	return &Version{&next}, nil
}

// nextIdentifier advances a dot separated segment: a numeric last identifier is
// incremented, trailing digits are incremented (rc1 -> rc2), otherwise .1 is appended.
// An empty segment starts at token.1.
func nextIdentifier(current, token string) string {
	if current == "" {
		return token + ".1"
	}
	parts := strings.Split(current, ".")
	last := parts[len(parts)-1]
	if n, err := strconv.ParseUint(last, 10, 64); err == nil {
		parts[len(parts)-1] = strconv.FormatUint(n+1, 10)
		return strings.Join(parts, ".")
	}
	i := len(last)
	for i > 0 && last[i-1] >= '0' && last[i-1] <= '9' {
		i--
	}
	if i < len(last) {
		if n, err := strconv.ParseUint(last[i:], 10, 64); err == nil {
			parts[len(parts)-1] = last[:i] + strconv.FormatUint(n+1, 10)
			return strings.Join(parts, ".")
		}
	}
	return current + ".1"
}
