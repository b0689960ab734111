package domain

// VersionInput is a version given either as a parsed Version or as raw text.
// It is resolved once, at the boundary, into a single Version.
type VersionInput struct {
	parsed *Version
	raw    string
	set    bool
}

// VersionFromString wraps an operator supplied string. An empty string means unset.
func VersionFromString(raw string) VersionInput {
	return VersionInput{raw: raw, set: raw != ""}
}

// VersionFromParsed wraps an already parsed version. A nil version means unset.
func VersionFromParsed(v *Version) VersionInput {
	return VersionInput{parsed: v, set: v != nil}
}

// IsSet reports whether a version was supplied at all.
func (in VersionInput) IsSet() bool {
	return in.set
}

// Resolve returns the version, parsing raw text when needed.
func (in VersionInput) Resolve() (*Version, error) {
	if in.parsed != nil {
		return in.parsed, nil
	}
	return NewVersion(in.raw)
}

func (in VersionInput) String() string {
	if in.parsed != nil {
		return in.parsed.String()
	}
	return in.raw
}
