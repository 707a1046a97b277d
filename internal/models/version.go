package models

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a leniently parsed artifact or project version.
//
// Maven style versions such as "1.0-SNAPSHOT" are accepted; the missing patch
// component is treated as zero for ordering while String keeps the original text.
type Version struct {
	raw    string
	parsed *semver.Version
}

// ParseVersion parses a version string (e.g., "2.15.2", "1.0-SNAPSHOT", "v5.10.0")
func ParseVersion(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version")
	}

	parsed, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}

	return &Version{raw: s, parsed: parsed}, nil
}

// String returns the version as it was declared
func (v *Version) String() string {
	return v.raw
}

// IsSnapshot reports whether this is a mutable development version
func (v *Version) IsSnapshot() bool {
	return strings.HasSuffix(strings.ToUpper(v.parsed.Prerelease()), "SNAPSHOT")
}

// IsPrerelease returns true if this version has a prerelease suffix
func (v *Version) IsPrerelease() bool {
	return v.parsed.Prerelease() != ""
}

// Compare compares two versions
// Returns -1 if v < other, 0 if v == other, 1 if v > other
func (v *Version) Compare(other *Version) int {
	return v.parsed.Compare(other.parsed)
}

// IsDynamicVersion reports whether a version selects from a moving range
// ("1.+", "latest.release", "[1.0,2.0)") rather than naming one release.
func IsDynamicVersion(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, "+") ||
		strings.HasPrefix(s, "latest.") ||
		strings.HasPrefix(s, "[") ||
		strings.HasPrefix(s, "(")
}

// CompareVersions orders two version strings. Strings that do not parse are
// compared lexically and sort before parseable ones.
func CompareVersions(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)

	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA != nil && errB == nil:
		return -1
	case errA == nil && errB != nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
