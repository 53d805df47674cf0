package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionRe = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?$`)

// Version is a parsed semantic version. Missing minor/patch components are
// treated as zero, so "1.2" equals "1.2.0".
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseVersion parses a semver string with an optional "v" prefix.
func ParseVersion(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	v := Version{Prerelease: m[4]}
	v.Major, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		v.Minor, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, nil
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or higher than
// other. A release outranks any prerelease of the same version.
func (v Version) Compare(other Version) int {
	for _, d := range [...]int{
		v.Major - other.Major,
		v.Minor - other.Minor,
		v.Patch - other.Patch,
	} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}

	switch {
	case v.Prerelease == other.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	case v.Prerelease < other.Prerelease:
		return -1
	default:
		return 1
	}
}

// IsNewer reports whether candidate is a strictly newer version than current.
func IsNewer(candidate, current string) (bool, error) {
	cand, err := ParseVersion(candidate)
	if err != nil {
		return false, fmt.Errorf("manifest version: %w", err)
	}
	cur, err := ParseVersion(current)
	if err != nil {
		return false, fmt.Errorf("current version: %w", err)
	}
	return cand.Compare(cur) > 0, nil
}
