package pypi

import (
	"fmt"
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Version is a parsed, comparable PEP 440 version.
//
// This is a thin wrapper around github.com/aquasecurity/go-pep440-version
// that keeps the original text for stable output. The zero Version means
// "no version" and is only used for the graph's virtual root node.
type Version struct {
	raw string
	v   pep440.Version
}

// ParseVersion creates a validated Version from a string.
func ParseVersion(raw string) (Version, error) {
	if raw == "" {
		return Version{}, fmt.Errorf("version cannot be empty")
	}
	v, err := pep440.Parse(raw)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return Version{raw: raw, v: v}, nil
}

// MustVersion creates a Version or panics. Use only for constants/tests.
func MustVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version exactly as it was given.
func (v Version) String() string {
	return v.raw
}

// IsEmpty returns true if this is a zero-value Version.
func (v Version) IsEmpty() bool {
	return v.raw == ""
}

// Compare compares two versions under PEP 440 ordering.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// An empty version sorts before any real version.
func (v Version) Compare(other Version) int {
	if v.raw == "" || other.raw == "" {
		switch {
		case v.raw == other.raw:
			return 0
		case v.raw == "":
			return -1
		default:
			return 1
		}
	}
	if v.v.LessThan(other.v) {
		return -1
	}
	if v.v.GreaterThan(other.v) {
		return 1
	}
	return 0
}

// Less returns true if v < other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal returns true if the versions are equivalent under PEP 440,
// regardless of spelling ("1.0" equals "1.0.0").
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// SortVersions sorts versions ascending, in place.
func SortVersions(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Less(versions[j])
	})
}
