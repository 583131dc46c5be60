package pypi

import (
	"fmt"
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// SpecifierSet is a parsed PEP 440 version constraint such as
// ">=1.0,<2.0". The empty set accepts every version.
type SpecifierSet struct {
	raw   string
	specs pep440.Specifiers
}

// ParseSpecifierSet creates a validated SpecifierSet from a string.
func ParseSpecifierSet(raw string) (SpecifierSet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SpecifierSet{}, nil
	}
	specs, err := pep440.NewSpecifiers(trimmed)
	if err != nil {
		return SpecifierSet{}, fmt.Errorf("invalid version specifier %q: %w", raw, err)
	}
	return SpecifierSet{raw: trimmed, specs: specs}, nil
}

// String returns the specifier text.
func (s SpecifierSet) String() string {
	return s.raw
}

// IsEmpty returns true if the set contains no specifiers.
func (s SpecifierSet) IsEmpty() bool {
	return s.raw == ""
}

// Check reports whether the given version satisfies every specifier in the
// set. An empty set accepts everything.
func (s SpecifierSet) Check(v Version) bool {
	if s.raw == "" {
		return true
	}
	if v.IsEmpty() {
		return false
	}
	return s.specs.Check(v.v)
}

// Filter returns the subset of candidates accepted by the set, preserving
// their order. This is the primitive conflict detection is built on: the
// set is applied over all versions in use, not just one.
func (s SpecifierSet) Filter(candidates []Version) []Version {
	matched := make([]Version, 0, len(candidates))
	for _, c := range candidates {
		if s.Check(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Requirement is a parsed PEP 508 dependency declaration: a distribution
// name with optional extras, version specifier, direct URL, and
// environment marker. The original text is preserved and used whenever the
// requirement is written back out.
type Requirement struct {
	raw       string
	name      string
	extras    []string
	specifier SpecifierSet
	url       string
	marker    string
}

// reqHead matches the leading name and optional extras of a requirement.
var reqHead = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`)

// ParseRequirement creates a validated Requirement from a PEP 508 string
// such as "flit_core[toml]>=3.2; python_version < '3.12'".
func ParseRequirement(raw string) (Requirement, error) {
	body := raw
	marker := ""
	if i := strings.Index(raw, ";"); i >= 0 {
		body = raw[:i]
		marker = strings.TrimSpace(raw[i+1:])
		if marker == "" {
			return Requirement{}, fmt.Errorf("invalid requirement %q: empty marker", raw)
		}
	}

	m := reqHead.FindStringSubmatch(body)
	if m == nil || m[1] == "" {
		return Requirement{}, fmt.Errorf("invalid requirement %q: missing distribution name", raw)
	}

	r := Requirement{
		raw:    strings.TrimSpace(raw),
		name:   m[1],
		marker: marker,
	}
	if m[2] != "" {
		for _, extra := range strings.Split(m[2], ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				r.extras = append(r.extras, extra)
			}
		}
	}

	rest := strings.TrimSpace(m[3])
	switch {
	case rest == "":
		// Bare name, accepts any version.
	case strings.HasPrefix(rest, "@"):
		r.url = strings.TrimSpace(strings.TrimPrefix(rest, "@"))
		if r.url == "" {
			return Requirement{}, fmt.Errorf("invalid requirement %q: empty URL", raw)
		}
	default:
		// A parenthesized specifier is legal: "name (>=1.0)".
		if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
			rest = strings.TrimSpace(rest[1 : len(rest)-1])
		}
		specs, err := ParseSpecifierSet(rest)
		if err != nil {
			return Requirement{}, fmt.Errorf("invalid requirement %q: %w", raw, err)
		}
		r.specifier = specs
	}

	return r, nil
}

// MustRequirement creates a Requirement or panics. Use only for
// constants/tests.
func MustRequirement(raw string) Requirement {
	r, err := ParseRequirement(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the requirement exactly as it was declared.
func (r Requirement) String() string {
	return r.raw
}

// Name returns the distribution name as declared, without normalization.
func (r Requirement) Name() string {
	return r.name
}

// CanonicalName returns the canonicalized distribution name.
func (r Requirement) CanonicalName() string {
	return CanonicalizeName(r.name)
}

// Extras returns the declared extras, in declaration order.
func (r Requirement) Extras() []string {
	return r.extras
}

// Specifier returns the version constraint. It is the empty set for bare
// and URL requirements.
func (r Requirement) Specifier() SpecifierSet {
	return r.specifier
}

// URL returns the direct reference URL, or "" for ordinary requirements.
func (r Requirement) URL() string {
	return r.url
}

// Marker returns the environment marker text, or "".
func (r Requirement) Marker() string {
	return r.marker
}
