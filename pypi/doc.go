// Package pypi provides strongly-typed, validated identifiers for Python
// distributions: canonical package names, PEP 440 versions, and PEP 508
// requirement specifiers.
//
// All types in this package are immutable and validate their values at
// construction time. Zero values are generally invalid - use the
// constructor functions (ParseVersion, ParseRequirement, etc.) to create
// valid instances. The one deliberate exception is the zero Version, which
// stands for "no version" on the graph's virtual root node.
//
// # Canonicalization
//
// CanonicalizeName folds case and collapses runs of ".", "-" and "_" into
// a single "-", so "Flit_Core", "flit.core" and "flit-core" all name the
// same distribution. Node identity in the dependency graph is always built
// from canonical names.
//
// # Versions and specifiers
//
// Version and SpecifierSet are thin wrappers around
// github.com/aquasecurity/go-pep440-version, which implements the PEP 440
// ordering rules (epochs, post/dev releases, local versions). The wrappers
// keep the original text for stable round-trips and add the handful of
// helpers the graph engine needs (Filter, ascending sorts).
package pypi
