package pypi

import (
	"regexp"
	"strings"
)

// nameRegex matches valid distribution names per PEP 508: they start and
// end with a letter or digit and may contain ".", "-" and "_" in between.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// separatorRuns matches the separator runs collapsed by canonicalization.
var separatorRuns = regexp.MustCompile(`[-_.]+`)

// filenameUnsafe matches the characters replaced when a canonical name is
// embedded in an archive filename (PEP 427 escaping).
var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_.]+`)

// IsValidName reports whether s is a well-formed distribution name.
func IsValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// CanonicalizeName normalizes a distribution name: case is folded and
// every run of ".", "-" and "_" becomes a single "-". The result is the
// name form used for node identity and all lookups.
func CanonicalizeName(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "-"))
}

// NameToFilenamePrefix transforms a distribution name into the prefix used
// in archive filenames, following PEP 427: the canonical name with every
// separator run replaced by "_".
func NameToFilenamePrefix(name string) string {
	return filenameUnsafe.ReplaceAllString(CanonicalizeName(name), "_")
}
