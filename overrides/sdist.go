package overrides

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oselabs/wheelwright/pypi"
)

// SdistCandidates returns the archive base names tried when locating
// the source archive for one distribution, without extension. With an
// expected_sdist_name override there is exactly one candidate; otherwise
// the filename-prefix form is tried first, then the canonical name, then
// the name exactly as the dependency declared it.
func (r *Registry) SdistCandidates(name string, version pypi.Version) ([]string, error) {
	if pkg := r.Lookup(name); pkg != nil && pkg.sdistName != nil {
		base, err := pkg.SdistName(version)
		if err != nil {
			return nil, err
		}
		return []string{base}, nil
	}

	canonical := pypi.CanonicalizeName(name)
	candidates := []string{
		fmt.Sprintf("%s-%s", pypi.NameToFilenamePrefix(name), version),
	}
	// Archives named after the canonical or the declared name are not
	// PEP 427 clean, but they exist in the wild.
	for _, alt := range []string{canonical, name} {
		base := fmt.Sprintf("%s-%s", alt, version)
		if !slices.Contains(candidates, base) {
			candidates = append(candidates, base)
		}
	}
	return candidates, nil
}

// FindSdist locates the source archive for a distribution under dir.
// Matching is case-insensitive because mirrors do not agree on archive
// name casing. With an expected_sdist_name override the file must exist
// exactly as named.
func (r *Registry) FindSdist(dir, name string, version pypi.Version) (string, error) {
	if pkg := r.Lookup(name); pkg != nil && pkg.sdistName != nil {
		base, err := pkg.SdistName(version)
		if err != nil {
			return "", err
		}
		path := filepath.Join(dir, base+".tar.gz")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("no sdist for %s version %s: %s does not exist", name, version, path)
	}

	candidates, err := r.SdistCandidates(name, version)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("finding sdist for %s: %w", name, err)
	}
	for _, entry := range entries {
		for _, base := range candidates {
			if strings.EqualFold(entry.Name(), base+".tar.gz") {
				return filepath.Join(dir, entry.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("no sdist for %s version %s as any of %v in %s (contents: %v)",
		name, version, candidates, dir, entryNames(entries))
}

// FindSourceDir locates the unpacked source tree for a distribution
// under workDir. Archives unpack to a directory matching their base
// name, with the source root nested one level below under the same
// name.
func (r *Registry) FindSourceDir(workDir, name string, version pypi.Version) (string, error) {
	candidates, err := r.SdistCandidates(name, version)
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("finding source directory for %s: %w", name, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for _, base := range candidates {
			if strings.EqualFold(entry.Name(), base) {
				// The unpack directory and the source root share a
				// name; whatever case the archive used, the match
				// extends the path one level.
				return filepath.Join(workDir, entry.Name(), entry.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("no source directory for %s version %s as any of %v in %s (contents: %v)",
		name, version, candidates, workDir, entryNames(entries))
}

func entryNames(entries []os.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
