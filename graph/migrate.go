package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oselabs/wheelwright/pypi"
)

// legacyAdjacency is the older flat graph format: one JSON object mapping
// each node key to a plain adjacency list of [req_type, req_name,
// req_version, req] tuples, with no first-class graph object.
type legacyAdjacency map[string][][]string

// MigrateLegacy imports a graph stored in the legacy flat adjacency
// format. The traversal is an explicit worklist starting at the root key:
// each popped key replays its recorded tuples through AddDependency and
// pushes the reconstructed child keys. Cycle safety rests entirely on the
// visited set - a key is processed at most once no matter how many times
// it is reachable.
//
// A key with no recorded parent information defaults to the root; a tuple
// missing its version or requirement text fails migration outright, since
// a dependency record without a target version is not recoverable.
func MigrateLegacy(r io.Reader) (*DependencyGraph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy graph: %w", err)
	}

	var old legacyAdjacency
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, fmt.Errorf("failed to parse legacy graph: %w", err)
	}

	g := New()
	stack := []string{RootKey}
	visited := make(map[string]bool)

	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[key] {
			continue
		}

		parentName, parentVersion, err := ParseNodeKey(key)
		if err != nil {
			return nil, fmt.Errorf("legacy graph: %w", err)
		}

		for _, tuple := range old[key] {
			if len(tuple) != 4 {
				return nil, fmt.Errorf("legacy graph: node %q has malformed adjacency tuple %v", key, tuple)
			}
			reqType, err := ParseRequirementType(tuple[0])
			if err != nil {
				return nil, fmt.Errorf("legacy graph: node %q: %w", key, err)
			}
			reqName := tuple[1]
			if tuple[2] == "" {
				return nil, fmt.Errorf("legacy graph: node %q: dependency %q has no version", key, reqName)
			}
			reqVersion, err := pypi.ParseVersion(tuple[2])
			if err != nil {
				return nil, fmt.Errorf("legacy graph: node %q: dependency %q: %w", key, reqName, err)
			}
			if tuple[3] == "" {
				return nil, fmt.Errorf("legacy graph: node %q: dependency %q has no requirement", key, reqName)
			}
			req, err := pypi.ParseRequirement(tuple[3])
			if err != nil {
				return nil, fmt.Errorf("legacy graph: node %q: dependency %q: %w", key, reqName, err)
			}

			g.AddDependency(parentName, parentVersion, reqType, reqVersion, req)
			stack = append(stack, NodeKey(pypi.CanonicalizeName(reqName), reqVersion))
		}

		// Marked only after all tuples are replayed, so a partially
		// processed key is never skipped.
		visited[key] = true
	}

	return g, nil
}

// MigrateLegacyFile imports a legacy graph file from disk.
func MigrateLegacyFile(path string) (*DependencyGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy graph file: %w", err)
	}
	defer f.Close()

	g, err := MigrateLegacy(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
