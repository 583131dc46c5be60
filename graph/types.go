package graph

import (
	"fmt"

	"github.com/oselabs/wheelwright/pypi"
)

// RequirementType records why an edge exists: whether the dependency is
// needed at runtime after installation, only while building from source,
// or because the user asked for it at the top level.
type RequirementType string

const (
	// RequirementTypeInstall marks a runtime dependency from package
	// metadata (Requires-Dist).
	RequirementTypeInstall RequirementType = "install"

	// RequirementTypeBuild marks a dependency needed only while building,
	// discovered from the build environment.
	RequirementTypeBuild RequirementType = "build"

	// RequirementTypeBuildSystem marks a build-system requires entry from
	// pyproject.toml.
	RequirementTypeBuildSystem RequirementType = "build-system"

	// RequirementTypeBuildBackend marks a dependency reported by the build
	// backend's get_requires_for_build hooks.
	RequirementTypeBuildBackend RequirementType = "build-backend"

	// RequirementTypeToplevel marks a requirement the user originally
	// asked for; these edges leave the virtual root node.
	RequirementTypeToplevel RequirementType = "toplevel"
)

// ParseRequirementType validates a requirement type read from user input
// or a graph file.
func ParseRequirementType(s string) (RequirementType, error) {
	switch t := RequirementType(s); t {
	case RequirementTypeInstall, RequirementTypeBuild, RequirementTypeBuildSystem,
		RequirementTypeBuildBackend, RequirementTypeToplevel:
		return t, nil
	}
	return "", fmt.Errorf("unknown requirement type %q", s)
}

// String returns the wire form of the requirement type.
func (t RequirementType) String() string {
	return string(t)
}

// IsInstall reports whether the edge contributes to the post-install
// runtime closure.
func (t RequirementType) IsInstall() bool {
	return t == RequirementTypeInstall || t == RequirementTypeToplevel
}

// IsBuild reports whether the edge exists only to build from source.
func (t RequirementType) IsBuild() bool {
	return t == RequirementTypeBuild || t == RequirementTypeBuildSystem ||
		t == RequirementTypeBuildBackend
}

// Edge is one recorded requirement relationship. Edges are value records:
// they name the node on the far end by key instead of holding a pointer,
// so they are freely shareable and serializable, and they never own node
// lifetime.
//
// On a node's Children the Key names the satisfying child; on a node's
// Parents it names the requiring parent. Req is always the requirement the
// parent declared.
type Edge struct {
	ReqType RequirementType
	Req     pypi.Requirement
	Key     string
}

// RootKey is the key of the virtual root node representing the set of
// top-level requirements the user asked for. It serializes as the empty
// string, which keeps old graph files importable.
const RootKey = ""

// Node is a single (canonical name, version) pair in the graph. The root
// node has no name or version.
type Node struct {
	Key               string
	CanonicalizedName string
	Version           pypi.Version

	// Children are the requirements this node declares, in the order they
	// were recorded.
	Children []Edge

	// Parents are the nodes whose requirements this node satisfies.
	Parents []Edge
}

// NodeKey builds the canonical key for a name/version pair.
func NodeKey(canonicalName string, version pypi.Version) string {
	return canonicalName + "==" + version.String()
}

// ParseNodeKey splits a node key back into its canonical name and
// version. The root key yields ("", zero version, nil).
func ParseNodeKey(key string) (string, pypi.Version, error) {
	if key == RootKey {
		return "", pypi.Version{}, nil
	}
	name, rest, found := cutKey(key)
	if !found || name == "" {
		return "", pypi.Version{}, fmt.Errorf("malformed node key %q", key)
	}
	version, err := pypi.ParseVersion(rest)
	if err != nil {
		return "", pypi.Version{}, fmt.Errorf("malformed node key %q: %w", key, err)
	}
	return pypi.CanonicalizeName(name), version, nil
}

func cutKey(key string) (string, string, bool) {
	for i := 0; i+1 < len(key); i++ {
		if key[i] == '=' && key[i+1] == '=' {
			return key[:i], key[i+2:], true
		}
	}
	return key, "", false
}

// IsRoot reports whether this is the virtual root node.
func (n *Node) IsRoot() bool {
	return n.Key == RootKey
}

// String returns the node key, or "*" for the root.
func (n *Node) String() string {
	if n.IsRoot() {
		return "*"
	}
	return n.Key
}

// IncomingInstallEdges returns the subset of Parents whose requirement
// type is install-type; these are the consumers that actually constrain
// this node at runtime.
func (n *Node) IncomingInstallEdges() []Edge {
	edges := make([]Edge, 0, len(n.Parents))
	for _, edge := range n.Parents {
		if edge.ReqType.IsInstall() {
			edges = append(edges, edge)
		}
	}
	return edges
}
