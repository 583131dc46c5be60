package graph

import (
	"iter"
	"log/slog"

	"github.com/oselabs/wheelwright/pypi"
)

// DependencyGraph is the full record of a bootstrap run: every
// (canonical name, version) pair that was resolved, and every requirement
// edge between them. It always contains exactly one root node.
//
// Mutation happens only through AddDependency and is single-threaded by
// contract; all query methods are read-only.
type DependencyGraph struct {
	nodes map[string]*Node

	// order keeps first-seen insertion order of node keys so that
	// traversal and serialization are deterministic across identical
	// inputs.
	order []string
}

// New creates an empty graph containing only the root node.
func New() *DependencyGraph {
	g := &DependencyGraph{nodes: make(map[string]*Node)}
	g.addNode(&Node{Key: RootKey})
	return g
}

func (g *DependencyGraph) addNode(node *Node) *Node {
	if existing, ok := g.nodes[node.Key]; ok {
		return existing
	}
	g.nodes[node.Key] = node
	g.order = append(g.order, node.Key)
	return node
}

// lookupOrCreate returns the node for (name, version), creating it on
// first reference. name must already be canonical.
func (g *DependencyGraph) lookupOrCreate(canonicalName string, version pypi.Version) *Node {
	if canonicalName == "" {
		return g.nodes[RootKey]
	}
	key := NodeKey(canonicalName, version)
	if node, ok := g.nodes[key]; ok {
		return node
	}
	return g.addNode(&Node{
		Key:               key,
		CanonicalizedName: canonicalName,
		Version:           version,
	})
}

// AddDependency records that (parentName, parentVersion) declared req,
// satisfied by version reqVersion of the required distribution. An empty
// parentName means the requirement came from the top level and hangs off
// the root node.
//
// The call never fails on well-formed inputs (malformed versions and
// requirements are rejected earlier, when they are parsed) and is
// deliberately not idempotent: identical calls append distinct edges,
// because the same dependency can legitimately be declared through two
// different mechanisms.
func (g *DependencyGraph) AddDependency(
	parentName string,
	parentVersion pypi.Version,
	reqType RequirementType,
	reqVersion pypi.Version,
	req pypi.Requirement,
) {
	parent := g.lookupOrCreate(pypi.CanonicalizeName(parentName), parentVersion)
	child := g.lookupOrCreate(req.CanonicalName(), reqVersion)

	slog.Debug("recording dependency",
		"parent", parent.String(),
		"child", child.Key,
		"type", reqType.String(),
		"req", req.String())

	parent.Children = append(parent.Children, Edge{
		ReqType: reqType,
		Req:     req,
		Key:     child.Key,
	})
	child.Parents = append(child.Parents, Edge{
		ReqType: reqType,
		Req:     req,
		Key:     parent.Key,
	})
}

// Node returns the node for a key, or nil if not present.
func (g *DependencyGraph) Node(key string) *Node {
	return g.nodes[key]
}

// Root returns the virtual root node.
func (g *DependencyGraph) Root() *Node {
	return g.nodes[RootKey]
}

// Len returns the number of nodes, including the root.
func (g *DependencyGraph) Len() int {
	return len(g.order)
}

// Nodes yields every node including the root, in first-seen insertion
// order.
func (g *DependencyGraph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, key := range g.order {
			if !yield(g.nodes[key]) {
				return
			}
		}
	}
}

// NodesByName returns every node whose canonicalized name matches,
// across all versions, in insertion order. The result is empty, never an
// error, when the name is absent.
func (g *DependencyGraph) NodesByName(name string) []*Node {
	canonical := pypi.CanonicalizeName(name)
	var matches []*Node
	for _, key := range g.order {
		if node := g.nodes[key]; node.CanonicalizedName == canonical {
			matches = append(matches, node)
		}
	}
	return matches
}

// InstallDependencies yields the transitive closure of nodes reachable
// from the root by following only install-type edges. A node reachable
// solely through a build-time edge chain is excluded: being a runtime
// dependency of a build tool does not make something a runtime dependency
// of the target.
func (g *DependencyGraph) InstallDependencies() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		visited := make(map[string]bool)
		g.installWalk(g.Root().Children, visited, yield)
	}
}

func (g *DependencyGraph) installWalk(edges []Edge, visited map[string]bool, yield func(*Node) bool) bool {
	for _, edge := range edges {
		if visited[edge.Key] || !edge.ReqType.IsInstall() {
			continue
		}
		visited[edge.Key] = true
		node := g.nodes[edge.Key]
		if !yield(node) {
			return false
		}
		if !g.installWalk(node.Children, visited, yield) {
			return false
		}
	}
	return true
}

// InstallDependencyVersions maps each canonicalized name in the install
// closure to its distinct nodes. More than one node for a name means more
// than one version is in use at runtime; this is the raw input to
// conflict detection.
func (g *DependencyGraph) InstallDependencyVersions() map[string][]*Node {
	versions := make(map[string][]*Node)
	for node := range g.InstallDependencies() {
		versions[node.CanonicalizedName] = append(versions[node.CanonicalizedName], node)
	}
	return versions
}
