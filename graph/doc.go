// Package graph implements the dependency graph recorded while
// bootstrapping a distribution and its transitive requirements from
// source archives.
//
// The graph answers "who requires what, at which version, for which
// purpose" after a bootstrap run. It deliberately keeps one node per
// (canonical name, version) pair, so two consumers needing different
// versions of the same distribution produce two nodes - the graph records
// what was resolved, it never collapses or re-solves versions.
//
// # Building a graph
//
// A graph starts with only the virtual root node and grows through
// AddDependency as an external resolver walks requirements:
//
//	g := graph.New()
//	g.AddDependency("", pypi.Version{}, graph.RequirementTypeToplevel,
//	    pypi.MustVersion("2.31.0"), pypi.MustRequirement("requests>=2"))
//
// Every edge is stored twice, once on the requirer's Children and once on
// the satisfier's Parents, so traversal works in both directions.
// AddDependency is not idempotent: the same dependency declared twice
// (for example by the build backend and by package metadata) is recorded
// as two edges, because duplicate provenance is real provenance.
//
// # Querying
//
// Read-only queries run after construction is complete:
//
//	for node := range g.InstallDependencies() { ... }
//	graph.FindWhy(os.Stdout, g, node, -1, 1, nil)
//	graph.ExplainDuplicates(os.Stdout, g)
//
// The graph itself is not safe for concurrent mutation; concurrent
// read-only queries over a finished graph are fine.
//
// # Persistence
//
// Serialize writes a stable, line-oriented text form (one JSON record per
// node, insertion order), FromFile reads it back, and MigrateLegacy
// imports the older flat adjacency format.
package graph
