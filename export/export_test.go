package export

import (
	"testing"

	"github.com/oselabs/wheelwright/graph"
	"github.com/oselabs/wheelwright/pypi"
)

// addDep records parentKey -> (name, version) with the given type. An
// empty parentKey means the edge hangs off the root.
func addDep(t *testing.T, g *graph.DependencyGraph, parentKey string, reqType graph.RequirementType, version, reqText string) {
	t.Helper()
	parentName, parentVersion, err := graph.ParseNodeKey(parentKey)
	if err != nil {
		t.Fatalf("bad parent key %q: %v", parentKey, err)
	}
	g.AddDependency(parentName, parentVersion, reqType, pypi.MustVersion(version), pypi.MustRequirement(reqText))
}

// diamondGraph builds a graph where two consumers share one child:
//
//	ROOT --toplevel--> app==1.0
//	app==1.0 --install--> a==1.0
//	app==1.0 --install--> b==1.0
//	a==1.0 --install--> c==1.0
//	b==1.0 --install--> c==1.0
func diamondGraph(t *testing.T) *graph.DependencyGraph {
	t.Helper()
	g := graph.New()
	addDep(t, g, "", graph.RequirementTypeToplevel, "1.0", "app")
	addDep(t, g, "app==1.0", graph.RequirementTypeInstall, "1.0", "a")
	addDep(t, g, "app==1.0", graph.RequirementTypeInstall, "1.0", "b")
	addDep(t, g, "a==1.0", graph.RequirementTypeInstall, "1.0", "c")
	addDep(t, g, "b==1.0", graph.RequirementTypeInstall, "1.0", "c")
	return g
}

// mixedGraph builds a graph with both install and build-only branches:
//
//	ROOT --toplevel--> app==1.0
//	app==1.0 --install--> lib==2.0
//	app==1.0 --build-system--> setuptools==68.0
//	setuptools==68.0 --install--> wheelpkg==0.40
func mixedGraph(t *testing.T) *graph.DependencyGraph {
	t.Helper()
	g := graph.New()
	addDep(t, g, "", graph.RequirementTypeToplevel, "1.0", "app>=1.0")
	addDep(t, g, "app==1.0", graph.RequirementTypeInstall, "2.0", "lib>=2.0")
	addDep(t, g, "app==1.0", graph.RequirementTypeBuildSystem, "68.0", "setuptools")
	addDep(t, g, "setuptools==68.0", graph.RequirementTypeInstall, "0.40", "wheelpkg")
	return g
}
