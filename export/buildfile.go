package export

import (
	"fmt"
	"io"

	"github.com/bazelbuild/buildtools/build"

	"github.com/oselabs/wheelwright/graph"
)

// WriteBuildFile renders the build plan as a Bazel BUILD file: one
// wheel(...) rule per distribution, with build_deps and install_deps
// label lists pointing at the rules for its children. The rule set is
// assembled as a buildtools syntax tree and printed with its formatter,
// so the output is already buildifier-clean.
func WriteBuildFile(w io.Writer, g *graph.DependencyGraph) error {
	f := &build.File{Type: build.TypeBuild}

	seen := make(map[string]bool)
	for node := range g.Nodes() {
		if node.IsRoot() {
			continue
		}
		name := ruleName(node)
		if seen[name] {
			continue
		}
		seen[name] = true
		f.Stmt = append(f.Stmt, ruleFromNode(g, node))
	}

	_, err := w.Write(build.Format(f))
	return err
}

// ruleName is the Bazel target name for one node. Versions may contain
// characters Bazel rejects in label names, so only the name/version
// shape is kept.
func ruleName(node *graph.Node) string {
	return fmt.Sprintf("%s-%s", node.CanonicalizedName, node.Version)
}

func ruleFromNode(g *graph.DependencyGraph, node *graph.Node) *build.CallExpr {
	var buildDeps, installDeps []build.Expr
	for _, edge := range node.Children {
		label := &build.StringExpr{Value: ":" + ruleName(g.Node(edge.Key))}
		if edge.ReqType.IsBuild() {
			buildDeps = append(buildDeps, label)
		} else {
			installDeps = append(installDeps, label)
		}
	}

	call := &build.CallExpr{
		X: &build.Ident{Name: "wheel"},
		List: []build.Expr{
			attr("name", &build.StringExpr{Value: ruleName(node)}),
			attr("package", &build.StringExpr{Value: node.CanonicalizedName}),
			attr("version", &build.StringExpr{Value: node.Version.String()}),
		},
	}
	if len(buildDeps) > 0 {
		call.List = append(call.List, attr("build_deps", &build.ListExpr{List: buildDeps}))
	}
	if len(installDeps) > 0 {
		call.List = append(call.List, attr("install_deps", &build.ListExpr{List: installDeps}))
	}
	return call
}

func attr(name string, value build.Expr) *build.AssignExpr {
	return &build.AssignExpr{
		LHS: &build.Ident{Name: name},
		RHS: value,
		Op:  "=",
	}
}
