package export

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/oselabs/wheelwright/graph"
	"github.com/oselabs/wheelwright/overrides"
)

// MakefileOptions controls the generated build plan.
type MakefileOptions struct {
	// SdistServerURL is where build commands fetch source archives from.
	SdistServerURL string

	// WheelServerURL, when set, is passed to build commands so already
	// built wheels can be reused.
	WheelServerURL string

	// Settings optionally contributes per-package environment variables
	// to the build commands.
	Settings *overrides.Registry
}

// makeTarget is one rule in the generated Makefile. The dependency lists
// form the same DAG as the graph; shared subgraphs are referenced from
// every consumer but emitted once.
type makeTarget struct {
	name    string
	command string
	deps    []*makeTarget
}

// WriteMakefile derives a build plan from the graph: for every reachable
// node a build stage (its build-type children), a wheel stage carrying
// the actual build command, and an install stage (its install-type
// children). The build and install stages are omitted when empty; the
// wheel stage is always present.
func WriteMakefile(w io.Writer, g *graph.DependencyGraph, opts MakefileOptions) error {
	top := &makeTarget{name: "all"}
	for _, edge := range g.Root().Children {
		top.deps = append(top.deps, targetFromNode(g, g.Node(edge.Key), opts.Settings))
	}

	wheelServerArgs := ""
	if opts.WheelServerURL != "" {
		wheelServerArgs = "--wheel-server-url " + opts.WheelServerURL
	}

	_, err := fmt.Fprintf(w, "\n# Automatically generated by wheelwright.\n\nSDIST_SERVER_URL=%s\nWHEEL_SERVER_ARGS=%s\n",
		opts.SdistServerURL, wheelServerArgs)
	if err != nil {
		return err
	}

	return top.format(w, make(map[string]bool))
}

// targetFromNode synthesizes the three-stage target triple for one node,
// recursing depth-first over its children.
func targetFromNode(g *graph.DependencyGraph, node *graph.Node, settings *overrides.Registry) *makeTarget {
	targetName := fmt.Sprintf("%s__%s", node.CanonicalizedName, node.Version)

	build := &makeTarget{name: targetName + "__build"}
	wheel := &makeTarget{
		name:    targetName + "__wheel",
		command: buildCommand(node, settings),
	}
	install := &makeTarget{name: targetName + "__install"}

	for _, edge := range node.Children {
		child := targetFromNode(g, g.Node(edge.Key), settings)
		if edge.ReqType.IsBuild() {
			build.deps = append(build.deps, child)
		} else {
			install.deps = append(install.deps, child)
		}
	}

	target := &makeTarget{name: targetName}
	if len(build.deps) > 0 {
		target.deps = append(target.deps, build)
	}
	target.deps = append(target.deps, wheel)
	if len(install.deps) > 0 {
		target.deps = append(target.deps, install)
	}
	return target
}

// buildCommand names the command the build executor will run for one
// name/version pair. Per-package settings may prefix environment
// variables; this engine never runs the command itself.
func buildCommand(node *graph.Node, settings *overrides.Registry) string {
	prefix := ""
	if settings != nil {
		if pkg := settings.Lookup(node.CanonicalizedName); pkg != nil && len(pkg.Env) > 0 {
			keys := make([]string, 0, len(pkg.Env))
			for k := range pkg.Env {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				prefix += fmt.Sprintf("%s=%s ", k, pkg.Env[k])
			}
		}
	}
	return fmt.Sprintf("\t%swheelwright build-wheel $(WHEEL_SERVER_ARGS) %s %s $(SDIST_SERVER_URL)",
		prefix, node.CanonicalizedName, node.Version)
}

// format writes this rule and then its dependencies. A target already in
// seen is not re-emitted, but it is still referenced from every rule that
// depends on it - the output stays a valid rule tree even though the
// graph is not a tree.
func (t *makeTarget) format(w io.Writer, seen map[string]bool) error {
	if seen[t.name] {
		return nil
	}
	seen[t.name] = true

	// Unique dependency names, in the order they appear in the graph.
	var depNames []string
	for _, d := range t.deps {
		if !slices.Contains(depNames, d.name) {
			depNames = append(depNames, d.name)
		}
	}

	_, err := fmt.Fprintf(w, "\n#.PHONY: %s\n%s: %s\n%s\n", t.name, t.name, strings.Join(depNames, " "), t.command)
	if err != nil {
		return err
	}

	for _, d := range t.deps {
		if err := d.format(w, seen); err != nil {
			return err
		}
	}
	return nil
}
