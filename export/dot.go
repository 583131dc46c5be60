package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/oselabs/wheelwright/graph"
)

// WriteDot writes the whole graph in Graphviz DOT format. Nodes in the
// install-dependency closure are filled red; nodes that exist only to
// satisfy build-time edges are grey. Non-install edges are dotted, and
// every edge carries the literal requirement text as a tooltip.
func WriteDot(w io.Writer, g *graph.DependencyGraph) error {
	installClosure := make(map[string]bool)
	for node := range g.InstallDependencies() {
		installClosure[node.Key] = true
	}

	if _, err := fmt.Fprintf(w, "digraph {\n\n"); err != nil {
		return err
	}

	// Short synthetic identifiers, assigned on first visit and stable
	// within one export.
	ids := make(map[string]string)
	nodeID := func(key string) string {
		if id, ok := ids[key]; !ok {
			id = fmt.Sprintf("node%d", len(ids)+1)
			ids[key] = id
		}
		return ids[key]
	}

	for node := range g.Nodes() {
		label := node.Key
		if node.IsRoot() {
			label = "*"
		}
		properties := fmt.Sprintf("label=%q", label)
		if installClosure[node.Key] {
			properties += " style=filled fillcolor=red color=red fontcolor=white"
		} else {
			properties += " style=filled fillcolor=lightgrey color=lightgrey"
		}
		if _, err := fmt.Fprintf(w, "  %s [%s]\n", nodeID(node.Key), properties); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	for node := range g.Nodes() {
		for _, edge := range node.Children {
			// Quote characters would terminate the attribute early.
			tooltip := strings.ReplaceAll(edge.Req.String(), `"`, "'")
			properties := fmt.Sprintf("labeltooltip=%q", tooltip)
			if !edge.ReqType.IsInstall() {
				properties += " style=dotted"
			}
			if _, err := fmt.Fprintf(w, "  %s -> %s [%s]\n", nodeID(node.Key), nodeID(edge.Key), properties); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "}\n")
	return err
}
