package graph

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// FindWhy explains why node is in the graph by walking its incoming
// edges. depth is the current indentation level and starts at 1.
//
// A parent that is the root means the node was asked for at the top
// level; that branch stops there. When reqTypes is non-empty it filters
// the first hop only: an excluded edge is skipped entirely and does not
// count as a found path, but recursion above a matching edge always runs
// unfiltered. This asymmetry is deliberate - it answers "how does this
// reach me as a build requirement" without hiding the ordinary chain
// above that point.
//
// maxDepth bounds recursion: -1 means unlimited, 0 reports only direct
// parents, and a positive N descends N levels.
func FindWhy(w io.Writer, g *DependencyGraph, node *Node, maxDepth, depth int, reqTypes []RequirementType) {
	allSkipped := true
	isToplevel := false
	for _, parent := range node.Parents {
		if parent.Key == RootKey {
			isToplevel = true
			fmt.Fprintf(w, " * %s is a toplevel dependency\n", node.Key)
			continue
		}
		if len(reqTypes) > 0 && !slices.Contains(reqTypes, parent.ReqType) {
			continue
		}
		allSkipped = false
		fmt.Fprintf(w, "%s * is an %s dependency of %s with req %s\n",
			strings.Repeat("  ", depth), parent.ReqType, parent.Key, parent.Req)
		if maxDepth != 0 && (maxDepth == -1 || depth <= maxDepth) {
			FindWhy(w, g, g.Node(parent.Key), maxDepth, depth+1, nil)
		}
	}

	if allSkipped && !isToplevel {
		fmt.Fprintf(w, " * couldn't find any dependencies to %s that matches %s\n",
			node.CanonicalizedName, formatReqTypes(reqTypes))
	}
}

func formatReqTypes(reqTypes []RequirementType) string {
	names := make([]string, len(reqTypes))
	for i, t := range reqTypes {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
