package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oselabs/wheelwright/pypi"
)

// ExplainDuplicates reports every distribution that appears in the
// install closure at more than one version, which consumers constrain
// each version and how, and whether any single version would satisfy
// everyone.
//
// For each version the incoming install edges are grouped by requirement
// text, and each group's specifier is applied as a filter over the full
// set of versions in use - not just the version under inspection - to
// find which candidates that group could accept. A version is "usable by
// all consumers" when its accumulated acceptors equal the total consumer
// count. That total is the sum of the per-group parent counts: a consumer
// declaring the dependency twice under different specifiers counts twice,
// because two independent constraints must both be satisfied.
func ExplainDuplicates(w io.Writer, g *DependencyGraph) {
	conflicts := g.InstallDependencyVersions()

	names := make([]string, 0, len(conflicts))
	for name := range conflicts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nodes := conflicts[name]
		if len(nodes) == 1 {
			continue
		}

		versions := make([]pypi.Version, len(nodes))
		for i, node := range nodes {
			versions[i] = node.Version
		}

		sorted := make([]*Node, len(nodes))
		copy(sorted, nodes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Version.Less(sorted[j].Version)
		})

		// Acceptors per candidate version, accumulated across every
		// requirement group. Deliberately a list, not a set: the same
		// parent appearing through two groups counts twice, mirroring
		// userCounter.
		usableVersions := make(map[string][]string)
		var usableOrder []string
		userCounter := 0

		fmt.Fprintf(w, "\n%s\n", name)
		for _, node := range sorted {
			fmt.Fprintf(w, "  %s\n", node.Version)

			for _, group := range groupParentsByReq(node.IncomingInstallEdges()) {
				userCounter += len(group.parents)

				matched := group.req.Specifier().Filter(versions)
				matchedText := make([]string, len(matched))
				for i, v := range matched {
					matchedText[i] = v.String()
				}
				for _, mv := range matchedText {
					if _, ok := usableVersions[mv]; !ok {
						usableOrder = append(usableOrder, mv)
					}
					usableVersions[mv] = append(usableVersions[mv], group.parents...)
				}

				fmt.Fprintf(w, "    %s matches [%s]\n", group.req, strings.Join(matchedText, ", "))
				for _, parent := range group.parents {
					fmt.Fprintf(w, "      %s\n", parent)
				}
			}
		}

		found := false
		for _, v := range usableOrder {
			if len(usableVersions[v]) == userCounter {
				fmt.Fprintf(w, "  * %s==%s usable by all consumers\n", name, v)
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(w, "  * No single version of %s meets all requirements\n", name)
		}
	}
}

// reqGroup is the set of distinct parents constraining a node through one
// requirement text.
type reqGroup struct {
	req     pypi.Requirement
	parents []string
}

// groupParentsByReq groups incoming edges by their requirement text,
// deduplicating parents within a group. Groups keep first-seen order and
// parents are sorted for stable output.
func groupParentsByReq(edges []Edge) []reqGroup {
	index := make(map[string]int)
	var groups []reqGroup
	seen := make(map[string]map[string]bool)

	for _, edge := range edges {
		reqText := edge.Req.String()
		i, ok := index[reqText]
		if !ok {
			i = len(groups)
			index[reqText] = i
			groups = append(groups, reqGroup{req: edge.Req})
			seen[reqText] = make(map[string]bool)
		}
		if !seen[reqText][edge.Key] {
			seen[reqText][edge.Key] = true
			groups[i].parents = append(groups[i].parents, edge.Key)
		}
	}

	for i := range groups {
		sort.Strings(groups[i].parents)
	}
	return groups
}
