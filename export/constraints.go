package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/oselabs/wheelwright/graph"
)

// WriteConstraints flattens the install-dependency closure into a
// name==version pinning file, one line per unique node, suitable for
// feeding to an installer. Names with multiple versions in use produce
// multiple lines; run ExplainDuplicates to understand those.
func WriteConstraints(w io.Writer, g *graph.DependencyGraph) error {
	var nodes []*graph.Node
	for node := range g.InstallDependencies() {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].CanonicalizedName != nodes[j].CanonicalizedName {
			return nodes[i].CanonicalizedName < nodes[j].CanonicalizedName
		}
		return nodes[i].Version.Less(nodes[j].Version)
	})

	for _, node := range nodes {
		if _, err := fmt.Fprintf(w, "%s==%s\n", node.CanonicalizedName, node.Version); err != nil {
			return err
		}
	}
	return nil
}
