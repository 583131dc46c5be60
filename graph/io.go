package graph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oselabs/wheelwright/pypi"
)

// graphFilePermissions is the file permission mode for graph files.
const graphFilePermissions = 0o644

// nodeRecord is one line of the graph file: a node and its outgoing
// edges.
type nodeRecord struct {
	Key   string       `json:"key"`
	Edges []edgeRecord `json:"edges"`
}

// edgeRecord is the wire form of one outgoing edge.
type edgeRecord struct {
	ReqType    string `json:"req_type"`
	ReqName    string `json:"req_name"`
	ReqVersion string `json:"req_version"`
	Req        string `json:"req"`
}

// Serialize writes the graph as line-oriented text: one JSON record per
// node, nodes and edges in first-seen order. Identical graphs always
// produce identical bytes, so the files diff cleanly across runs.
func (g *DependencyGraph) Serialize(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	for node := range g.Nodes() {
		record := nodeRecord{Key: node.Key, Edges: make([]edgeRecord, 0, len(node.Children))}
		for _, edge := range node.Children {
			child := g.nodes[edge.Key]
			record.Edges = append(record.Edges, edgeRecord{
				ReqType:    edge.ReqType.String(),
				ReqName:    child.CanonicalizedName,
				ReqVersion: child.Version.String(),
				Req:        edge.Req.String(),
			})
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to serialize node %q: %w", node.Key, err)
		}
	}
	return nil
}

// WriteFile serializes the graph to path, replacing any existing file.
func (g *DependencyGraph) WriteFile(path string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, graphFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close graph file: %w", cerr)
		}
	}()
	return g.Serialize(f)
}

// FromReader reconstructs a graph from its serialized form. The result is
// structurally equivalent to the graph that was serialized: same node
// keys, same edges with the same requirement types and text.
func FromReader(r io.Reader) (*DependencyGraph, error) {
	g := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record nodeRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("graph line %d: %w", lineno, err)
		}
		if err := replayRecord(g, record); err != nil {
			return nil, fmt.Errorf("graph line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	return g, nil
}

// replayRecord replays one node record through AddDependency.
func replayRecord(g *DependencyGraph, record nodeRecord) error {
	parentName, parentVersion, err := ParseNodeKey(record.Key)
	if err != nil {
		return err
	}
	for _, e := range record.Edges {
		reqType, err := ParseRequirementType(e.ReqType)
		if err != nil {
			return err
		}
		reqVersion, err := pypi.ParseVersion(e.ReqVersion)
		if err != nil {
			return fmt.Errorf("edge to %q: %w", e.ReqName, err)
		}
		req, err := pypi.ParseRequirement(e.Req)
		if err != nil {
			return fmt.Errorf("edge to %q: %w", e.ReqName, err)
		}
		g.AddDependency(parentName, parentVersion, reqType, reqVersion, req)
	}
	return nil
}

// FromFile reads a serialized graph from disk.
func FromFile(path string) (*DependencyGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	g, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
