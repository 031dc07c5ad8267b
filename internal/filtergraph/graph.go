package filtergraph

import (
	"strconv"
	"strings"
)

// Node is one filter in the graph: named input pads, a filter expression,
// and the output pad it produces.
type Node struct {
	Inputs []string
	Filter string
	Output string
}

// Graph is an ordered collection of filter nodes. Order matters: ffmpeg
// resolves pad references in declaration order.
type Graph struct {
	nodes []Node
}

// Add appends a node producing output from the given inputs.
func (g *Graph) Add(filter, output string, inputs ...string) {
	g.nodes = append(g.nodes, Node{Inputs: inputs, Filter: filter, Output: output})
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool {
	return len(g.nodes) == 0
}

// Render serializes the graph to the engine's filter_complex syntax.
func (g *Graph) Render() string {
	var sb strings.Builder
	for i, node := range g.nodes {
		if i > 0 {
			sb.WriteByte(';')
		}
		for _, input := range node.Inputs {
			sb.WriteByte('[')
			sb.WriteString(input)
			sb.WriteByte(']')
		}
		sb.WriteString(node.Filter)
		if node.Output != "" {
			sb.WriteByte('[')
			sb.WriteString(node.Output)
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// formatFloat renders a float the way the engine expects filter parameters:
// no exponent, no trailing zeros.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
