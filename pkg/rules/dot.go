package rules

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the constraint graph.
//
// Each friend group becomes a cluster of guest nodes joined by solid edges;
// each apart rule becomes a dashed red edge. Guests that appear only in
// apart rules are drawn outside any cluster. Output is deterministic.
func (r *Rules) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("graph Rules {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	clustered := make(map[string]bool)
	for i, group := range r.Groups() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=\"group %d\";\n    style=dashed;\n", i+1)
		for _, g := range group {
			if !clustered[g] {
				fmt.Fprintf(&buf, "    %q;\n", g)
				clustered[g] = true
			}
		}
		for j := 1; j < len(group); j++ {
			fmt.Fprintf(&buf, "    %q -- %q;\n", group[j-1], group[j])
		}
		buf.WriteString("  }\n")
	}

	for _, pair := range r.EnemyPairs() {
		fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=\"#c0392b\"];\n", pair[0], pair[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the constraint graph as an SVG document using Graphviz.
func (r *Rules) RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(r.ToDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
