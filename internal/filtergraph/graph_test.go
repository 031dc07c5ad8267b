package filtergraph_test

import (
	"testing"

	"mixdown/internal/filtergraph"
)

func TestGraphRender(t *testing.T) {
	var g filtergraph.Graph
	if !g.Empty() {
		t.Fatal("expected new graph to be empty")
	}

	g.Add("volume=0.5", "a0", "0:a")
	g.Add("acrossfade=d=2", "out", "a0", "a1")

	want := "[0:a]volume=0.5[a0];[a0][a1]acrossfade=d=2[out]"
	if got := g.Render(); got != want {
		t.Fatalf("unexpected render:\n got %q\nwant %q", got, want)
	}
	if g.Empty() {
		t.Fatal("expected graph with nodes to be non-empty")
	}
}

func TestGraphRenderEmpty(t *testing.T) {
	var g filtergraph.Graph
	if got := g.Render(); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
