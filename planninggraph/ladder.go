package planninggraph

import (
	"context"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"go.viam.com/sparseplan/referenceframe"
)

// shortestLadderPath returns the cost and the chosen solution index on every rung of the cheapest
// path visiting one solution per rung. Edge cost is the joint-space distance between solutions.
func shortestLadderPath(ctx context.Context, rungs [][][]referenceframe.Input) (float64, []int, error) {
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))

	// Vertex 0 is a virtual source before the first rung; the sink follows the last rung.
	source := simple.Node(0)
	g.AddNode(source)
	type vertex struct{ rung, solution int }
	vertices := map[int64]vertex{}
	ids := make([][]int64, len(rungs))
	next := int64(1)
	for r, rung := range rungs {
		ids[r] = make([]int64, len(rung))
		for s := range rung {
			ids[r][s] = next
			vertices[next] = vertex{r, s}
			g.AddNode(simple.Node(next))
			next++
		}
	}
	sink := simple.Node(next)
	g.AddNode(sink)

	for r := range rungs {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		for s, id := range ids[r] {
			if r == 0 {
				g.SetWeightedEdge(g.NewWeightedEdge(source, simple.Node(id), 0))
			}
			if r == len(rungs)-1 {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(id), sink, 0))
				continue
			}
			for t, nextID := range ids[r+1] {
				cost := referenceframe.InputsL2Distance(rungs[r][s], rungs[r+1][t])
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(id), simple.Node(nextID), cost))
			}
		}
	}

	shortest := path.DijkstraFrom(source, g)
	nodes, cost := shortest.To(sink.ID())
	if len(nodes) == 0 {
		return 0, nil, NewNoPathError()
	}

	picks := make([]int, len(rungs))
	for _, n := range trimEnds(nodes) {
		v := vertices[n.ID()]
		picks[v.rung] = v.solution
	}
	return cost, picks, nil
}

// trimEnds drops the virtual source and sink.
func trimEnds(nodes []graph.Node) []graph.Node {
	if len(nodes) < 2 {
		return nil
	}
	return nodes[1 : len(nodes)-1]
}
