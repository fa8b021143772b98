// Package accessgraph draws the order in which Lyra2 touches matrix rows as a
// Graphviz digraph.
package accessgraph

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/mit-dci/litpow/lyra2"
	"github.com/pkg/errors"
)

const graphName = "lyra2"

// outNode receives the wrap-up edge.
const outNode = "out"

var phaseColor = map[lyra2.Phase]string{
	lyra2.PhaseSetup:     "blue",
	lyra2.PhaseWandering: "red",
	lyra2.PhaseWrapUp:    "darkgreen",
}

func rowNode(r int) string {
	return "r" + strconv.Itoa(r)
}

// Build returns a graph with one node per row and one edge per input of
// every recorded row operation. Edges from the previous row are solid,
// edges from the revisited row dashed. Labels number the operations.
func Build(visits []lyra2.Visit, rows int) (*gographviz.Graph, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName(graphName); err != nil {
		return nil, err
	}
	if err := graph.SetDir(true); err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		err := graph.AddNode(graphName, rowNode(r), map[string]string{
			"label": strconv.Quote(strconv.Itoa(r)),
		})
		if err != nil {
			return nil, err
		}
	}

	for i, v := range visits {
		if v.Row < 0 || v.Row >= rows || v.Prev >= rows || v.RowA >= rows {
			return nil, errors.Errorf("visit %d touches row outside 0..%d", i, rows-1)
		}
		attrs := map[string]string{
			"color": phaseColor[v.Phase],
			"label": strconv.Quote(opLabel(i, v)),
		}

		if v.Phase == lyra2.PhaseWrapUp {
			if !graph.IsNode(outNode) {
				err := graph.AddNode(graphName, outNode, map[string]string{"shape": "doublecircle"})
				if err != nil {
					return nil, err
				}
			}
			if err := graph.AddEdge(rowNode(v.Row), outNode, true, attrs); err != nil {
				return nil, err
			}
			continue
		}

		if v.Prev >= 0 {
			if err := graph.AddEdge(rowNode(v.Prev), rowNode(v.Row), true, attrs); err != nil {
				return nil, err
			}
		}
		if v.RowA >= 0 {
			dashed := map[string]string{"style": "dashed"}
			for k, val := range attrs {
				dashed[k] = val
			}
			if err := graph.AddEdge(rowNode(v.RowA), rowNode(v.Row), true, dashed); err != nil {
				return nil, err
			}
		}
	}
	return graph, nil
}

func opLabel(i int, v lyra2.Visit) string {
	if v.Phase == lyra2.PhaseWandering {
		return fmt.Sprintf("%d (t%d)", i, v.Tau)
	}
	return strconv.Itoa(i)
}

// Render runs one Lyra2 evaluation with a recorder attached and returns the
// DOT source of its access graph.
func Render(p lyra2.Params, pwd, salt []byte) (string, error) {
	rec := new(lyra2.Recorder)
	h := lyra2.Hasher{Params: p, Tracer: rec}
	if _, err := h.Sum(32, pwd, salt); err != nil {
		return "", err
	}
	graph, err := Build(rec.Visits, int(p.Rows))
	if err != nil {
		return "", err
	}
	return graph.String(), nil
}

// Counts is how many times each row was written or revisited.
func Counts(visits []lyra2.Visit, rows int) []int {
	n := make([]int, rows)
	for _, v := range visits {
		if v.Row >= 0 && v.Row < rows {
			n[v.Row]++
		}
		if v.RowA >= 0 && v.RowA < rows && v.RowA != v.Row {
			n[v.RowA]++
		}
	}
	return n
}
