package writer

import (
	"io"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/emer/spinesplit/model"
)

// dotNode names a graph.Node after its sub-population name, so the DOT
// encoder can label it directly instead of emitting bare integer IDs.
type dotNode struct {
	id int64
	name string
}

func (n dotNode) ID() int64 { return n.id }
func (n dotNode) DOTID() string { return n.name }

// DOTWriter is the best-effort informational graph writer: a deduplicated undirected
// graph of sub-population names, with an edge per sub-projection. It never
// fails the run — graph construction has no fatal conditions of its own.
type DOTWriter struct {
	g *simple.UndirectedGraph
	nodes map[string]dotNode
	nextID int64
	w io.Writer
	closer io.Closer
}

func NewDOTWriter(w io.Writer) *DOTWriter {
	dw := &DOTWriter{g: simple.NewUndirectedGraph(), nodes: map[string]dotNode{}, w: w}
	if c, ok := w.(io.Closer); ok {
		dw.closer = c
	}
	return dw
}

func (dw *DOTWriter) node(name string) dotNode {
	if n, ok := dw.nodes[name]; ok {
		return n
	}
	n := dotNode{id: dw.nextID, name: name}
	dw.nextID++
	dw.nodes[name] = n
	dw.g.AddNode(n)
	return n
}

// WritePopulation adds every sub-population as a node, and an edge for
// every sub-projection it owns. SetEdge is naturally idempotent on simple graphs,
// so re-adding the same pair from both directions is harmless.
func (dw *DOTWriter) WritePopulation(parent *model.Population, subs []*model.Population) error {
	for _, sub := range subs {
		a := dw.node(sub.Name)
		for _, peerSubName := range sub.ProjOrder {
			b := dw.node(peerSubName)
			if a.ID() == b.ID() {
				continue
			}
			dw.g.SetEdge(simple.Edge{F: a, T: b})
		}
	}
	return nil
}

func (dw *DOTWriter) Close() error {
	data, err := dot.Marshal(graph.Graph(dw.g), "spinesplit", "", " ")
	if err != nil {
		return err
	}
	if _, err := dw.w.Write(data); err != nil {
		return err
	}
	if dw.closer != nil {
		return dw.closer.Close()
	}
	return nil
}
