package writer

import (
	"fmt"
	"io"
	"sort"

	"github.com/emer/spinesplit/model"
)

// DAMSONWriter emits the DAMSON-alias tabular format. It only
// accepts networks parsed under ProjDefinedAtDst — any other mode is a
// fatal error raised before a single byte is written: a src-defined
// network in alias mode fails before any output bytes are emitted.
type DAMSONWriter struct {
	w io.Writer
	closer io.Closer
}

// NewDAMSONWriter validates mode and constructs the writer. Callers must
// check mode before opening the output file at all, so that a fatal error
// here never leaves a truncated file behind.
func NewDAMSONWriter(w io.Writer, mode model.SplitterMode) (*DAMSONWriter, error) {
	if mode != model.ModeProjDefinedAtDst {
		return nil, model.Fatalf(0, model.ErrMode, "DAMSON alias writer requires a dst-defined network (ProjDefinedAtDst)")
	}
	dw := &DAMSONWriter{w: w}
	if c, ok := w.(io.Closer); ok {
		dw.closer = c
	}
	return dw, nil
}

func (dw *DAMSONWriter) printf(format string, args ...any) {
	fmt.Fprintf(dw.w, format, args...)
}

// WritePopulation emits one tabular block per sub-population:
// active source ports, flattened neuron property arrays, the routing
// entries derived from each input's sub-index bookkeeping, and, for each
// synapse in the sub-population's own projections, its property arrays and
// its (src,dst) connection pairs (or connectivity kind). Per-connection
// delays are not emitted.
func (dw *DAMSONWriter) WritePopulation(parent *model.Population, subs []*model.Population) error {
	for _, sub := range subs {
		dw.writeSubBlock(sub)
	}
	return nil
}

func (dw *DAMSONWriter) writeSubBlock(sub *model.Population) {
	name := Sanitize(sub.Name)
	dw.printf("# population %s size=%d\n", name, sub.Size())

	dw.printf("active_source_ports %s:", name)
	for _, k := range sub.Neuron.InputOrder {
		in := sub.Neuron.Inputs[k]
		dw.printf(" %s.%s", Sanitize(in.Src), Sanitize(in.SrcPort))
	}
	dw.printf("\n")

	dw.writePropertyArrays(name, "neuron", sub.Neuron.Properties, sub.Size())

	dw.printf("routing %s:\n", name)
	for _, k := range sub.Neuron.InputOrder {
		in := sub.Neuron.Inputs[k]
		dw.printf(" (%s, %s, %d) -> %s\n", Sanitize(in.Src), Sanitize(in.SrcPort), in.SubInpIndex, name)
	}

	for _, peer := range sub.ProjOrder {
		proj := sub.Projections[peer]
		for _, sk := range proj.SynapseOrder {
			syn := proj.Synapses[sk]
			dw.writeSynapseBlock(name, peer, syn)
		}
	}
	dw.printf("\n")
}

func (dw *DAMSONWriter) writeSynapseBlock(srcName, dstSubName string, syn *model.Synapse) {
	wuName := Sanitize(syn.Name)
	dw.printf("synapse %s -> %s (%s):\n", srcName, dstSubName, wuName)
	dw.writePropertyArrays(wuName, "weight_update", syn.WeightUpdate.Properties, 0)
	dw.writePropertyArrays(Sanitize(syn.PostSynapse.Name), "post_synapse", syn.PostSynapse.Properties, 0)

	switch syn.Connection.Kind {
	case model.KindConnectionList:
		dw.printf(" connections:")
		for _, inst := range syn.Connection.List.Connections {
			dw.printf(" (%d,%d)", inst.SrcNeuron, inst.DstNeuron)
		}
		dw.printf("\n")
	default:
		dw.printf(" connectivity: %s\n", syn.Connection.Kind)
	}
	dw.printf(" sub_syn_max=%d\n", syn.SubSynMax.Load())
}

// writePropertyArrays emits each ValueList property as a flattened,
// dense, comma-separated array; size, when > 0, pads unset indices with 0.
// Scalars and distributions are printed as a single named constant — they
// are never per-instance arrays.
func (dw *DAMSONWriter) writePropertyArrays(owner, kind string, props []model.Property, size int) {
	for _, p := range props {
		pname := Sanitize(p.Name)
		if p.Value.Kind != model.KindValueList {
			dw.printf(" %s.%s.%s = %v (%s)\n", owner, kind, pname, scalarValue(p.Value), p.Value.Kind)
			continue
		}
		n := size
		if n == 0 {
			n = maxIndex(p.Value.List) + 1
		}
		vals := make([]float64, n)
		for idx, v := range p.Value.List {
			if idx < n {
				vals[idx] = v
			}
		}
		dw.printf(" %s.%s.%s = %v\n", owner, kind, pname, vals)
	}
}

func scalarValue(v *model.PropertyValue) float64 {
	switch v.Kind {
	case model.KindFixed:
		return v.Fixed
	case model.KindUniform:
		return (v.Min + v.Max) / 2
	case model.KindNormal, model.KindPoisson:
		return v.Mean
	default:
		return 0
	}
}

func maxIndex(m map[int]float64) int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if len(keys) == 0 {
		return -1
	}
	return keys[len(keys)-1]
}

func (dw *DAMSONWriter) Close() error {
	if dw.closer != nil {
		return dw.closer.Close()
	}
	return nil
}
