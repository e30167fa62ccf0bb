package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/core/base/indent"

	"github.com/emer/spinesplit/model"
)

// xmlNamespaces are the three SpineML namespace declarations plus the XSI
// schemaLocation pair every output document's root carries.
const xmlNamespaces = `xmlns="http://www.shef.ac.uk/SpineMLNetworkLayer" ` +
	`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
	`xmlns:LL="http://www.shef.ac.uk/SpineMLLowLevelNetworkLayer" ` +
	`xsi:schemaLocation="http://www.shef.ac.uk/SpineMLLowLevelNetworkLayer SpineMLLowLevelNetworkLayer.xsd"`

// XMLWriter is the generic round-trip writer: it mirrors the input
// schema, adding the "LL:" prefix on the split-aware elements, and
// optionally pretty-prints with tab indentation via direct Write calls
// plus indent.TabBytes, rather than a templating library.
type XMLWriter struct {
	w io.Writer
	closer io.Closer
	format bool
	closed bool
}

// NewXMLWriter writes the document and root element opening tags
// immediately; format disables (when false) the -no_xml_formatting CLI
// flag's auto-indentation.
func NewXMLWriter(w io.Writer, format bool) *XMLWriter {
	xw := &XMLWriter{w: w, format: format}
	if c, ok := w.(io.Closer); ok {
		xw.closer = c
	}
	xw.raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	xw.raw(fmt.Sprintf("<SpineML %s>\n", xmlNamespaces))
	return xw
}

func (xw *XMLWriter) raw(s string) { io.WriteString(xw.w, s) }

func (xw *XMLWriter) indent(depth int) {
	if xw.format {
		xw.w.Write(indent.TabBytes(depth))
	}
}

func (xw *XMLWriter) nl() {
	if xw.format {
		xw.raw("\n")
	}
}

// WritePopulation emits one parent Population's already-split
// sub-populations as LL:Population elements, in the order given.
func (xw *XMLWriter) WritePopulation(parent *model.Population, subs []*model.Population) error {
	for _, sub := range subs {
		xw.writeSubPopulation(sub)
	}
	return nil
}

func (xw *XMLWriter) writeSubPopulation(pop *model.Population) {
	xw.indent(1)
	xw.raw("<LL:Population>")
	xw.nl()
	xw.writeNeuron(pop.Neuron)
	for _, peer := range pop.ProjOrder {
		xw.writeProjection(peer, pop.Projections[peer])
	}
	xw.indent(1)
	xw.raw("</LL:Population>")
	xw.nl()
}

func (xw *XMLWriter) writeNeuron(n *model.Neuron) {
	xw.indent(2)
	xw.raw(fmt.Sprintf("<LL:Neuron name=%s size=%s url=%s>", attr(n.Name), attr(strconv.Itoa(n.Size)), attr(n.DefinitionURL)))
	xw.nl()
	xw.writeProperties(3, n.Properties)
	for _, k := range n.InputOrder {
		xw.writeInput(3, n.Inputs[k])
	}
	xw.indent(2)
	xw.raw("</LL:Neuron>")
	xw.nl()
}

func (xw *XMLWriter) writeProjection(peerSubName string, proj *model.Projection) {
	// Output always names the peer via dst_population, regardless of
	// which attribute the source network used — both spellings are
	// accepted on read, and split sub-projections no longer carry the
	// parsed SplitterMode once built.
	xw.indent(2)
	xw.raw(fmt.Sprintf("<LL:Projection dst_population=%s>", attr(peerSubName)))
	xw.nl()
	for _, k := range proj.SynapseOrder {
		xw.writeSynapse(proj.Synapses[k])
	}
	xw.indent(2)
	xw.raw("</LL:Projection>")
	xw.nl()
}

func (xw *XMLWriter) writeSynapse(s *model.Synapse) {
	xw.indent(3)
	xw.raw("<LL:Synapse>")
	xw.nl()
	xw.writeConnectivity(4, s.Connection)
	xw.writeWeightUpdate(s.WeightUpdate)
	xw.writePostSynapse(s.PostSynapse)
	xw.indent(3)
	xw.raw("</LL:Synapse>")
	xw.nl()
}

func (xw *XMLWriter) writeWeightUpdate(wu *model.WeightUpdate) {
	xw.indent(4)
	xw.raw(fmt.Sprintf("<LL:WeightUpdate name=%s url=%s input_src_port=%s input_dst_port=%s>",
		attr(wu.Name), attr(wu.DefinitionURL), attr(wu.InputSrcPort), attr(wu.InputDstPort)))
	xw.nl()
	xw.writeProperties(5, wu.Properties)
	xw.indent(4)
	xw.raw("</LL:WeightUpdate>")
	xw.nl()
}

func (xw *XMLWriter) writePostSynapse(ps *model.PostSynapse) {
	xw.indent(4)
	xw.raw(fmt.Sprintf("<LL:PostSynapse name=%s url=%s input_src_port=%s input_dst_port=%s output_src_port=%s output_dst_port=%s>",
		attr(ps.Name), attr(ps.DefinitionURL), attr(ps.InputSrcPort), attr(ps.InputDstPort), attr(ps.OutputSrcPort), attr(ps.OutputDstPort)))
	xw.nl()
	xw.writeProperties(5, ps.Properties)
	for _, k := range ps.InputOrder {
		xw.writeInput(5, ps.Inputs[k])
	}
	xw.indent(4)
	xw.raw("</LL:PostSynapse>")
	xw.nl()
}

func (xw *XMLWriter) writeInput(depth int, in *model.Input) {
	xw.indent(depth)
	xw.raw(fmt.Sprintf("<LL:Input src=%s src_port=%s dst_port=%s>", attr(in.Src), attr(in.SrcPort), attr(in.DstPort)))
	xw.nl()
	xw.writeConnectivity(depth+1, in.Remapping)
	xw.indent(depth)
	xw.raw("</LL:Input>")
	xw.nl()
}

func (xw *XMLWriter) writeConnectivity(depth int, c *model.AbstractionConnection) {
	switch c.Kind {
	case model.KindAllToAll:
		xw.writeLeafWithDelayAttrs(depth, "AllToAllConnection", "", c.Delay)
	case model.KindOneToOne:
		xw.writeLeafWithDelayAttrs(depth, "OneToOneConnection", "", c.Delay)
	case model.KindFixedProbability:
		attrs := fmt.Sprintf(" probability=%s", attr(ftoa(c.Probability)))
		if c.HasSeed {
			attrs += fmt.Sprintf(" seed=%s", attr(strconv.FormatInt(c.Seed, 10)))
		}
		xw.writeLeafWithDelayAttrs(depth, "FixedProbabilityConnection", attrs, c.Delay)
	default: // ConnectionList
		xw.indent(depth)
		xw.raw("<ConnectionList>")
		xw.nl()
		for _, inst := range c.List.Connections {
			delayAttr := ""
			if inst.Delay != nil {
				delayAttr = fmt.Sprintf(" delay=%s", attr(ftoa(inst.Delay.Fixed)))
			}
			xw.indent(depth + 1)
			xw.raw(fmt.Sprintf("<Connection src_neuron=%s dst_neuron=%s%s/>", attr(strconv.Itoa(inst.SrcNeuron)), attr(strconv.Itoa(inst.DstNeuron)), delayAttr))
			xw.nl()
		}
		xw.writeDelay(depth+1, c.Delay)
		xw.indent(depth)
		xw.raw("</ConnectionList>")
		xw.nl()
	}
}

func (xw *XMLWriter) writeLeafWithDelayAttrs(depth int, elem, attrs string, delay *model.PropertyValue) {
	if delay == nil {
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<%s%s/>", elem, attrs))
		xw.nl()
		return
	}
	xw.indent(depth)
	xw.raw(fmt.Sprintf("<%s%s>", elem, attrs))
	xw.nl()
	xw.writeDelay(depth+1, delay)
	xw.indent(depth)
	xw.raw(fmt.Sprintf("</%s>", elem))
	xw.nl()
}

func (xw *XMLWriter) writeDelay(depth int, v *model.PropertyValue) {
	if v == nil {
		return
	}
	xw.indent(depth)
	xw.raw("<Delay>")
	xw.nl()
	xw.writeDistributionValue(depth+1, v)
	xw.indent(depth)
	xw.raw("</Delay>")
	xw.nl()
}

func (xw *XMLWriter) writeProperties(depth int, props []model.Property) {
	for _, p := range props {
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<Property name=%s>", attr(p.Name)))
		xw.nl()
		xw.writePropertyValue(depth+1, p.Value)
		xw.indent(depth)
		xw.raw("</Property>")
		xw.nl()
	}
}

func (xw *XMLWriter) writePropertyValue(depth int, v *model.PropertyValue) {
	if v.Kind == model.KindValueList {
		xw.indent(depth)
		xw.raw("<ValueList>")
		xw.nl()
		for _, idx := range sortedKeys(v.List) {
			xw.indent(depth + 1)
			xw.raw(fmt.Sprintf("<Value index=%s value=%s/>", attr(strconv.Itoa(idx)), attr(ftoa(v.List[idx]))))
			xw.nl()
		}
		xw.indent(depth)
		xw.raw("</ValueList>")
		xw.nl()
		return
	}
	xw.writeDistributionValue(depth, v)
}

func (xw *XMLWriter) writeDistributionValue(depth int, v *model.PropertyValue) {
	switch v.Kind {
	case model.KindFixed:
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<FixedValue value=%s/>", attr(ftoa(v.Fixed))))
		xw.nl()
	case model.KindUniform:
		seedAttr := ""
		if v.HasSeed {
			seedAttr = fmt.Sprintf(" seed=%s", attr(strconv.FormatInt(v.Seed, 10)))
		}
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<UniformDistribution%s minimum=%s maximum=%s/>", seedAttr, attr(ftoa(v.Min)), attr(ftoa(v.Max))))
		xw.nl()
	case model.KindNormal:
		seedAttr := ""
		if v.HasSeed {
			seedAttr = fmt.Sprintf(" seed=%s", attr(strconv.FormatInt(v.Seed, 10)))
		}
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<NormalDistribution%s mean=%s variance=%s/>", seedAttr, attr(ftoa(v.Mean)), attr(ftoa(v.Variance))))
		xw.nl()
	case model.KindPoisson:
		seedAttr := ""
		if v.HasSeed {
			seedAttr = fmt.Sprintf(" seed=%s", attr(strconv.FormatInt(v.Seed, 10)))
		}
		xw.indent(depth)
		xw.raw(fmt.Sprintf("<PoissonDistribution%s mean=%s/>", seedAttr, attr(ftoa(v.Mean))))
		xw.nl()
	}
}

// Close writes the root closing tag and releases the underlying writer if
// it is also an io.Closer.
func (xw *XMLWriter) Close() error {
	if xw.closed {
		return nil
	}
	xw.closed = true
	xw.raw("</SpineML>\n")
	if xw.closer != nil {
		return xw.closer.Close()
	}
	return nil
}

func attr(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
	return `"` + r.Replace(s) + `"`
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func sortedKeys(m map[int]float64) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
