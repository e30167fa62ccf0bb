package xmlio

import (
	"strings"
	"testing"
)

const sampleNetwork = `<SpineML>
<Population>
  <Neuron name="A" size="8" url="Neuron.xml">
    <Property name="threshold"><FixedValue value="1.0"/></Property>
  </Neuron>
  <Projection dst_population="B">
    <Synapse>
      <ConnectionList>
        <Connection src_neuron="0" dst_neuron="0"/>
        <Connection src_neuron="3" dst_neuron="5"/>
        <Connection src_neuron="4" dst_neuron="0"/>
        <Connection src_neuron="7" dst_neuron="5"/>
      </ConnectionList>
      <WeightUpdate name="A_wu" url="WU.xml" input_src_port="x" input_dst_port="y">
        <Property name="w"><FixedValue value="0.5"/></Property>
      </WeightUpdate>
      <PostSynapse name="A_ps" url="PS.xml" input_src_port="x" input_dst_port="y" output_src_port="o" output_dst_port="i">
        <Property name="g"><FixedValue value="0.1"/></Property>
      </PostSynapse>
    </Synapse>
  </Projection>
</Population>
<Population>
  <Neuron name="B" size="6" url="Neuron.xml">
  </Neuron>
</Population>
</SpineML>`

func TestInfoPassThenFullPassSizesMatch(t *testing.T) {
	ip := &InfoPass{Cap: 4, Silent: true}
	m, err := ip.Run(strings.NewReader(sampleNetwork))
	if err != nil {
		t.Fatalf("InfoPass: %v", err)
	}
	if m.Components["A"].Size != 8 || m.Components["B"].Size != 6 {
		t.Fatalf("unexpected population sizes: %+v %+v", m.Components["A"], m.Components["B"])
	}
	if m.Components["A_wu"].Size != 4 {
		t.Fatalf("expected weight-update size 4 (list count), got %d", m.Components["A_wu"].Size)
	}

	fp := &FullPass{Cap: 4, Silent: true}
	if err := fp.Run(strings.NewReader(sampleNetwork), m); err != nil {
		t.Fatalf("FullPass: %v", err)
	}
	if len(m.Populations) != 2 {
		t.Fatalf("expected 2 populations, got %d", len(m.Populations))
	}
	popA := m.PopulationByName("A")
	proj := popA.Projections["B"]
	syn := proj.Synapses["A_wu"]
	if syn.Connection.Kind.String() != "ConnectionList" {
		t.Fatalf("expected ConnectionList connectivity, got %v", syn.Connection.Kind)
	}
	if len(syn.Connection.List.Connections) != 4 {
		t.Fatalf("expected 4 connection instances, got %d", len(syn.Connection.List.Connections))
	}
	if inst, ok := syn.Connection.List.Lookup(3, 5); !ok || inst.DstNeuron != 5 {
		t.Fatalf("expected lookup(3,5) to find an instance, got %+v ok=%v", inst, ok)
	}
}
