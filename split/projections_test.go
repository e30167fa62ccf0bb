package split

import (
	"testing"

	"github.com/emer/spinesplit/model"
)

// TestSplitListConnectivity exercises the worked scenario from the list
// connectivity rules: CAP=4, A{size=8} -> B{size=6}, list connections
// {(0,0),(3,5),(4,0),(7,5)}.
func TestSplitListConnectivity(t *testing.T) {
	const cap = 4
	m := model.NewModel(cap)
	m.Components["A"] = &model.ComponentInfo{Name: "A", Kind: model.CompPopulation, Size: 8}
	m.Components["B"] = &model.ComponentInfo{Name: "B", Kind: model.CompPopulation, Size: 6}
	m.Components["A_wu"] = &model.ComponentInfo{Name: "A_wu", Kind: model.CompWeightUpdate, OwnerPopulation: "A", PeerPopulation: "B", PeerMode: model.ModeProjDefinedAtSrc, Connectivity: model.KindConnectionList, SrcPopSize: 8, DstPopSize: 6, Size: 4}
	m.Components["A_ps"] = &model.ComponentInfo{Name: "A_ps", Kind: model.CompPostSynapse, OwnerPopulation: "A", PeerPopulation: "B", PeerMode: model.ModeProjDefinedAtSrc, Connectivity: model.KindConnectionList, SrcPopSize: 8, DstPopSize: 6, Size: 4}
	if err := m.Mode.Observe(model.ModeProjDefinedAtSrc, 1); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	neuron := model.NewNeuron("A", "Neuron.xml", 8)
	pop := model.NewPopulation("A", neuron)
	proj := model.NewProjection("B", 0)

	list := model.NewConnectionList(model.KeyedSrcToDst)
	for _, c := range [][2]int{{0, 0}, {3, 5}, {4, 0}, {7, 5}} {
		if _, err := list.Add(c[0], c[1], nil); err != nil {
			t.Fatalf("Add(%v): %v", c, err)
		}
	}
	wu := &model.WeightUpdate{Name: "A_wu"}
	ps := model.NewPostSynapse("A_ps", "PS.xml")
	syn := &model.Synapse{Name: "A_wu", Connection: &model.AbstractionConnection{Kind: model.KindConnectionList, List: list}, WeightUpdate: wu, PostSynapse: ps}
	proj.AddSynapse(syn)
	pop.AddProjection(proj)
	m.AddPopulation(pop)

	subs, err := SplitPopulation(pop, m, cap, false)
	if err != nil {
		t.Fatalf("SplitPopulation: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 sub-populations of A, got %d", len(subs))
	}
	if subs[0].Size() != 4 || subs[1].Size() != 4 {
		t.Fatalf("expected A sub sizes 4,4, got %d,%d", subs[0].Size(), subs[1].Size())
	}

	checkSub := func(subIdx int, peerSub int, wantSrc, wantDst int) {
		proj, ok := subs[subIdx].Projections[model.SubName("B", peerSub)]
		if !ok {
			t.Fatalf("A_sub%d: no projection to B_sub%d", subIdx, peerSub)
		}
		var syn *model.Synapse
		for _, s := range proj.Synapses {
			syn = s
		}
		if syn == nil {
			t.Fatalf("A_sub%d -> B_sub%d: no synapse", subIdx, peerSub)
		}
		if len(syn.Connection.List.Connections) != 1 {
			t.Fatalf("A_sub%d -> B_sub%d: expected 1 connection, got %d", subIdx, peerSub, len(syn.Connection.List.Connections))
		}
		inst := syn.Connection.List.Connections[0]
		if inst.SrcNeuron != wantSrc || inst.DstNeuron != wantDst {
			t.Errorf("A_sub%d -> B_sub%d: expected (%d,%d), got (%d,%d)", subIdx, peerSub, wantSrc, wantDst, inst.SrcNeuron, inst.DstNeuron)
		}
	}
	checkSub(0, 0, 0, 0)
	checkSub(0, 1, 3, 1)
	checkSub(1, 0, 0, 0)
	checkSub(1, 1, 3, 1)
}
