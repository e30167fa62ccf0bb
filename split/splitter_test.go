package split

import (
	"testing"

	"github.com/emer/spinesplit/model"
)

// buildAllToAllModel constructs a minimal resolved Model with one
// self-projecting all-to-all population P{size=10}, split under CAP=4
// into 3 sub-pops of sizes 4,4,2.
func buildAllToAllModel(t *testing.T) (*model.Model, *model.Population) {
	t.Helper()
	m := model.NewModel(4)
	wuInfo := &model.ComponentInfo{Name: "P_wu", Kind: model.CompWeightUpdate, OwnerPopulation: "P", PeerPopulation: "P", PeerMode: model.ModeProjDefinedAtSrc, Connectivity: model.KindAllToAll, SrcPopSize: 10, DstPopSize: 10, Size: 100}
	psInfo := &model.ComponentInfo{Name: "P_ps", Kind: model.CompPostSynapse, OwnerPopulation: "P", PeerPopulation: "P", PeerMode: model.ModeProjDefinedAtSrc, Connectivity: model.KindAllToAll, SrcPopSize: 10, DstPopSize: 10, Size: 100}
	popInfo := &model.ComponentInfo{Name: "P", Kind: model.CompPopulation, Size: 10}
	m.Components["P_wu"] = wuInfo
	m.Components["P_ps"] = psInfo
	m.Components["P"] = popInfo
	if err := m.Mode.Observe(model.ModeProjDefinedAtSrc, 1); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	neuron := model.NewNeuron("P", "Neuron.xml", 10)
	pop := model.NewPopulation("P", neuron)
	proj := model.NewProjection("P", 0)
	wu := &model.WeightUpdate{Name: "P_wu"}
	ps := model.NewPostSynapse("P_ps", "PS.xml")
	syn := &model.Synapse{Name: "P_wu", Connection: &model.AbstractionConnection{Kind: model.KindAllToAll}, WeightUpdate: wu, PostSynapse: ps}
	proj.AddSynapse(syn)
	pop.AddProjection(proj)
	m.AddPopulation(pop)
	return m, pop
}

func TestSplitPopulationAllToAllSizesAndSynapseCount(t *testing.T) {
	m, pop := buildAllToAllModel(t)
	subs, err := SplitPopulation(pop, m, 4, false)
	if err != nil {
		t.Fatalf("SplitPopulation: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 sub-populations, got %d", len(subs))
	}
	wantSizes := []int{4, 4, 2}
	for i, s := range subs {
		if s.Size() != wantSizes[i] {
			t.Errorf("sub %d: expected size %d, got %d", i, wantSizes[i], s.Size())
		}
		if s.Name != model.SubName("P", i) {
			t.Errorf("sub %d: unexpected name %q", i, s.Name)
		}
		proj := s.Projections["P_sub0"]
		if i == 0 {
			// sub0 itself should have 3 outgoing sub-projections (to P_sub0..2)
			if len(s.ProjOrder) != 3 {
				t.Fatalf("sub0: expected 3 sub-projections, got %d", len(s.ProjOrder))
			}
		}
		_ = proj
	}
}

func TestSplitPopulationParallelMatchesSerial(t *testing.T) {
	m, pop := buildAllToAllModel(t)
	serial, err := SplitPopulation(pop, m, 4, false)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	m2, pop2 := buildAllToAllModel(t)
	parallel, err := SplitPopulation(pop2, m2, 4, true)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if len(serial) != len(parallel) {
		t.Fatalf("length mismatch: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i].Size() != parallel[i].Size() {
			t.Errorf("sub %d size mismatch: %d vs %d", i, serial[i].Size(), parallel[i].Size())
		}
	}
}
