package model

import "sync/atomic"

// WeightUpdate is the per-connection component of a Synapse. By
// invariant, weight-update components may never have inputs.
type WeightUpdate struct {
	Name string
	DefinitionURL string
	InputSrcPort string
	InputDstPort string
	Properties []Property
}

// PostSynapse is the per-target component of a Synapse.
type PostSynapse struct {
	Name string
	DefinitionURL string
	InputSrcPort string
	InputDstPort string
	OutputSrcPort string
	OutputDstPort string
	Properties []Property
	Inputs map[string]*Input
	InputOrder []string
}

func NewPostSynapse(name, url string) *PostSynapse {
	return &PostSynapse{Name: name, DefinitionURL: url, Inputs: map[string]*Input{}}
}

func (p *PostSynapse) AddInput(in *Input) {
	k := in.Key()
	if _, exists := p.Inputs[k]; !exists {
		p.InputOrder = append(p.InputOrder, k)
	}
	p.Inputs[k] = in
}

// Synapse is a triple of connectivity, weight-update, and post-synapse.
// SubSynMax is maintained on the unsplit Synapse only, by atomic
// max-update, recording the largest number of sub-synapses any one
// sub-population's split produced from it.
type Synapse struct {
	Name string
	Connection *AbstractionConnection
	WeightUpdate *WeightUpdate
	PostSynapse *PostSynapse

	SubSynMax atomic.Int64
}

func (s *Synapse) BumpSubSynMax(n int) {
	for {
		cur := s.SubSynMax.Load()
		if int64(n) <= cur {
			return
		}
		if s.SubSynMax.CompareAndSwap(cur, int64(n)) {
			return
		}
	}
}

// Projection is a directed bundle of synapses between the owning Population
// and a peer, identified by ProjPopulation. Index is this
// projection's position among its parent Population's projections, in
// file order.
type Projection struct {
	ProjPopulation string
	Index int
	Synapses map[string]*Synapse
	SynapseOrder []string
}

func NewProjection(peer string, index int) *Projection {
	return &Projection{ProjPopulation: peer, Index: index, Synapses: map[string]*Synapse{}}
}

func (p *Projection) AddSynapse(s *Synapse) {
	if _, exists := p.Synapses[s.Name]; !exists {
		p.SynapseOrder = append(p.SynapseOrder, s.Name)
	}
	p.Synapses[s.Name] = s
}
