package model

// Population is a named set of identical neurons. It owns
// one Neuron and a mapping from peer (destination, under ProjDefinedAtSrc;
// source, under ProjDefinedAtDst) population name to Projection.
type Population struct {
	Name string
	Neuron *Neuron

	Projections map[string]*Projection
	ProjOrder []string // file order

	GlobalIndex int // 1-based position among top-level populations
	GlobalSubStartIndex int // 1-based cumulative sub-population start index
	Splits int // ceil(size / CAP)
}

func NewPopulation(name string, n *Neuron) *Population {
	return &Population{Name: name, Neuron: n, Projections: map[string]*Projection{}}
}

func (p *Population) AddProjection(proj *Projection) {
	if _, exists := p.Projections[proj.ProjPopulation]; !exists {
		p.ProjOrder = append(p.ProjOrder, proj.ProjPopulation)
	}
	p.Projections[proj.ProjPopulation] = proj
}

func (p *Population) Size() int {
	if p.Neuron == nil {
		return 0
	}
	return p.Neuron.Size
}
