package model

// Neuron is the single neuron-population component owned by a Population.
type Neuron struct {
	Name string
	DefinitionURL string
	Size int
	Properties []Property
	Inputs map[string]*Input // keyed by Input.Key()
	InputOrder []string // file order, for deterministic emission
}

func NewNeuron(name, url string, size int) *Neuron {
	return &Neuron{Name: name, DefinitionURL: url, Size: size, Inputs: map[string]*Input{}}
}

func (n *Neuron) AddInput(in *Input) {
	k := in.Key()
	if _, exists := n.Inputs[k]; !exists {
		n.InputOrder = append(n.InputOrder, k)
	}
	n.Inputs[k] = in
}
