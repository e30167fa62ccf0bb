package xmlio

// These structs mirror the SpineML Low-Level network XML schema. They are
// decoded with encoding/xml's struct-tag unmarshalling rather than a
// hand-rolled token walk: once a <Population> (or <Experiment>) element is
// reached, its entire subtree is small and self-contained, so
// DecodeElement into a plain Go struct is both less code and less error
// prone than re-deriving a recursive-descent parser the stdlib already
// provides. The outer token loop (infopass.go, fullpass.go) still walks
// one token at a time, which is what preserves line-number fatal errors
// and the population-at-a-time streaming FullPass wants.

type xmlPopulation struct {
	Neuron xmlNeuron `xml:"Neuron"`
	Projections []xmlProjection `xml:"Projection"`
	Groups []xmlRaw `xml:"ComponenentInstance"` // sic — the schema's own misspelling
}

type xmlRaw struct {
	Inner []byte `xml:",innerxml"`
}

type xmlNeuron struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr"`
	URL string `xml:"url,attr"`
	Properties []xmlProperty `xml:"Property"`
	Inputs []xmlInput `xml:"Input"`
}

type xmlProjection struct {
	DstPopulation string `xml:"dst_population,attr"`
	SrcPopulation string `xml:"src_population,attr"`
	Synapses []xmlSynapse `xml:"Synapse"`
}

type xmlSynapse struct {
	AllToAll *xmlAllToAll `xml:"AllToAllConnection"`
	OneToOne *xmlOneToOne `xml:"OneToOneConnection"`
	FixedProbability *xmlFixedProbability `xml:"FixedProbabilityConnection"`
	ConnectionList *xmlConnectionList `xml:"ConnectionList"`
	WeightUpdate xmlWeightUpdate `xml:"WeightUpdate"`
	PostSynapse xmlPostSynapse `xml:"PostSynapse"`
}

type xmlWeightUpdate struct {
	Name string `xml:"name,attr"`
	URL string `xml:"url,attr"`
	InputSrcPort string `xml:"input_src_port,attr"`
	InputDstPort string `xml:"input_dst_port,attr"`
	Properties []xmlProperty `xml:"Property"`
	Inputs []xmlInput `xml:"Input"` // presence is a fatal semantic error
}

type xmlPostSynapse struct {
	Name string `xml:"name,attr"`
	URL string `xml:"url,attr"`
	InputSrcPort string `xml:"input_src_port,attr"`
	InputDstPort string `xml:"input_dst_port,attr"`
	OutputSrcPort string `xml:"output_src_port,attr"`
	OutputDstPort string `xml:"output_dst_port,attr"`
	Properties []xmlProperty `xml:"Property"`
	Inputs []xmlInput `xml:"Input"`
}

type xmlInput struct {
	Src string `xml:"src,attr"`
	SrcPort string `xml:"src_port,attr"`
	DstPort string `xml:"dst_port,attr"`
	AllToAll *xmlAllToAll `xml:"AllToAllConnection"`
	OneToOne *xmlOneToOne `xml:"OneToOneConnection"`
	FixedProbability *xmlFixedProbability `xml:"FixedProbabilityConnection"`
	ConnectionList *xmlConnectionList `xml:"ConnectionList"`
}

type xmlAllToAll struct {
	Delay *xmlDelay `xml:"Delay"`
}

type xmlOneToOne struct {
	Delay *xmlDelay `xml:"Delay"`
}

type xmlFixedProbability struct {
	Probability string `xml:"probability,attr"`
	Seed *string `xml:"seed,attr"`
	Delay *xmlDelay `xml:"Delay"`
}

type xmlConnectionList struct {
	Connections []xmlConnection `xml:"Connection"`
	BinaryFile *xmlBinaryFile `xml:"BinaryFile"`
	Delay *xmlDelay `xml:"Delay"`
}

type xmlConnection struct {
	SrcNeuron string `xml:"src_neuron,attr"`
	DstNeuron string `xml:"dst_neuron,attr"`
	Delay *string `xml:"delay,attr"`
}

type xmlBinaryFile struct {
	FileName string `xml:"file_name,attr"`
	NumConnections string `xml:"num_connections,attr"`
	ExplicitDelayFlag string `xml:"explicit_delay_flag,attr"`
}

type xmlDelay struct {
	FixedValue *xmlFixedValue `xml:"FixedValue"`
	UniformDistribution *xmlUniformDistribution `xml:"UniformDistribution"`
	NormalDistribution *xmlNormalDistribution `xml:"NormalDistribution"`
	PoissonDistribution *xmlPoissonDistribution `xml:"PoissonDistribution"`
}

type xmlProperty struct {
	Name string `xml:"name,attr"`
	FixedValue *xmlFixedValue `xml:"FixedValue"`
	ValueList *xmlValueList `xml:"ValueList"`
	UniformDistribution *xmlUniformDistribution `xml:"UniformDistribution"`
	NormalDistribution *xmlNormalDistribution `xml:"NormalDistribution"`
	PoissonDistribution *xmlPoissonDistribution `xml:"PoissonDistribution"`
}

type xmlFixedValue struct {
	Value string `xml:"value,attr"`
}

type xmlValueList struct {
	Values []xmlValueListEntry `xml:"Value"`
}

type xmlValueListEntry struct {
	Index string `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type xmlUniformDistribution struct {
	Seed *string `xml:"seed,attr"`
	Minimum string `xml:"minimum,attr"`
	Maximum string `xml:"maximum,attr"`
}

type xmlNormalDistribution struct {
	Seed *string `xml:"seed,attr"`
	Mean string `xml:"mean,attr"`
	Variance string `xml:"variance,attr"`
}

type xmlPoissonDistribution struct {
	Seed *string `xml:"seed,attr"`
	Mean string `xml:"mean,attr"`
}

// xmlExperiment mirrors the top-level <Experiment> document schema.
type xmlExperiment struct {
	Model xmlModelRef `xml:"Model"`
	Simulation xmlSimulation `xml:"Simulation"`
	LogOutputs []xmlLogOutput `xml:"LogOutput"`
}

type xmlModelRef struct {
	NetworkLayerURL string `xml:"network_layer_url,attr"`
}

type xmlSimulation struct {
	Duration string `xml:"duration,attr"`
	Euler *xmlEulerIntegration `xml:"EulerIntegration"`
}

type xmlEulerIntegration struct {
	Dt string `xml:"dt,attr"`
}

type xmlLogOutput struct {
	Name string `xml:"name,attr"`
	Target string `xml:"target,attr"`
	Port string `xml:"port,attr"`
	StartTime *string `xml:"start_time,attr"`
	EndTime *string `xml:"end_time,attr"`
	Indices *string `xml:"indices,attr"`
}

