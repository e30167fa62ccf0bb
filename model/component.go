package model

// ComponentKind tags a ComponentInfo sizing-stage record.
type ComponentKind int

const (
	CompPopulation ComponentKind = iota
	CompWeightUpdate
	CompPostSynapse
)

// ComponentInfo is the first-pass sizing record for every uniquely-named
// top-level component in the model. Weight-update and post-synapse sizes
// start unresolved (Resolved == false) and are filled in by
// CalculateDimensions once every Population has been seen.
type ComponentInfo struct {
	Name string
	Kind ComponentKind

	// Population
	Size int

	// WeightUpdate / PostSynapse
	ProjPopulation string // the projection's peer population name (kept for diagnostics)
	OwnerPopulation string // the population whose Projection/Synapse this component belongs to
	PeerPopulation string // the projection's declared peer (dst_population or src_population)
	PeerMode SplitterMode // ModeProjDefinedAtSrc or ModeProjDefinedAtDst, as declared
	SrcPopSize int
	DstPopSize int
	Connectivity ConnectionKind
	ListCount int // number of inline/binary connections, for ConnectionList sizing
	Resolved bool
}

// CalculateDimensions resolves Size for a WeightUpdate or PostSynapse
// ComponentInfo once SrcPopSize/DstPopSize/Connectivity/ListCount are known.
func (c *ComponentInfo) CalculateDimensions() error {
	if c.Kind == CompPopulation {
		c.Resolved = true
		return nil
	}
	switch c.Connectivity {
	case KindAllToAll, KindFixedProbability:
		c.Size = c.SrcPopSize * c.DstPopSize
	case KindOneToOne:
		if c.SrcPopSize != c.DstPopSize {
			return Fatalf(0, ErrSize, "one-to-one connectivity on %q requires equal source and destination population sizes (%d != %d)", c.Name, c.SrcPopSize, c.DstPopSize)
		}
		c.Size = c.SrcPopSize
	case KindConnectionList:
		c.Size = c.ListCount
	}
	c.Resolved = true
	return nil
}
