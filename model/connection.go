package model

// ConnectionKind is the tag of an AbstractionConnection / Input remapping.
type ConnectionKind int

const (
	KindAllToAll ConnectionKind = iota
	KindOneToOne
	KindFixedProbability
	KindConnectionList
)

func (k ConnectionKind) String() string {
	switch k {
	case KindAllToAll:
		return "AllToAll"
	case KindOneToOne:
		return "OneToOne"
	case KindFixedProbability:
		return "FixedProbability"
	case KindConnectionList:
		return "ConnectionList"
	default:
		return "Unknown"
	}
}

// ConnectionInstance is one densely-indexed connection within a
// ConnectionList.
type ConnectionInstance struct {
	Index int
	SrcNeuron int
	DstNeuron int
	Delay *PropertyValue // nil if the list has no explicit per-connection delay
}

// ConnectionList owns its ConnectionInstances and a two-level lookup matrix.
// The outer key is src for synapse connectivity and dst for input
// remappings; which orientation a given list uses is
// fixed at construction time and recorded in Keyed.
type ConnectionList struct {
	Connections []*ConnectionInstance
	ByFirstKey map[int]map[int]*ConnectionInstance // outer -> inner -> instance
	Keyed ListKeyOrientation
}

// ListKeyOrientation records which neuron index is the outer key of
// ByFirstKey, since the same ConnectionList type serves both projections
// (keyed src->dst) and input remappings (keyed dst->src).
type ListKeyOrientation int

const (
	KeyedSrcToDst ListKeyOrientation = iota
	KeyedDstToSrc
)

// NewConnectionList builds an empty list with the given key orientation.
func NewConnectionList(orientation ListKeyOrientation) *ConnectionList {
	return &ConnectionList{ByFirstKey: map[int]map[int]*ConnectionInstance{}, Keyed: orientation}
}

// Add appends a new densely-indexed instance and inserts it into the
// lookup matrix, returning an error if (src,dst) is already present.
func (cl *ConnectionList) Add(src, dst int, delay *PropertyValue) (*ConnectionInstance, error) {
	outer, inner := src, dst
	if cl.Keyed == KeyedDstToSrc {
		outer, inner = dst, src
	}
	if m, ok := cl.ByFirstKey[outer]; ok {
		if _, dup := m[inner]; dup {
			return nil, Fatalf(0, ErrSize, "duplicate connection instance (src=%d, dst=%d)", src, dst)
		}
	}
	inst := &ConnectionInstance{Index: len(cl.Connections), SrcNeuron: src, DstNeuron: dst, Delay: delay}
	cl.Connections = append(cl.Connections, inst)
	if cl.ByFirstKey[outer] == nil {
		cl.ByFirstKey[outer] = map[int]*ConnectionInstance{}
	}
	cl.ByFirstKey[outer][inner] = inst
	return inst, nil
}

// Lookup finds an instance by (src, dst) regardless of key orientation.
func (cl *ConnectionList) Lookup(src, dst int) (*ConnectionInstance, bool) {
	outer, inner := src, dst
	if cl.Keyed == KeyedDstToSrc {
		outer, inner = dst, src
	}
	m, ok := cl.ByFirstKey[outer]
	if !ok {
		return nil, false
	}
	inst, ok := m[inner]
	return inst, ok
}

// AbstractionConnection is the tagged connectivity variant shared by
// synapses and input remappings. Exactly the fields relevant to Kind
// are meaningful; Delay is optional for all kinds.
type AbstractionConnection struct {
	Kind ConnectionKind
	Delay *PropertyValue

	// FixedProbability
	Probability float64
	Seed int64
	HasSeed bool

	// ConnectionList
	List *ConnectionList
}
