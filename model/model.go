package model

// Model is the full parsed network: populations in file order plus the
// component registry built during InfoPass.
type Model struct {
	Cap int // CAP, the sub-population size bound

	Populations []*Population
	byName map[string]*Population
	Components map[string]*ComponentInfo // all top-level components, by name — duplicate names are fatal
	Mode ModeTracker

	// SrcPortRefs records every (src, src_port) referenced by some Input,
	// as a multimap keyed on src.
	SrcPortRefs map[string]map[string]bool
}

func NewModel(cap int) *Model {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Model{
		Cap: cap,
		byName: map[string]*Population{},
		Components: map[string]*ComponentInfo{},
		SrcPortRefs: map[string]map[string]bool{},
	}
}

// Register adds a ComponentInfo, fataling on a duplicate name.
func (m *Model) Register(line int, c *ComponentInfo) error {
	if _, exists := m.Components[c.Name]; exists {
		return Fatalf(line, ErrSchema, "duplicate component name %q", c.Name)
	}
	m.Components[c.Name] = c
	return nil
}

// AddPopulation registers a fully-built Population in file order.
func (m *Model) AddPopulation(p *Population) {
	m.Populations = append(m.Populations, p)
	m.byName[p.Name] = p
}

func (m *Model) PopulationByName(name string) *Population {
	return m.byName[name]
}

// NoteSrcPortRef records that some Input references (src, srcPort).
func (m *Model) NoteSrcPortRef(src, srcPort string) {
	ports := m.SrcPortRefs[src]
	if ports == nil {
		ports = map[string]bool{}
		m.SrcPortRefs[src] = ports
	}
	ports[srcPort] = true
}

// CalculateDimensions resolves every non-Population ComponentInfo's Size.
// It must run after every <Population> has been seen, since a
// weight-update/post-synapse's size depends on its projection's peer
// population sizes.
func (m *Model) CalculateDimensions() error {
	for _, c := range m.Components {
		if c.Kind == CompPopulation {
			continue
		}
		owner, ok := m.Components[c.OwnerPopulation]
		if !ok || owner.Kind != CompPopulation {
			return Fatalf(0, ErrSchema, "component %q belongs to unknown population %q", c.Name, c.OwnerPopulation)
		}
		peer, ok := m.Components[c.PeerPopulation]
		if !ok || peer.Kind != CompPopulation {
			return Fatalf(0, ErrSchema, "component %q references unknown population %q", c.Name, c.PeerPopulation)
		}
		switch c.PeerMode {
		case ModeProjDefinedAtSrc:
			c.SrcPopSize, c.DstPopSize = owner.Size, peer.Size
		case ModeProjDefinedAtDst:
			c.SrcPopSize, c.DstPopSize = peer.Size, owner.Size
		default:
			return Fatalf(0, ErrSchema, "component %q has no recorded projection mode", c.Name)
		}
		if err := c.CalculateDimensions(); err != nil {
			return err
		}
	}
	return nil
}
