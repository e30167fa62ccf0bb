package xmlio

import (
	"encoding/xml"
	"io"

	"github.com/emer/spinesplit/model"
)

// InfoPass is the first XML walk over a network file: it names and
// sizes every top-level component, determines the SplitterMode, and
// records the src->port multimap, without building any connection
// instances. Silent suppresses non-fatal warning logging.
type InfoPass struct {
	Cap int
	Silent bool
}

// Run walks r once, producing a *model.Model whose Populations list is
// still empty but whose Components registry and SplitterMode are fully
// resolved.
// FullPass later rebuilds the real Population objects against this
// resolved sizing information.
func (p *InfoPass) Run(r io.Reader) (*model.Model, error) {
	cap := p.Cap
	if cap <= 0 {
		cap = model.DefaultCap
	}
	m := model.NewModel(cap)

	lr := newLineCountingReader(r)
	dec := xml.NewDecoder(lr)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, model.Fatalf(lr.Line(), model.ErrIO, "xml: %v", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "Population" {
			continue
		}
		line := lr.Line()
		var xp xmlPopulation
		if err := dec.DecodeElement(&xp, &se); err != nil {
			return nil, model.Fatalf(line, model.ErrSchema, "invalid <Population>: %v", err)
		}
		if err := p.processPopulation(m, &xp, line); err != nil {
			return nil, err
		}
	}

	if err := m.CalculateDimensions(); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *InfoPass) processPopulation(m *model.Model, xp *xmlPopulation, line int) error {
	if len(xp.Groups) > 0 {
		return model.Fatalf(line, model.ErrSchema, "model groups (<ComponenentInstance>) are not supported")
	}
	name, err := reqAttr(line, "Neuron", "name", xp.Neuron.Name)
	if err != nil {
		return err
	}
	size, err := reqInt(line, "Neuron", "size", xp.Neuron.Size)
	if err != nil {
		return err
	}
	if err := m.Register(line, &model.ComponentInfo{Name: name, Kind: model.CompPopulation, Size: size, Resolved: true}); err != nil {
		return err
	}

	for _, in := range xp.Neuron.Inputs {
		src, err := reqAttr(line, "Input", "src", in.Src)
		if err != nil {
			return err
		}
		srcPort, err := reqAttr(line, "Input", "src_port", in.SrcPort)
		if err != nil {
			return err
		}
		m.NoteSrcPortRef(src, srcPort)
	}

	for _, xproj := range xp.Projections {
		mode, peer, err := projectionModeAndPeer(line, xproj)
		if err != nil {
			return err
		}
		if err := m.Mode.Observe(mode, line); err != nil {
			return err
		}
		for _, syn := range xproj.Synapses {
			kind, err := connectivityKind(line, syn.AllToAll, syn.OneToOne, syn.FixedProbability, syn.ConnectionList)
			if err != nil {
				return err
			}
			listCount := 0
			if kind == model.KindConnectionList {
				listCount, err = connectionListCount(line, syn.ConnectionList)
				if err != nil {
					return err
				}
			}

			wuName, err := reqAttr(line, "WeightUpdate", "name", syn.WeightUpdate.Name)
			if err != nil {
				return err
			}
			if len(syn.WeightUpdate.Inputs) > 0 {
				return model.Fatalf(line, model.ErrSemantics, "weight-update component %q may not have inputs", wuName)
			}
			if err := m.Register(line, &model.ComponentInfo{
				Name: wuName, Kind: model.CompWeightUpdate,
				ProjPopulation: peer, OwnerPopulation: name, PeerPopulation: peer, PeerMode: mode,
				Connectivity: kind, ListCount: listCount,
			}); err != nil {
				return err
			}

			psName, err := reqAttr(line, "PostSynapse", "name", syn.PostSynapse.Name)
			if err != nil {
				return err
			}
			if err := m.Register(line, &model.ComponentInfo{
				Name: psName, Kind: model.CompPostSynapse,
				ProjPopulation: peer, OwnerPopulation: name, PeerPopulation: peer, PeerMode: mode,
				Connectivity: kind, ListCount: listCount,
			}); err != nil {
				return err
			}

			for _, in := range syn.PostSynapse.Inputs {
				if in.OneToOne != nil && in.Src == name {
					continue // self-input idempotence
				}
				if in.OneToOne != nil {
					return model.Fatalf(line, model.ErrSemantics, "one-to-one remapping is not supported as an input into post-synapse component %q", psName)
				}
				src, err := reqAttr(line, "Input", "src", in.Src)
				if err != nil {
					return err
				}
				srcPort, err := reqAttr(line, "Input", "src_port", in.SrcPort)
				if err != nil {
					return err
				}
				m.NoteSrcPortRef(src, srcPort)
			}
		}
	}
	return nil
}

// projectionModeAndPeer determines the SplitterMode this <Projection>
// declares and its peer population name.
func projectionModeAndPeer(line int, xproj xmlProjection) (model.SplitterMode, string, error) {
	hasDst := xproj.DstPopulation != ""
	hasSrc := xproj.SrcPopulation != ""
	switch {
	case hasDst && !hasSrc:
		return model.ModeProjDefinedAtSrc, xproj.DstPopulation, nil
	case hasSrc && !hasDst:
		return model.ModeProjDefinedAtDst, xproj.SrcPopulation, nil
	case hasDst && hasSrc:
		return 0, "", model.Fatalf(line, model.ErrSchema, "<Projection> has both dst_population and src_population")
	default:
		return 0, "", model.Fatalf(line, model.ErrSchema, "<Projection> has neither dst_population nor src_population")
	}
}

func connectionListCount(line int, cl *xmlConnectionList) (int, error) {
	if cl.BinaryFile != nil && len(cl.Connections) > 0 {
		return 0, model.Fatalf(line, model.ErrSchema, "<ConnectionList> has both inline <Connection> elements and a <BinaryFile>")
	}
	if cl.BinaryFile != nil {
		return reqInt(line, "BinaryFile", "num_connections", cl.BinaryFile.NumConnections)
	}
	return len(cl.Connections), nil
}
