package xmlio

import (
	"encoding/xml"
	"io"
	"path/filepath"

	"github.com/emer/spinesplit/model"
)

// FullPass is the second XML walk over a network file: it builds
// full Population objects, including connection instances, against the
// sizes and SplitterMode already resolved by InfoPass. BaseDir is the
// network file's directory, used to resolve <BinaryFile file_name=...>
// relative paths.
type FullPass struct {
	Cap int
	Silent bool
	BaseDir string
}

// Run walks r once and populates m.Populations in file order. m must
// already carry the Components registry and resolved SplitterMode from a
// prior InfoPass.Run over the same file.
func (fp *FullPass) Run(r io.Reader, m *model.Model) error {
	lr := newLineCountingReader(r)
	dec := xml.NewDecoder(lr)
	globalIndex := 0
	subStart := 1
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Fatalf(lr.Line(), model.ErrIO, "xml: %v", err)
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
			return model.Fatalf(line, model.ErrSchema, "invalid <Population>: %v", err)
		}
		pop, err := fp.buildPopulation(m, &xp, line)
		if err != nil {
			return err
		}
		globalIndex++
		pop.GlobalIndex = globalIndex
		pop.Splits = model.NumSubs(pop.Size(), m.Cap)
		pop.GlobalSubStartIndex = subStart
		subStart += pop.Splits
		m.AddPopulation(pop)
	}
	return nil
}

func (fp *FullPass) buildPopulation(m *model.Model, xp *xmlPopulation, line int) (*model.Population, error) {
	name := xp.Neuron.Name
	size := m.Components[name].Size

	props, err := convertProperties(line, xp.Neuron.Properties, size, fp.Silent)
	if err != nil {
		return nil, err
	}
	neuron := model.NewNeuron(name, xp.Neuron.URL, size)
	neuron.Properties = props

	for _, in := range xp.Neuron.Inputs {
		built, err := fp.buildInput(m, line, in, size)
		if err != nil {
			return nil, err
		}
		if built != nil {
			neuron.AddInput(built)
		}
	}

	pop := model.NewPopulation(name, neuron)

	for projIdx, xproj := range xp.Projections {
		mode, peer, err := projectionModeAndPeer(line, xproj)
		if err != nil {
			return nil, err
		}
		proj := model.NewProjection(peer, projIdx)
		for _, syn := range xproj.Synapses {
			s, err := fp.buildSynapse(m, line, syn, name, peer, mode)
			if err != nil {
				return nil, err
			}
			proj.AddSynapse(s)
		}
		pop.AddProjection(proj)
	}
	return pop, nil
}

func (fp *FullPass) buildSynapse(m *model.Model, line int, syn xmlSynapse, owner, peer string, mode model.SplitterMode) (*model.Synapse, error) {
	var srcSize, dstSize int
	if mode == model.ModeProjDefinedAtSrc {
		srcSize, dstSize = m.Components[owner].Size, m.Components[peer].Size
	} else {
		srcSize, dstSize = m.Components[peer].Size, m.Components[owner].Size
	}

	conn, err := fp.buildAbstraction(line, srcSize, dstSize, model.KeyedSrcToDst,
		syn.AllToAll, syn.OneToOne, syn.FixedProbability, syn.ConnectionList)
	if err != nil {
		return nil, err
	}

	wuName := syn.WeightUpdate.Name
	wuSize := m.Components[wuName].Size
	wuProps, err := convertProperties(line, syn.WeightUpdate.Properties, wuSize, fp.Silent)
	if err != nil {
		return nil, err
	}
	wu := &model.WeightUpdate{
		Name: wuName, DefinitionURL: syn.WeightUpdate.URL,
		InputSrcPort: syn.WeightUpdate.InputSrcPort, InputDstPort: syn.WeightUpdate.InputDstPort,
		Properties: wuProps,
	}

	psName := syn.PostSynapse.Name
	psSize := m.Components[psName].Size
	psProps, err := convertProperties(line, syn.PostSynapse.Properties, psSize, fp.Silent)
	if err != nil {
		return nil, err
	}
	ps := model.NewPostSynapse(psName, syn.PostSynapse.URL)
	ps.InputSrcPort, ps.InputDstPort = syn.PostSynapse.InputSrcPort, syn.PostSynapse.InputDstPort
	ps.OutputSrcPort, ps.OutputDstPort = syn.PostSynapse.OutputSrcPort, syn.PostSynapse.OutputDstPort
	ps.Properties = psProps
	for _, in := range syn.PostSynapse.Inputs {
		if in.OneToOne != nil && in.Src == owner {
			continue // self-input idempotence
		}
		built, err := fp.buildInput(m, line, in, psSize)
		if err != nil {
			return nil, err
		}
		if built != nil {
			ps.AddInput(built)
		}
	}

	return &model.Synapse{Name: wuName, Connection: conn, WeightUpdate: wu, PostSynapse: ps}, nil
}

// buildInput converts one <Input> element, bounds-checking any
// ConnectionList remapping against the referenced source component's size
// and this component's size (dstSize).
func (fp *FullPass) buildInput(m *model.Model, line int, in xmlInput, dstSize int) (*model.Input, error) {
	src, err := reqAttr(line, "Input", "src", in.Src)
	if err != nil {
		return nil, err
	}
	srcPort, err := reqAttr(line, "Input", "src_port", in.SrcPort)
	if err != nil {
		return nil, err
	}
	dstPort, err := reqAttr(line, "Input", "dst_port", in.DstPort)
	if err != nil {
		return nil, err
	}
	srcComp, ok := m.Components[src]
	if !ok {
		return nil, model.Fatalf(line, model.ErrSchema, "<Input> references unknown component %q", src)
	}
	conn, err := fp.buildAbstraction(line, srcComp.Size, dstSize, model.KeyedDstToSrc,
		in.AllToAll, in.OneToOne, in.FixedProbability, in.ConnectionList)
	if err != nil {
		return nil, err
	}
	if conn.Kind == model.KindOneToOne && srcComp.Size != dstSize {
		return nil, model.Fatalf(line, model.ErrSize, "one-to-one input from %q requires matching sizes (%d != %d)", src, srcComp.Size, dstSize)
	}
	return &model.Input{Src: src, SrcPort: srcPort, DstPort: dstPort, Remapping: conn}, nil
}

func (fp *FullPass) buildAbstraction(line, maxSrc, maxDst int, orientation model.ListKeyOrientation,
	allToAll *xmlAllToAll, oneToOne *xmlOneToOne, fixedProb *xmlFixedProbability, connList *xmlConnectionList) (*model.AbstractionConnection, error) {

	kind, err := connectivityKind(line, allToAll, oneToOne, fixedProb, connList)
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.KindAllToAll:
		delay, err := convertDelay(line, allToAll.Delay)
		if err != nil {
			return nil, err
		}
		return &model.AbstractionConnection{Kind: model.KindAllToAll, Delay: delay}, nil
	case model.KindOneToOne:
		delay, err := convertDelay(line, oneToOne.Delay)
		if err != nil {
			return nil, err
		}
		if maxSrc != maxDst {
			return nil, model.Fatalf(line, model.ErrSize, "one-to-one connectivity requires equal source and destination sizes (%d != %d)", maxSrc, maxDst)
		}
		return &model.AbstractionConnection{Kind: model.KindOneToOne, Delay: delay}, nil
	case model.KindFixedProbability:
		delay, err := convertDelay(line, fixedProb.Delay)
		if err != nil {
			return nil, err
		}
		prob, err := reqFloat(line, "FixedProbabilityConnection", "probability", fixedProb.Probability)
		if err != nil {
			return nil, err
		}
		seed, hasSeed, err := optSeed(fixedProb.Seed)
		if err != nil {
			return nil, err
		}
		return &model.AbstractionConnection{Kind: model.KindFixedProbability, Delay: delay, Probability: prob, Seed: seed, HasSeed: hasSeed}, nil
	default: // model.KindConnectionList
		delay, err := convertDelay(line, connList.Delay)
		if err != nil {
			return nil, err
		}
		list, err := fp.buildConnectionList(line, connList, orientation, maxSrc, maxDst)
		if err != nil {
			return nil, err
		}
		return &model.AbstractionConnection{Kind: model.KindConnectionList, Delay: delay, List: list}, nil
	}
}

func (fp *FullPass) buildConnectionList(line int, cl *xmlConnectionList, orientation model.ListKeyOrientation, maxSrc, maxDst int) (*model.ConnectionList, error) {
	list := model.NewConnectionList(orientation)

	addOne := func(src, dst int, delay *model.PropertyValue) error {
		if src >= maxSrc {
			return model.Fatalf(line, model.ErrSize, "connection src_neuron %d out of bounds (max %d)", src, maxSrc-1)
		}
		if dst >= maxDst {
			return model.Fatalf(line, model.ErrSize, "connection dst_neuron %d out of bounds (max %d)", dst, maxDst-1)
		}
		if _, err := list.Add(src, dst, delay); err != nil {
			return model.Fatalf(line, model.ErrSize, "duplicate connection (src=%d, dst=%d)", src, dst)
		}
		return nil
	}

	if cl.BinaryFile != nil {
		numConn, err := reqInt(line, "BinaryFile", "num_connections", cl.BinaryFile.NumConnections)
		if err != nil {
			return nil, err
		}
		explicitFlag, err := reqInt(line, "BinaryFile", "explicit_delay_flag", cl.BinaryFile.ExplicitDelayFlag)
		if err != nil {
			return nil, err
		}
		fileName, err := reqAttr(line, "BinaryFile", "file_name", cl.BinaryFile.FileName)
		if err != nil {
			return nil, err
		}
		path := fileName
		if !filepath.IsAbs(path) {
			path = filepath.Join(fp.BaseDir, fileName)
		}
		records, err := ReadBinaryConnections(path, numConn, explicitFlag != 0, fp.Silent)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			var delay *model.PropertyValue
			if explicitFlag != 0 {
				delay = &model.PropertyValue{Kind: model.KindFixed, Fixed: float64(rec.Delay)}
			}
			if err := addOne(int(rec.Src), int(rec.Dst), delay); err != nil {
				return nil, err
			}
		}
		return list, nil
	}

	for _, c := range cl.Connections {
		src, err := reqInt(line, "Connection", "src_neuron", c.SrcNeuron)
		if err != nil {
			return nil, err
		}
		dst, err := reqInt(line, "Connection", "dst_neuron", c.DstNeuron)
		if err != nil {
			return nil, err
		}
		var delay *model.PropertyValue
		if c.Delay != nil {
			f, err := reqFloat(line, "Connection", "delay", *c.Delay)
			if err != nil {
				return nil, err
			}
			delay = &model.PropertyValue{Kind: model.KindFixed, Fixed: f}
		}
		if err := addOne(src, dst, delay); err != nil {
			return nil, err
		}
	}
	return list, nil
}
