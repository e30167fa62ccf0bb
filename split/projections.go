package split

import "github.com/emer/spinesplit/model"

// SplitProjections builds the sub-projections emitted when splitting "pop"
// at subIdx. m must have resolved component
// sizes (post Model.CalculateDimensions, as run by InfoPass.Run). Returns the sub-projections
// keyed by peer sub-population name, in first-creation order.
func SplitProjections(pop *model.Population, subIdx, cap, subSize int, m *model.Model, sizeOf SizeLookup) (map[string]*model.Projection, []string, error) {
	mode := m.Mode.Mode()
	out := map[string]*model.Projection{}
	var order []string
	getProj := func(peerSubName string) *model.Projection {
		p, ok := out[peerSubName]
		if !ok {
			p = model.NewProjection(peerSubName, len(order))
			out[peerSubName] = p
			order = append(order, peerSubName)
		}
		return p
	}

	for _, peerName := range pop.ProjOrder {
		proj := pop.Projections[peerName]
		for _, synName := range proj.SynapseOrder {
			syn := proj.Synapses[synName]
			if err := splitOneSynapse(syn, peerName, mode, subIdx, cap, subSize, m, getProj, sizeOf); err != nil {
				return nil, nil, err
			}
		}
	}
	return out, order, nil
}

// popIsSrc reports whether "pop" (the population currently being split)
// plays the literal source role for this synapse's connectivity, per the
// SplitterMode recorded when the projection was parsed.
func popIsSrc(mode model.SplitterMode) bool {
	return mode == model.ModeProjDefinedAtSrc
}

func splitOneSynapse(syn *model.Synapse, peerName string, mode model.SplitterMode, subIdx, cap, subSize int, m *model.Model, getProj func(string) *model.Projection, sizeOf SizeLookup) error {
	wuInfo := m.Components[syn.Name]
	srcIsPop := popIsSrc(mode)

	switch syn.Connection.Kind {
	case model.KindOneToOne:
		return splitOneToOne(syn, peerName, subIdx, cap, subSize, wuInfo, getProj, sizeOf)
	case model.KindAllToAll, model.KindFixedProbability:
		return splitFannedOut(syn, peerName, srcIsPop, subIdx, cap, wuInfo, getProj, sizeOf)
	default: // model.KindConnectionList
		return splitListSynapse(syn, peerName, srcIsPop, subIdx, cap, subSize, wuInfo, getProj, sizeOf)
	}
}

func splitOneToOne(syn *model.Synapse, peerName string, subIdx, cap, subSize int, wuInfo *model.ComponentInfo, getProj func(string) *model.Projection, sizeOf SizeLookup) error {
	peerSubName := model.SubName(peerName, subIdx)
	name := model.SubPairName(syn.Name, subIdx, subIdx)
	conn := &model.AbstractionConnection{Kind: model.KindOneToOne, Delay: cloneDelay(syn.Connection.Delay)}
	wu := splitWeightUpdate(syn.WeightUpdate, name, model.KindOneToOne, subIdx, subIdx, cap, wuInfo.DstPopSize, subSize, nil)
	ps := splitPostSynapse(syn.PostSynapse, name, subIdx, cap, subSize, sizeOf)
	getProj(peerSubName).AddSynapse(&model.Synapse{Name: name, Connection: conn, WeightUpdate: wu, PostSynapse: ps})
	syn.BumpSubSynMax(1)
	return nil
}

func splitFannedOut(syn *model.Synapse, peerName string, srcIsPop bool, subIdx, cap int, wuInfo *model.ComponentInfo, getProj func(string) *model.Projection, sizeOf SizeLookup) error {
	otherSize := wuInfo.DstPopSize
	if !srcIsPop {
		otherSize = wuInfo.SrcPopSize
	}
	n := model.NumSubs(otherSize, cap)
	for d := 0; d < n; d++ {
		srcSub, dstSub := subIdx, d
		if !srcIsPop {
			srcSub, dstSub = d, subIdx
		}
		peerSubName := model.SubName(peerName, d)
		name := model.SubPairName(syn.Name, srcSub, dstSub)
		targetSubSize := model.SubSize(wuInfo.DstPopSize, cap, dstSub)

		conn := &model.AbstractionConnection{Kind: syn.Connection.Kind, Delay: cloneDelay(syn.Connection.Delay), Probability: syn.Connection.Probability, Seed: syn.Connection.Seed, HasSeed: syn.Connection.HasSeed}
		wu := splitWeightUpdate(syn.WeightUpdate, name, syn.Connection.Kind, srcSub, dstSub, cap, wuInfo.DstPopSize, targetSubSize, nil)
		ps := splitPostSynapse(syn.PostSynapse, name, dstSub, cap, targetSubSize, sizeOf)
		getProj(peerSubName).AddSynapse(&model.Synapse{Name: name, Connection: conn, WeightUpdate: wu, PostSynapse: ps})
	}
	syn.BumpSubSynMax(n)
	return nil
}

func splitListSynapse(syn *model.Synapse, peerName string, srcIsPop bool, subIdx, cap, subSize int, wuInfo *model.ComponentInfo, getProj func(string) *model.Projection, sizeOf SizeLookup) error {
	type building struct {
		srcSub, dstSub int
		list *model.ConnectionList
		instanceIndex map[int]int // parent connection index -> this sub-list's dense index
	}
	subs := map[string]*building{}
	var subOrder []string

	lo, hi := subIdx*cap, subIdx*cap+subSize
	for _, inst := range syn.Connection.List.Connections {
		nCoord := inst.SrcNeuron
		if !srcIsPop {
			nCoord = inst.DstNeuron
		}
		if nCoord < lo || nCoord >= hi {
			continue
		}
		var d int
		if srcIsPop {
			d = inst.DstNeuron / cap
		} else {
			d = inst.SrcNeuron / cap
		}
		srcSub, dstSub := subIdx, d
		if !srcIsPop {
			srcSub, dstSub = d, subIdx
		}
		name := model.SubPairName(syn.Name, srcSub, dstSub)
		b, ok := subs[name]
		if !ok {
			b = &building{srcSub: srcSub, dstSub: dstSub, list: model.NewConnectionList(model.KeyedSrcToDst), instanceIndex: map[int]int{}}
			subs[name] = b
			subOrder = append(subOrder, name)
		}
		newInst, err := b.list.Add(inst.SrcNeuron%cap, inst.DstNeuron%cap, cloneDelay(inst.Delay))
		if err != nil {
			return err
		}
		b.instanceIndex[inst.Index] = newInst.Index
	}

	for _, name := range subOrder {
		b := subs[name]
		peerSubName := model.SubName(peerName, b.dstSub)
		if !srcIsPop {
			peerSubName = model.SubName(peerName, b.srcSub)
		}
		targetSubSize := model.SubSize(wuInfo.DstPopSize, cap, b.dstSub)
		conn := &model.AbstractionConnection{Kind: model.KindConnectionList, Delay: cloneDelay(syn.Connection.Delay), List: b.list}
		wu := splitWeightUpdate(syn.WeightUpdate, name, model.KindConnectionList, b.srcSub, b.dstSub, cap, wuInfo.DstPopSize, targetSubSize, b.instanceIndex)
		ps := splitPostSynapse(syn.PostSynapse, name, b.dstSub, cap, targetSubSize, sizeOf)
		getProj(peerSubName).AddSynapse(&model.Synapse{Name: name, Connection: conn, WeightUpdate: wu, PostSynapse: ps})
	}
	syn.BumpSubSynMax(len(subOrder))
	return nil
}

func splitWeightUpdate(wu *model.WeightUpdate, name string, kind model.ConnectionKind, srcSub, dstSub, cap, dstPopSize, targetSubSize int, instanceIndex map[int]int) *model.WeightUpdate {
	return &model.WeightUpdate{
		Name: name, DefinitionURL: wu.DefinitionURL,
		InputSrcPort: wu.InputSrcPort, InputDstPort: wu.InputDstPort,
		Properties: SplitWeightUpdateProperties(wu.Properties, kind, srcSub, dstSub, cap, dstPopSize, targetSubSize, instanceIndex),
	}
}

// splitPostSynapse builds one sub-post-synapse windowed to the destination
// sub-range (dstSub, dstSubSize), including its own re-indexed Inputs.
func splitPostSynapse(ps *model.PostSynapse, name string, dstSub, cap, dstSubSize int, sizeOf SizeLookup) *model.PostSynapse {
	out := model.NewPostSynapse(name, ps.DefinitionURL)
	out.InputSrcPort, out.InputDstPort = ps.InputSrcPort, ps.InputDstPort
	out.OutputSrcPort, out.OutputDstPort = ps.OutputSrcPort, ps.OutputDstPort
	out.Properties = SplitPostSynapseProperties(ps.Properties, dstSub, cap, dstSubSize)
	out.Inputs, out.InputOrder = SplitInputs(ps.Inputs, ps.InputOrder, dstSub, cap, dstSubSize, cap, sizeOf)
	return out
}
