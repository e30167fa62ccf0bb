package split

import "github.com/emer/spinesplit/model"

// SizeLookup resolves a top-level component's size by name, used to know
// how many remote sub-components an All-to-all/Fixed-probability input
// must fan out to.
type SizeLookup func(name string) int

// SplitInputs builds the sub-inputs for one sub-component (a Population's
// sub-neuron or a PostSynapse's sub-post-synapse) at subIdx, windowed to
// subSize out of maxCompSize per sub. Order is preserved from the parent's
// InputOrder so emission stays deterministic.
func SplitInputs(inputs map[string]*model.Input, order []string, subIdx, cap, subSize, maxCompSize int, sizeOf SizeLookup) (map[string]*model.Input, []string) {
	out := map[string]*model.Input{}
	var outOrder []string
	add := func(in *model.Input) {
		k := in.Key()
		if _, exists := out[k]; !exists {
			outOrder = append(outOrder, k)
		}
		out[k] = in
	}

	for _, k := range order {
		parent := inputs[k]
		switch parent.Remapping.Kind {
		case model.KindOneToOne:
			built := &model.Input{
				Src: model.SubName(parent.Src, subIdx),
				SrcPort: parent.SrcPort,
				DstPort: parent.DstPort,
				Remapping: &model.AbstractionConnection{Kind: model.KindOneToOne, Delay: cloneDelay(parent.Remapping.Delay)},
				UnsplitInput: parent,
				SubInpIndex: 0,
			}
			add(built)
			parent.BumpSubInpMax(1)

		case model.KindAllToAll, model.KindFixedProbability:
			remoteSize := sizeOf(parent.Src)
			n := model.NumSubs(remoteSize, cap)
			for k := 0; k < n; k++ {
				conn := &model.AbstractionConnection{Kind: parent.Remapping.Kind, Delay: cloneDelay(parent.Remapping.Delay)}
				if parent.Remapping.Kind == model.KindFixedProbability {
					conn.Probability = parent.Remapping.Probability
					conn.Seed = parent.Remapping.Seed
					conn.HasSeed = parent.Remapping.HasSeed
				}
				built := &model.Input{
					Src: model.SubName(parent.Src, k), SrcPort: parent.SrcPort, DstPort: parent.DstPort,
					Remapping: conn, UnsplitInput: parent, SubInpIndex: k,
				}
				add(built)
			}
			parent.BumpSubInpMax(n)

		case model.KindConnectionList:
			lo := subIdx * maxCompSize
			hi := lo + subSize
			subInputs := map[int]*model.Input{} // remoteSub -> sub-input under construction
			var remoteOrder []int               // remoteSub values in first-creation order
			created := 0
			for _, inst := range parent.Remapping.List.Connections {
				dst := inst.DstNeuron
				if dst < lo || dst >= hi {
					continue
				}
				src := inst.SrcNeuron
				remoteSub := src / cap
				si, ok := subInputs[remoteSub]
				if !ok {
					si = &model.Input{
						Src: model.SubName(parent.Src, remoteSub), SrcPort: parent.SrcPort, DstPort: parent.DstPort,
						Remapping: &model.AbstractionConnection{Kind: model.KindConnectionList, Delay: cloneDelay(parent.Remapping.Delay), List: model.NewConnectionList(model.KeyedDstToSrc)},
						UnsplitInput: parent, SubInpIndex: remoteSub,
					}
					subInputs[remoteSub] = si
					remoteOrder = append(remoteOrder, remoteSub)
					created++
				}
				if _, err := si.Remapping.List.Add(src%cap, dst%maxCompSize, cloneDelay(inst.Delay)); err != nil {
					panic("split: " + err.Error())
				}
			}
			for _, remoteSub := range remoteOrder {
				add(subInputs[remoteSub])
			}
			parent.BumpSubInpMax(created)
		}
	}
	return out, outOrder
}
