package split

import "github.com/emer/spinesplit/model"

// windowModCap keeps ValueList entries with index in [lo, lo+size), and
// reindexes each kept entry as (index - lo). This is the re-indexing rule
// shared by Population properties, PostSynapse properties (windowed on the
// destination sub-range), and WeightUpdate properties under OneToOne
// connectivity.
func windowModCap(list map[int]float64, lo, size int) map[int]float64 {
	out := map[int]float64{}
	for idx, v := range list {
		if idx >= lo && idx < lo+size {
			out[idx-lo] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// allToAllIndexMap reindexes a WeightUpdate ValueList under
// AllToAll connectivity. The parent property is indexed in the flattened
// (src, dst) space of the *whole* projection (src*dstPopSize + dst); the
// sub-component keeps only entries whose (src, dst) falls in this
// sub-synapse's (srcSub, dstSub) window, reindexed as
// src_local*targetSubSize + dst_local.
func allToAllIndexMap(list map[int]float64, srcSub, dstSub, cap, dstPopSize, targetSubSize int) map[int]float64 {
	out := map[int]float64{}
	srcLo, srcHi := srcSub*cap, srcSub*cap+cap
	dstLo, dstHi := dstSub*cap, dstSub*cap+targetSubSize
	for idx, v := range list {
		src := idx / dstPopSize
		dst := idx % dstPopSize
		if src < srcLo || src >= srcHi || dst < dstLo || dst >= dstHi {
			continue
		}
		srcLocal, dstLocal := src-srcLo, dst-dstLo
		out[srcLocal*targetSubSize+dstLocal] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// listIndexMap reindexes a WeightUpdate ValueList under List
// connectivity, given the map from parent connection-instance index to the
// dense index it was assigned within this particular sub-synapse's
// connection list.
func listIndexMap(list map[int]float64, instanceIndex map[int]int) map[int]float64 {
	out := map[int]float64{}
	for parentIdx, subIdx := range instanceIndex {
		if v, ok := list[parentIdx]; ok {
			out[subIdx] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitProperty(p model.Property, reindex func(map[int]float64) map[int]float64) model.Property {
	if p.Value == nil || p.Value.Kind != model.KindValueList {
		return cloneVerbatim(p)
	}
	out := reindex(p.Value.List)
	return model.Property{Name: p.Name, Value: &model.PropertyValue{Kind: model.KindValueList, List: out}}
}

// splitProperties applies reindex to every ValueList property and clones
// everything else verbatim, dropping properties whose resulting list is
// empty.
func splitProperties(props []model.Property, reindex func(map[int]float64) map[int]float64) []model.Property {
	out := make([]model.Property, 0, len(props))
	for _, p := range props {
		sp := splitProperty(p, reindex)
		if sp.Value != nil && sp.Value.Kind == model.KindValueList && sp.Value.List == nil {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// SplitPopulationProperties windows a Neuron's properties to the
// sub-population's own index range.
func SplitPopulationProperties(props []model.Property, subIdx, cap, subSize int) []model.Property {
	return splitProperties(props, func(l map[int]float64) map[int]float64 {
		return windowModCap(l, subIdx*cap, subSize)
	})
}

// SplitPostSynapseProperties windows a PostSynapse's properties to the
// destination sub-range.
func SplitPostSynapseProperties(props []model.Property, destSubIdx, cap, destSubSize int) []model.Property {
	return splitProperties(props, func(l map[int]float64) map[int]float64 {
		return windowModCap(l, destSubIdx*cap, destSubSize)
	})
}

// SplitWeightUpdateProperties dispatches a WeightUpdate's properties per
// the target connectivity kind.
func SplitWeightUpdateProperties(props []model.Property, kind model.ConnectionKind, srcSub, dstSub, cap, dstPopSize, targetSubSize int, instanceIndex map[int]int) []model.Property {
	switch kind {
	case model.KindOneToOne:
		return splitProperties(props, func(l map[int]float64) map[int]float64 {
			return windowModCap(l, srcSub*cap, targetSubSize)
		})
	case model.KindAllToAll:
		return splitProperties(props, func(l map[int]float64) map[int]float64 {
			return allToAllIndexMap(l, srcSub, dstSub, cap, dstPopSize, targetSubSize)
		})
	case model.KindConnectionList:
		return splitProperties(props, func(l map[int]float64) map[int]float64 {
			return listIndexMap(l, instanceIndex)
		})
	default: // FixedProbability: distribution cloned verbatim, never a ValueList in practice
		out := make([]model.Property, len(props))
		for i, p := range props {
			out[i] = cloneVerbatim(p)
		}
		return out
	}
}
