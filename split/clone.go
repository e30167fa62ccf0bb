// Package split implements the splitter core: partitioning one
// Population into ceil(size/CAP) sub-Populations, re-indexing projections,
// synapses, inputs, properties, and delays along the way.
package split

import (
	"github.com/jinzhu/copier"

	"github.com/emer/spinesplit/model"
)

// cloneDelay deep-copies a PropertyValue used as a Delay, returning nil for
// a nil delay.
func cloneDelay(d *model.PropertyValue) *model.PropertyValue {
	return cloneValue(d)
}

// cloneValue deep-copies a PropertyValue verbatim — used for scalar and
// distribution properties, which are always cloned unchanged into every
// sub-component.
func cloneValue(v *model.PropertyValue) *model.PropertyValue {
	if v == nil {
		return nil
	}
	out := &model.PropertyValue{}
	if err := copier.CopyWithOption(out, v, copier.Option{DeepCopy: true}); err != nil {
		// PropertyValue has no unexported or incompatible fields; a copy
		// error here means the struct shape drifted out from under this
		// package.
		panic("split: clone PropertyValue: " + err.Error())
	}
	return out
}

// cloneVerbatim clones a property whose value isn't windowed for this sub
// index — scalars, distributions, and fixed-probability connectivity all
// take this path.
func cloneVerbatim(p model.Property) model.Property {
	return model.Property{Name: p.Name, Value: cloneValue(p.Value)}
}
