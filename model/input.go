package model

import "sync/atomic"

// Input is a remapping of another component's output port into this
// component's input. Split inputs carry back-references to the
// unsplit parent for the writer's later bookkeeping; the parent
// accumulates SubInpMax as the maximum sub-input count produced across
// all sub-components that split it.
type Input struct {
	Src string
	SrcPort string
	DstPort string
	Remapping *AbstractionConnection

	// Split bookkeeping. UnsplitInput is nil on the original, unsplit Input.
	UnsplitInput *Input
	SubInpIndex int

	// SubInpMax is only meaningful on an unsplit Input; it is updated with
	// atomic max-or-add operations from concurrently-splitting
	// sub-populations.
	SubInpMax atomic.Int64
}

// Key is the "<src>_<src_port>_<dst_port>" identity used as the map key for
// a Neuron's or PostSynapse's Inputs.
func (in *Input) Key() string {
	return in.Src + "_" + in.SrcPort + "_" + in.DstPort
}

// BumpSubInpMax atomically raises the unsplit input's SubInpMax to at least
// n, the count of sub-inputs produced for one sub-component's split.
func (in *Input) BumpSubInpMax(n int) {
	for {
		cur := in.SubInpMax.Load()
		if int64(n) <= cur {
			return
		}
		if in.SubInpMax.CompareAndSwap(cur, int64(n)) {
			return
		}
	}
}
