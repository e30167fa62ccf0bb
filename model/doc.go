// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the typed in-memory representation of a parsed
// SpineML Low-Level network: populations, projections, synapses,
// weight-update and post-synapse components, connectivity abstractions,
// property values, inputs, and the top-level experiment description.
//
// Nothing in this package performs XML IO or splitting; it is the shared
// vocabulary that xmlio, split, and writer all operate on.
package model
