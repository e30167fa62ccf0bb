// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xmlio implements the two-pass SpineML Low-Level network reader
// (InfoPass then FullPass), the experiment-file reader, and the
// little-endian binary connection-file reader.
package xmlio
