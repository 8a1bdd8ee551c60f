// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "math"

func floatBits(f float32) uint32  { return math.Float32bits(f) }
func bitsFloat(u uint32) float32  { return math.Float32frombits(u) }
func doubleBits(f float64) uint64 { return math.Float64bits(f) }
func bitsDouble(u uint64) float64 { return math.Float64frombits(u) }
