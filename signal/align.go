// elScan: a tool for scanning predicted variant expression effects.
// Copyright (c) 2024-2025 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elscan/blob/master/LICENSE.txt>.

package signal

import "math"

// AlignReference returns a copy of the reference track set re-indexed
// so that offset i in the result corresponds to the same genomic base
// as offset i in the alternate track set, given a variant at the
// 1-based position with lengthAlter = len(ref bases) - len(alt bases).
// A deletion (lengthAlter > 0) shifts the reference left by
// lengthAlter starting at the variant offset and marks the final
// lengthAlter positions as NaN; an insertion (lengthAlter < 0) shifts
// right and marks the opened span as NaN. For a substitution the
// result is an unmodified copy. Shifts that would reach outside the
// interval are truncated silently.
func AlignReference(ref *TrackSet, position int32, lengthAlter int) *TrackSet {
	aligned := ref.Clone()
	if lengthAlter == 0 {
		return aligned
	}
	offset := int(position - ref.Interval.Start)
	for t, src := range ref.Values {
		dst := aligned.Values[t]
		if lengthAlter > 0 {
			alignDeletion(dst, src, offset, lengthAlter)
		} else {
			alignInsertion(dst, src, offset, -lengthAlter)
		}
	}
	return aligned
}

func alignDeletion(dst, src []float64, offset, k int) {
	n := len(dst)
	for i := max(offset, 0); i+k < n; i++ {
		dst[i] = src[i+k]
	}
	for i := max(n-k, 0); i < n; i++ {
		dst[i] = math.NaN()
	}
}

func alignInsertion(dst, src []float64, offset, k int) {
	n := len(dst)
	for i := max(offset+k, k); i < n; i++ {
		dst[i] = src[i-k]
	}
	for i := max(offset, 0); i < min(offset+k, n); i++ {
		dst[i] = math.NaN()
	}
}
