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

import (
	"gonum.org/v1/gonum/floats"
)

// ClipScan clips the half-open scan span [start, end) into [0, n).
func ClipScan(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

// NumWindows returns the number of windowSize-wide, 1-sample-stride
// windows in the clipped scan span, which may be <= 0.
func NumWindows(start, end, windowSize, n int) int {
	start, end = ClipScan(start, end, n)
	return end - start - windowSize + 1
}

// WindowScores computes the per-window divergence score
// altMean/(refMean+epsilon) - 1 for every track, using windowed means
// over windowSize-wide windows with stride 1, starting at the clipped
// scan start. The window sums are computed from per-track prefix sums,
// so the cost is linear in the track length; NaN samples introduced by
// indel alignment poison the prefix sums from their position onward,
// exactly as the windowed scores are defined. Returns nil when the
// clipped span holds no complete window.
//
// Because the stride is one sample per base, a window-index difference
// of d corresponds to d base pairs; region calling relies on this.
func WindowScores(alt, ref *TrackSet, start, end, windowSize int, epsilon float64) [][]float64 {
	n := alt.Len()
	nWindows := NumWindows(start, end, windowSize, n)
	if nWindows <= 0 {
		return nil
	}
	start, end = ClipScan(start, end, n)
	scores := make([][]float64, alt.NumTracks())
	altCS := make([]float64, n+1)
	refCS := make([]float64, n+1)
	w := float64(windowSize)
	for t := range scores {
		floats.CumSum(altCS[1:], alt.Values[t])
		floats.CumSum(refCS[1:], ref.Values[t])
		ts := make([]float64, nWindows)
		for j := 0; j < nWindows; j++ {
			lo := start + j
			hi := lo + windowSize
			altMean := (altCS[hi] - altCS[lo]) / w
			refMean := (refCS[hi] - refCS[lo]) / w
			ts[j] = altMean/(refMean+epsilon) - 1
		}
		scores[t] = ts
	}
	return scores
}
