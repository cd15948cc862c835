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

package scan

import (
	"math"

	"github.com/willf/bitset"
)

// Region is an inclusive pair of window indices, End >= Start. At one
// sample per base pair, index distances equal base-pair distances.
type Region struct {
	Start, End int
}

// Length returns the number of windows covered by the region.
func (r Region) Length() int {
	return r.End - r.Start + 1
}

// CallRegions detects divergent regions in the score array of a single
// track. Window indices with |score| > threshold are compressed into
// maximal contiguous runs; runs are then merged left to right whenever
// the gap between them is <= mergeDistance windows (a gap exactly equal
// to mergeDistance merges); finally, merged regions shorter than
// minLength windows are discarded. The result is ascending and
// non-overlapping, and consecutive regions are separated by more than
// mergeDistance.
func CallRegions(scores []float64, threshold float64, minLength, mergeDistance int) []Region {
	hits := bitset.New(uint(len(scores)))
	for i, s := range scores {
		if math.Abs(s) > threshold {
			hits.Set(uint(i))
		}
	}
	runs := contiguousRuns(hits)
	if len(runs) == 0 {
		return nil
	}
	merged := mergeRuns(runs, mergeDistance)
	regions := merged[:0]
	for _, r := range merged {
		if r.Length() >= minLength {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return nil
	}
	return regions
}

// contiguousRuns compresses the set bits into maximal stride-1 runs of
// inclusive index pairs, in ascending order.
func contiguousRuns(hits *bitset.BitSet) []Region {
	var runs []Region
	i, ok := hits.NextSet(0)
	for ok {
		run := Region{Start: int(i), End: int(i)}
		for {
			j, more := hits.NextSet(i + 1)
			if !more || j != i+1 {
				i, ok = j, more
				break
			}
			run.End = int(j)
			i = j
		}
		runs = append(runs, run)
	}
	return runs
}

// mergeRuns sweeps the ascending runs once, extending the current
// region while the gap to the next run stays within mergeDistance.
func mergeRuns(runs []Region, mergeDistance int) []Region {
	merged := make([]Region, 0, len(runs))
	current := runs[0]
	for _, run := range runs[1:] {
		if gap := run.Start - current.End - 1; gap <= mergeDistance {
			current.End = run.End
		} else {
			merged = append(merged, current)
			current = run
		}
	}
	return append(merged, current)
}
