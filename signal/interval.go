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

// Package signal implements genomic signal tracks over intervals:
// re-indexing of reference tracks around indels, sliding-window
// divergence scores computed with prefix sums, and NaN-aware
// reductions over score spans.
package signal

// Interval is a half-open genomic window [Start, End).
type Interval struct {
	Start, End int32
}

// Len returns the number of positions in the interval.
func (i Interval) Len() int {
	return int(i.End - i.Start)
}

// Resize returns an interval of the given width with the same center
// as the receiver.
func (i Interval) Resize(width int32) Interval {
	center := i.Start + (i.End-i.Start)/2
	start := center - width/2
	return Interval{Start: start, End: start + width}
}
