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

import "strconv"

// TrackSet holds the predicted signal for a set of measurement tracks
// over one genomic interval. Values[t][i] is the value of track t at
// offset i within the interval, so len(Values[t]) == Interval.Len()
// for every track. Missing samples are represented as NaN.
type TrackSet struct {
	Interval Interval
	Names    []string
	Values   [][]float64
}

// NumTracks returns the number of tracks in the set.
func (ts *TrackSet) NumTracks() int {
	return len(ts.Values)
}

// Len returns the number of samples per track.
func (ts *TrackSet) Len() int {
	if len(ts.Values) == 0 {
		return 0
	}
	return len(ts.Values[0])
}

// Name returns the name of track t, or a generated placeholder when
// the prediction metadata did not provide one.
func (ts *TrackSet) Name(t int) string {
	if t < len(ts.Names) && ts.Names[t] != "" {
		return ts.Names[t]
	}
	return generatedTrackName(t)
}

func generatedTrackName(t int) string {
	return "track_" + strconv.Itoa(t)
}

// Clone returns a deep copy of the track set.
func (ts *TrackSet) Clone() *TrackSet {
	values := make([][]float64, len(ts.Values))
	for t, vals := range ts.Values {
		values[t] = make([]float64, len(vals))
		copy(values[t], vals)
	}
	names := make([]string, len(ts.Names))
	copy(names, ts.Names)
	return &TrackSet{Interval: ts.Interval, Names: names, Values: values}
}
