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
	"math"
	"testing"
)

func constantTrackSet(n int, c float64) *TrackSet {
	values := make([]float64, n)
	for i := range values {
		values[i] = c
	}
	return &TrackSet{
		Interval: Interval{Start: 0, End: int32(n)},
		Names:    []string{"t"},
		Values:   [][]float64{values},
	}
}

func TestWindowCount(t *testing.T) {
	ref := constantTrackSet(100, 1)
	alt := constantTrackSet(100, 1)
	for _, c := range []struct {
		start, end, w int
		want          int
	}{
		{0, 100, 10, 91},
		{20, 80, 10, 51},
		{-50, 150, 10, 91}, // clips to [0, 100)
		{40, 45, 10, 0},    // too small
		{40, 40, 1, 0},
		{0, 100, 100, 1},
	} {
		scores := WindowScores(alt, ref, c.start, c.end, c.w, 1e-8)
		got := 0
		if scores != nil {
			got = len(scores[0])
		}
		if got != c.want {
			t.Errorf("window count for [%d,%d) w=%d: got %d, want %d", c.start, c.end, c.w, got, c.want)
		}
		nWindows := NumWindows(c.start, c.end, c.w, 100)
		if (nWindows <= 0) != (scores == nil) {
			t.Errorf("NumWindows and WindowScores disagree for [%d,%d) w=%d", c.start, c.end, c.w)
		}
		if nWindows > 0 && nWindows != got {
			t.Errorf("NumWindows for [%d,%d) w=%d: got %d, want %d", c.start, c.end, c.w, nWindows, got)
		}
	}
}

func TestWindowScoresConstantSignal(t *testing.T) {
	// ref constant c, alt constant c*(1+d): every score converges to d
	// as epsilon goes to 0.
	const c, d = 2.0, 0.5
	ref := constantTrackSet(200, c)
	alt := constantTrackSet(200, c*(1+d))
	scores := WindowScores(alt, ref, 0, 200, 25, 1e-12)
	if len(scores) != 1 || len(scores[0]) != 176 {
		t.Fatal("unexpected score shape")
	}
	for i, s := range scores[0] {
		if math.Abs(s-d) > 1e-9 {
			t.Errorf("score %d: got %v, want %v", i, s, d)
		}
	}
}

func TestWindowScoresZeroReference(t *testing.T) {
	// epsilon keeps a zero reference from dividing by zero
	ref := constantTrackSet(50, 0)
	alt := constantTrackSet(50, 0)
	scores := WindowScores(alt, ref, 0, 50, 5, 1e-8)
	for _, s := range scores[0] {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatal("zero reference must stay finite: ", s)
		}
	}
}

func TestWindowScoresNaNPropagation(t *testing.T) {
	ref := constantTrackSet(50, 1)
	alt := constantTrackSet(50, 1)
	ref.Values[0][30] = math.NaN()
	scores := WindowScores(alt, ref, 0, 50, 5, 1e-8)
	// windows that end at or before the NaN stay finite
	for j := 0; j+5 <= 30; j++ {
		if math.IsNaN(scores[0][j]) {
			t.Errorf("window %d must be finite", j)
		}
	}
	// the prefix sums poison every window reaching past the NaN
	for j := 27; j < len(scores[0]); j++ {
		if !math.IsNaN(scores[0][j]) {
			t.Errorf("window %d must be NaN", j)
		}
	}
}

func TestNaNStats(t *testing.T) {
	values := []float64{math.NaN(), 2, -1, math.NaN(), 5}
	if mean := NaNMean(values); mean != 2 {
		t.Error("NaNMean failed: ", mean)
	}
	if max := NaNMax(values); max != 5 {
		t.Error("NaNMax failed: ", max)
	}
	if min := NaNMin(values); min != -1 {
		t.Error("NaNMin failed: ", min)
	}
	allNaN := []float64{math.NaN(), math.NaN()}
	if !math.IsNaN(NaNMean(allNaN)) || !math.IsNaN(NaNMax(allNaN)) || !math.IsNaN(NaNMin(allNaN)) {
		t.Error("reductions over all-NaN input must be NaN")
	}
	if !math.IsNaN(NaNMean(nil)) {
		t.Error("reductions over empty input must be NaN")
	}
}
