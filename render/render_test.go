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

package render

import (
	"os"
	"strings"
	"testing"

	"github.com/exascience/elscan/scan"
	"github.com/exascience/elscan/signal"
	"github.com/exascience/elscan/variants"
)

func testUnit() *scan.UnitResult {
	n := 50
	interval := signal.Interval{Start: 0, End: int32(n)}
	refValues := make([]float64, n)
	altValues := make([]float64, n)
	for i := range refValues {
		refValues[i] = 1
		altValues[i] = 1
	}
	for i := 20; i < 30; i++ {
		altValues[i] = 2
	}
	ref := &signal.TrackSet{Interval: interval, Names: []string{"t"}, Values: [][]float64{refValues}}
	alt := &signal.TrackSet{Interval: interval, Names: []string{"t"}, Values: [][]float64{altValues}}
	return &scan.UnitResult{
		Variant:    variants.Variant{Chrom: "chr1", Pos: 25, Ref: "A", Alt: "T"},
		Tissue:     "UBERON:1",
		AlignedRef: ref,
		Alt:        alt,
	}
}

func checkArtifact(t *testing.T, artifact scan.Artifact) {
	t.Helper()
	if artifact.ID == "" {
		t.Error("artifact must carry an ID")
	}
	if !strings.Contains(artifact.Path, artifact.ID) {
		t.Error("artifact ID must be part of its path: ", artifact)
	}
	if _, err := os.Stat(artifact.Path); err != nil {
		t.Error(err)
	}
}

func TestOverlayPlot(t *testing.T) {
	renderer := New(t.TempDir())
	unit := testUnit()
	artifact1, err := renderer.OverlayPlot(unit, 40, "UBERON:1_1_chr1_25")
	if err != nil {
		t.Fatal(err)
	}
	checkArtifact(t, artifact1)
	// rendering the same unit again must not overwrite the first plot
	artifact2, err := renderer.OverlayPlot(unit, 40, "UBERON:1_1_chr1_25")
	if err != nil {
		t.Fatal(err)
	}
	checkArtifact(t, artifact2)
	if artifact1.Path == artifact2.Path || artifact1.ID == artifact2.ID {
		t.Error("repeated renders must produce distinct artifacts")
	}
}

func TestScorePlot(t *testing.T) {
	renderer := New(t.TempDir())
	tr := scan.TrackResult{
		Name:    "t",
		Scores:  []float64{0, 0.6, 0.7, 0, 0, 0.55, 0},
		Regions: []scan.Region{{Start: 1, End: 5}},
	}
	artifact, err := renderer.ScorePlot(tr, 0.5, "chr1:25:A>T UBERON:1 t", "UBERON:1_1_chr1_25_scores_0")
	if err != nil {
		t.Fatal(err)
	}
	checkArtifact(t, artifact)
}
