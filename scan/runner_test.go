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
	"context"
	"sync"
	"testing"

	"github.com/exascience/elscan/signal"
	"github.com/exascience/elscan/variants"
)

// fakePredictor serves small deterministic track sets: the signal
// around the variant diverges only for the divergent tissue.
type fakePredictor struct {
	divergentTissue string
}

func (f *fakePredictor) PredictVariant(_ context.Context, _ signal.Interval, v variants.Variant, tissue string) (*signal.TrackSet, *signal.TrackSet, error) {
	interval := signal.Interval{Start: v.Pos - 200, End: v.Pos + 200}
	patches := map[int]float64{}
	if tissue == f.divergentTissue {
		for i := 190; i < 210; i++ {
			patches[i] = 3
		}
	}
	ref, alt := testTracks(400, patches)
	ref.Interval = interval
	alt.Interval = interval
	return ref, alt, nil
}

// recordingRenderer counts render calls without drawing anything.
type recordingRenderer struct {
	mutex    sync.Mutex
	overlays []string
	scores   []string
}

func (r *recordingRenderer) OverlayPlot(unit *UnitResult, plotWidth int32, name string) (Artifact, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.overlays = append(r.overlays, name)
	return Artifact{ID: name, Path: name + ".png"}, nil
}

func (r *recordingRenderer) ScorePlot(tr TrackResult, threshold float64, title, name string) (Artifact, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.scores = append(r.scores, name)
	return Artifact{ID: name, Path: name + ".png"}, nil
}

func testRunner(renderer Renderer) *Runner {
	cfg := testConfig
	cfg.ScanSpan = 100
	cfg.MinLength = 5
	return &Runner{
		Predictor: &fakePredictor{divergentTissue: "UBERON:2"},
		Config:    cfg,
		Tissues:   []string{"UBERON:1", "UBERON:2"},
		Renderer:  renderer,
	}
}

func TestRunnerRun(t *testing.T) {
	renderer := &recordingRenderer{}
	runner := testRunner(renderer)
	vars := []variants.Variant{
		{Chrom: "chr1", Pos: 1000, Ref: "A", Alt: "T"},
		{Chrom: "chr2", Pos: 5000, Ref: "G", Alt: "C"},
	}
	rows, err := runner.Run(context.Background(), vars)
	if err != nil {
		t.Fatal(err)
	}
	// one row per (variant, tissue, track): each fake unit has one
	// track with at most one region
	if len(rows) != 4 {
		t.Fatal("expected 4 rows, got ", len(rows))
	}
	summaries := Summarize(rows)
	if len(summaries) != 4 {
		t.Fatal("expected 4 groups, got ", len(summaries))
	}
	for _, s := range summaries {
		want := s.Tissue == "UBERON:2"
		if s.AnySignificant != want {
			t.Errorf("significance for %v: got %v, want %v", s.SummaryKey, s.AnySignificant, want)
		}
	}
	// overlays are rendered for the significant units only, and the
	// artifact path is back-filled on the unit's rows
	if len(renderer.overlays) != 2 || len(renderer.scores) != 2 {
		t.Error("render call counts wrong: ", renderer.overlays, renderer.scores)
	}
	for _, row := range rows {
		if row.Significant && row.PlotFile == "" {
			t.Error("significant row misses its plot file")
		}
		if !row.Significant && row.PlotFile != "" {
			t.Error("non-significant unit must not carry a plot file")
		}
	}
}

func TestRunnerCancellation(t *testing.T) {
	runner := testRunner(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err := runner.Run(ctx, []variants.Variant{{Chrom: "chr1", Pos: 1000, Ref: "A", Alt: "T"}})
	if err == nil {
		t.Error("a canceled run must report the context error")
	}
	if len(rows) != 0 {
		t.Error("a run canceled up front must not produce rows")
	}
}
