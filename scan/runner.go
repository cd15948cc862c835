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
	"fmt"
	"log"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/elscan/predict"
	"github.com/exascience/elscan/variants"
)

// Runner drives a scan over tissues x variants. Every (variant,
// tissue) unit reads only its own predicted tracks and accumulates
// rows into its worker's buffer, so units run in parallel without
// locking; buffers are concatenated, never interleaved, before the
// summary is derived.
type Runner struct {
	Predictor     predict.Predictor
	Config        Config
	Tissues       []string
	PlotNonSig    bool
	ScanAllTracks bool
	Renderer      Renderer
}

// Run scans all variants for all tissues and returns the accumulated
// result rows. Tissues are processed in order; within a tissue the
// variants are fanned out across workers. Cancellation is checked
// between units; a canceled run returns the rows accumulated so far
// together with the context's error.
func (r *Runner) Run(ctx context.Context, vars []variants.Variant) ([]Row, error) {
	var rows []Row
	for _, tissue := range r.Tissues {
		result := parallel.RangeReduce(0, len(vars), 0, func(low, high int) interface{} {
			var buf []Row
			for i := low; i < high; i++ {
				if ctx.Err() != nil {
					return buf
				}
				buf = append(buf, r.scanUnit(ctx, tissue, i+1, vars[i])...)
			}
			return buf
		}, func(left, right interface{}) interface{} {
			return append(left.([]Row), right.([]Row)...)
		})
		rows = append(rows, result.([]Row)...)
		if ctx.Err() != nil {
			break
		}
	}
	return rows, ctx.Err()
}

func (r *Runner) scanUnit(ctx context.Context, tissue string, rank int, v variants.Variant) []Row {
	interval := v.ReferenceInterval().Resize(predict.SequenceLength1MB)
	ref, alt, err := r.Predictor.PredictVariant(ctx, interval, v, tissue)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("Warning: prediction failed for %v in %v: %v; skipping.", v, tissue, err)
		return nil
	}
	unit, err := ScanVariant(v, tissue, ref, alt, r.Config)
	if err != nil {
		log.Printf("Warning: %v; skipping.", err)
		return nil
	}
	if unit.Truncated > 0 {
		log.Printf("Warning: scan span truncated by %d samples at interval edges for %v in %v.", unit.Truncated, v, tissue)
	}
	r.render(unit, rank)
	return unit.Rows()
}

func (r *Runner) render(unit *UnitResult, rank int) {
	if r.Renderer == nil {
		return
	}
	significant := unit.AnySignificant()
	if !significant && !r.PlotNonSig {
		return
	}
	name := fmt.Sprintf("%s_%d_%s_%d", unit.Tissue, rank, unit.Variant.Chrom, unit.Variant.Pos)
	artifact, err := r.Renderer.OverlayPlot(unit, plotWidth(unit.Variant), name)
	if err != nil {
		log.Printf("Warning: could not render overlay %v: %v", name, err)
	} else {
		unit.SetPlotFile(artifact.Path)
	}
	if !significant {
		return
	}
	plotted := 0
	for t, tr := range unit.Tracks {
		if len(tr.Regions) == 0 {
			continue
		}
		if !r.ScanAllTracks && plotted > 0 {
			break
		}
		title := fmt.Sprintf("%v %s %s", unit.Variant, unit.Tissue, tr.Name)
		scoreName := fmt.Sprintf("%s_scores_%d", name, t)
		if _, err := r.Renderer.ScorePlot(tr, r.Config.Threshold, title, scoreName); err != nil {
			log.Printf("Warning: could not render scores %v: %v", scoreName, err)
		}
		plotted++
	}
}

// plotWidth reproduces the plot sizing heuristic of the scanner: wide
// indels get four times their own length, everything else 2^15 bases.
func plotWidth(v variants.Variant) int32 {
	la := v.LengthAlter()
	if la < 0 {
		la = -la
	}
	if la >= 1<<14 {
		return int32(4 * la)
	}
	return 1 << 15
}
