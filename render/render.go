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

// Package render draws scan results as PNG plots. Every call builds
// its own plot and returns a self-contained artifact; there is no
// drawing state shared between calls.
package render

import (
	"image/color"
	"math"
	"path/filepath"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/exascience/elscan/internal"
	"github.com/exascience/elscan/scan"
	"github.com/exascience/elscan/signal"
)

var (
	refColor    = color.RGBA{B: 255, A: 255}
	altColor    = color.RGBA{R: 255, A: 255}
	guideColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	regionColor = color.NRGBA{R: 255, A: 70}
)

// Renderer writes plots into a directory. It implements scan.Renderer.
type Renderer struct {
	Dir string
}

// New returns a renderer that writes into dir, creating it if needed.
func New(dir string) *Renderer {
	internal.MkdirAll(dir, 0700)
	return &Renderer{Dir: dir}
}

// OverlayPlot renders the aligned reference and alternate signal,
// averaged across tracks, over a plotWidth-wide window centered like
// the prediction interval, with a vertical marker at the variant.
func (r *Renderer) OverlayPlot(unit *scan.UnitResult, plotWidth int32, name string) (scan.Artifact, error) {
	p := plot.New()
	p.Title.Text = unit.Variant.String() + " " + unit.Tissue
	p.X.Label.Text = "genomic position"
	p.Y.Label.Text = "predicted signal"

	window := unit.Alt.Interval.Resize(plotWidth)
	refLine, err := meanLine(unit.AlignedRef, window, refColor)
	if err != nil {
		return scan.Artifact{}, err
	}
	altLine, err := meanLine(unit.Alt, window, altColor)
	if err != nil {
		return scan.Artifact{}, err
	}
	marker, err := verticalLine(float64(unit.Variant.Pos), unit.AlignedRef, unit.Alt, window)
	if err != nil {
		return scan.Artifact{}, err
	}
	p.Add(refLine, altLine, marker)
	p.Legend.Add("REF", refLine)
	p.Legend.Add("ALT", altLine)
	p.Legend.Top = true

	return r.save(p, name, 8*vg.Inch, 3*vg.Inch)
}

// ScorePlot renders the window scores of one track, with dashed
// guides at +-threshold and the detected regions shaded.
func (r *Renderer) ScorePlot(tr scan.TrackResult, threshold float64, title, name string) (scan.Artifact, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "window index"
	p.Y.Label.Text = "ALT/REF-1"

	lo, hi := scoreBounds(tr.Scores, threshold)
	for _, region := range tr.Regions {
		span, err := plotter.NewPolygon(plotter.XYs{
			{X: float64(region.Start), Y: lo},
			{X: float64(region.End), Y: lo},
			{X: float64(region.End), Y: hi},
			{X: float64(region.Start), Y: hi},
		})
		if err != nil {
			return scan.Artifact{}, err
		}
		span.Color = regionColor
		span.LineStyle.Color = color.Transparent
		p.Add(span)
	}

	for _, level := range []float64{threshold, -threshold} {
		guide, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: level},
			{X: float64(len(tr.Scores) - 1), Y: level},
		})
		if err != nil {
			return scan.Artifact{}, err
		}
		guide.Color = guideColor
		guide.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(guide)
	}

	points := make(plotter.XYs, 0, len(tr.Scores))
	for i, s := range tr.Scores {
		if math.IsNaN(s) {
			continue
		}
		points = append(points, plotter.XY{X: float64(i), Y: s})
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return scan.Artifact{}, err
	}
	p.Add(line)
	p.Legend.Add("score", line)
	p.Legend.Top = true

	return r.save(p, name, 8*vg.Inch, 3*vg.Inch)
}

// save writes the plot under a name suffixed with the artifact ID, so
// repeated renders of the same unit never overwrite each other.
func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (scan.Artifact, error) {
	id := uuid.New().String()
	path := filepath.Join(r.Dir, name+"-"+id+".png")
	if err := p.Save(w, h, path); err != nil {
		return scan.Artifact{}, err
	}
	return scan.Artifact{ID: id, Path: path}, nil
}

// meanLine builds a line of the across-track mean signal over the
// window, clipped to the track interval and skipping NaN samples.
func meanLine(ts *signal.TrackSet, window signal.Interval, c color.Color) (*plotter.Line, error) {
	lo := int(window.Start - ts.Interval.Start)
	hi := int(window.End - ts.Interval.Start)
	if lo < 0 {
		lo = 0
	}
	if n := ts.Len(); hi > n {
		hi = n
	}
	points := make(plotter.XYs, 0, hi-lo)
	column := make([]float64, ts.NumTracks())
	for i := lo; i < hi; i++ {
		for t := range column {
			column[t] = ts.Values[t][i]
		}
		mean := signal.NaNMean(column)
		if math.IsNaN(mean) {
			continue
		}
		points = append(points, plotter.XY{
			X: float64(ts.Interval.Start) + float64(i),
			Y: mean,
		})
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = c
	return line, nil
}

// verticalLine marks the variant position over the signal range of
// both track sets within the window.
func verticalLine(x float64, ref, alt *signal.TrackSet, window signal.Interval) (*plotter.Line, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ts := range []*signal.TrackSet{ref, alt} {
		a := int(window.Start - ts.Interval.Start)
		b := int(window.End - ts.Interval.Start)
		if a < 0 {
			a = 0
		}
		if n := ts.Len(); b > n {
			b = n
		}
		for _, track := range ts.Values {
			for _, v := range track[a:b] {
				if math.IsNaN(v) {
					continue
				}
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
	if err != nil {
		return nil, err
	}
	line.Color = guideColor
	line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	return line, nil
}

// scoreBounds picks the vertical extent used for region shading.
func scoreBounds(scores []float64, threshold float64) (float64, float64) {
	lo := signal.NaNMin(scores)
	hi := signal.NaNMax(scores)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return -threshold, threshold
	}
	return math.Min(lo, -threshold), math.Max(hi, threshold)
}
