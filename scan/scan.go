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

// Package scan implements the divergence scan of a variant against
// predicted reference/alternate signal tracks: indel alignment,
// sliding-window scoring, region calling, classification into result
// rows, and the variant x tissue significance summary.
package scan

import (
	"fmt"

	"github.com/exascience/elscan/signal"
	"github.com/exascience/elscan/variants"
)

// Config holds the scan parameters. MinLength, MergeDistance, ScanSpan
// and WindowSize are in base pairs; because windows advance one sample
// per base, base-pair distances and window-index distances coincide.
type Config struct {
	Threshold     float64
	MinLength     int
	MergeDistance int
	WindowSize    int
	ScanSpan      int
	Epsilon       float64
}

// Direction labels the sign structure of a region's scores.
type Direction string

const (
	// Up means the whole region scores positive.
	Up Direction = "up"
	// Down means the whole region scores negative.
	Down Direction = "down"
	// Mixed means the region's scores disagree in sign.
	Mixed Direction = "mixed"
	// None is the direction of a track without regions.
	None Direction = "none"
)

// Stats are NaN-aware summary statistics over a score span. All three
// are NaN when the span holds no finite score; such rows are still
// emitted, with the stats meaning undefined rather than absent.
type Stats struct {
	Mean, Max, Min float64
}

// Row is one result record: per (variant, tissue, track) when no
// region was found, per (variant, tissue, track, region) otherwise.
type Row struct {
	Chrom       string
	Pos         int32
	Ref         string
	Alt         string
	Tissue      string
	Track       string
	Significant bool
	NumRegions  int
	RegionIndex int // -1 when not significant
	RelStart    int // bp relative to the variant position; undefined when not significant
	RelEnd      int
	AbsStart    int
	AbsEnd      int
	Stats       Stats
	Direction   Direction
	PlotFile    string
}

// TrackResult holds the scores, regions and rows of a single track.
type TrackResult struct {
	Name    string
	Scores  []float64
	Regions []Region
	Rows    []Row
}

// UnitResult is the outcome of scanning one (variant, tissue) unit.
// AlignedRef supersedes the raw reference for all downstream use.
type UnitResult struct {
	Variant    variants.Variant
	Tissue     string
	AlignedRef *signal.TrackSet
	Alt        *signal.TrackSet
	Tracks     []TrackResult
	Truncated  int // samples dropped by clipping the scan span
}

// Rows returns the rows of all tracks, in track order.
func (u *UnitResult) Rows() []Row {
	var rows []Row
	for _, tr := range u.Tracks {
		rows = append(rows, tr.Rows...)
	}
	return rows
}

// AnySignificant reports whether any track detected a region.
func (u *UnitResult) AnySignificant() bool {
	for _, tr := range u.Tracks {
		if len(tr.Regions) > 0 {
			return true
		}
	}
	return false
}

// SetPlotFile records the rendered artifact path on all rows of the
// unit, before the unit's buffer is merged into the run's results.
func (u *UnitResult) SetPlotFile(path string) {
	for t := range u.Tracks {
		rows := u.Tracks[t].Rows
		for i := range rows {
			rows[i].PlotFile = path
		}
	}
}

// ScanVariant scans one (variant, tissue) unit of work. The reference
// is re-indexed first when the variant is an indel; scores are then
// computed over a window of ScanSpan base pairs on each side of the
// variant, and regions are called and classified per track. A unit
// with no tracks, with mismatched track shapes, or whose clipped scan
// span holds no complete window yields a non-nil error; such errors
// are non-fatal skips for the caller.
func ScanVariant(v variants.Variant, tissue string, ref, alt *signal.TrackSet, cfg Config) (*UnitResult, error) {
	if alt.NumTracks() == 0 {
		return nil, fmt.Errorf("no tracks available for %v in %v", tissue, v)
	}
	if ref.NumTracks() != alt.NumTracks() || ref.Len() != alt.Len() {
		return nil, fmt.Errorf("reference/alternate track shape mismatch for %v in %v", tissue, v)
	}

	aligned := ref
	if lengthAlter := v.LengthAlter(); lengthAlter != 0 {
		aligned = signal.AlignReference(ref, v.Pos, lengthAlter)
	}

	center := int(v.Pos - alt.Interval.Start)
	start, end := signal.ClipScan(center-cfg.ScanSpan, center+cfg.ScanSpan, alt.Len())
	truncated := 2*cfg.ScanSpan - (end - start)

	scores := signal.WindowScores(alt, aligned, start, end, cfg.WindowSize, cfg.Epsilon)
	if scores == nil {
		return nil, fmt.Errorf("scan span/window too large/small near edges for %v", v)
	}

	unit := &UnitResult{
		Variant:    v,
		Tissue:     tissue,
		AlignedRef: aligned,
		Alt:        alt,
		Truncated:  truncated,
	}
	for t, trackScores := range scores {
		tr := TrackResult{
			Name:    alt.Name(t),
			Scores:  trackScores,
			Regions: CallRegions(trackScores, cfg.Threshold, cfg.MinLength, cfg.MergeDistance),
		}
		tr.Rows = classify(v, tissue, tr, start, center, cfg.WindowSize)
		unit.Tracks = append(unit.Tracks, tr)
	}
	return unit, nil
}

// classify builds the result rows of one track: one row per region,
// or exactly one non-significant row carrying whole-array stats when
// no region was found.
func classify(v variants.Variant, tissue string, tr TrackResult, start, center, windowSize int) []Row {
	base := Row{
		Chrom:  v.Chrom,
		Pos:    v.Pos,
		Ref:    v.Ref,
		Alt:    v.Alt,
		Tissue: tissue,
		Track:  tr.Name,
	}
	if len(tr.Regions) == 0 {
		row := base
		row.NumRegions = 0
		row.RegionIndex = -1
		row.Stats = spanStats(tr.Scores)
		row.Direction = None
		return []Row{row}
	}
	rows := make([]Row, 0, len(tr.Regions))
	for i, region := range tr.Regions {
		row := base
		row.Significant = true
		row.NumRegions = len(tr.Regions)
		row.RegionIndex = i
		row.RelStart = start + region.Start - center
		row.RelEnd = start + region.End + windowSize - 1 - center
		row.AbsStart = int(v.Pos) + row.RelStart
		row.AbsEnd = int(v.Pos) + row.RelEnd
		row.Stats = spanStats(tr.Scores[region.Start : region.End+1])
		row.Direction = direction(row.Stats)
		rows = append(rows, row)
	}
	return rows
}

func spanStats(scores []float64) Stats {
	return Stats{
		Mean: signal.NaNMean(scores),
		Max:  signal.NaNMax(scores),
		Min:  signal.NaNMin(scores),
	}
}

// direction is up only when the entire region scores positive, down
// only when it scores entirely negative, and mixed otherwise. NaN
// stats compare false everywhere and therefore classify as mixed.
func direction(st Stats) Direction {
	switch {
	case st.Mean > 0 && st.Min > 0:
		return Up
	case st.Mean < 0 && st.Max < 0:
		return Down
	default:
		return Mixed
	}
}
