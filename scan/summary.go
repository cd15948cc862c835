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

import "sort"

// SummaryKey identifies one (variant, tissue) group of result rows.
type SummaryKey struct {
	Chrom  string
	Pos    int32
	Ref    string
	Alt    string
	Tissue string
}

// Summary is one variant x tissue record: whether any track was
// significant, and the sorted, de-duplicated significant track names.
type Summary struct {
	SummaryKey
	AnySignificant    bool
	SignificantTracks []string
}

func (s SummaryKey) less(o SummaryKey) bool {
	if s.Chrom != o.Chrom {
		return s.Chrom < o.Chrom
	}
	if s.Pos != o.Pos {
		return s.Pos < o.Pos
	}
	if s.Ref != o.Ref {
		return s.Ref < o.Ref
	}
	if s.Alt != o.Alt {
		return s.Alt < o.Alt
	}
	return s.Tissue < o.Tissue
}

// Summarize groups result rows on their composite (variant, tissue)
// key, independent of row order, and derives the per-group summary.
// The result is sorted by key so that output is deterministic
// regardless of how worker buffers were concatenated.
func Summarize(rows []Row) []Summary {
	groups := make(map[SummaryKey]map[string]bool)
	for _, row := range rows {
		key := SummaryKey{Chrom: row.Chrom, Pos: row.Pos, Ref: row.Ref, Alt: row.Alt, Tissue: row.Tissue}
		tracks, ok := groups[key]
		if !ok {
			tracks = make(map[string]bool)
			groups[key] = tracks
		}
		if row.Significant {
			tracks[row.Track] = true
		}
	}
	summaries := make([]Summary, 0, len(groups))
	for key, tracks := range groups {
		summary := Summary{SummaryKey: key, AnySignificant: len(tracks) > 0}
		for name := range tracks {
			summary.SignificantTracks = append(summary.SignificantTracks, name)
		}
		sort.Strings(summary.SignificantTracks)
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SummaryKey.less(summaries[j].SummaryKey)
	})
	return summaries
}
