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

package output

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/elscan/scan"
)

func testRows() []scan.Row {
	return []scan.Row{
		{
			Chrom: "chr1", Pos: 100, Ref: "A", Alt: "T",
			Tissue: "UBERON:1", Track: "trackA",
			Significant: true, NumRegions: 1, RegionIndex: 0,
			RelStart: -40, RelEnd: -36, AbsStart: 60, AbsEnd: 64,
			Stats:     scan.Stats{Mean: 1.25, Max: 2, Min: 0.5},
			Direction: scan.Up,
			PlotFile:  "plots/UBERON:1_1_chr1_100.png",
		},
		{
			Chrom: "chr1", Pos: 100, Ref: "A", Alt: "T",
			Tissue: "UBERON:2", Track: "trackA",
			NumRegions: 0, RegionIndex: -1,
			Stats:     scan.Stats{Mean: math.NaN(), Max: math.NaN(), Min: math.NaN()},
			Direction: scan.None,
		},
	}
}

func rowsEqual(row1, row2 scan.Row) bool {
	statsEqual := func(x, y float64) bool {
		if math.IsNaN(x) != math.IsNaN(y) {
			return false
		}
		return math.IsNaN(x) || x == y
	}
	if !statsEqual(row1.Stats.Mean, row2.Stats.Mean) ||
		!statsEqual(row1.Stats.Max, row2.Stats.Max) ||
		!statsEqual(row1.Stats.Min, row2.Stats.Min) {
		return false
	}
	row1.Stats = scan.Stats{}
	row2.Stats = scan.Stats{}
	return row1 == row2
}

func TestRowsRoundTrip(t *testing.T) {
	for _, name := range []string{"results.csv", "results.tsv"} {
		path := filepath.Join(t.TempDir(), name)
		rows := testRows()
		if err := WriteRows(path, rows); err != nil {
			t.Fatal(err)
		}
		loaded, err := ReadRows(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(loaded) != len(rows) {
			t.Fatal("row count changed in round trip")
		}
		for i := range rows {
			if !rowsEqual(rows[i], loaded[i]) {
				t.Errorf("%v row %d round trip failed: %v != %v", name, i, rows[i], loaded[i])
			}
		}
	}
}

func TestNonSignificantBoundsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := WriteRows(path, testRows()); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatal("expected header plus two records")
	}
	fields := strings.Split(lines[2], ",")
	for i := 9; i <= 12; i++ { // rel/abs bp bounds
		if fields[i] != "" {
			t.Error("non-significant bounds must be empty: ", fields[i])
		}
	}
	if !strings.Contains(lines[2], "NaN") {
		t.Error("NaN stats must serialize as NaN")
	}
}

func TestWriteSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	summaries := scan.Summarize(testRows())
	if err := WriteSummaries(path, summaries); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if lines[0] != strings.Join(SummaryHeader, ",") {
		t.Error("summary header wrong: ", lines[0])
	}
	if len(lines) != 3 {
		t.Fatal("expected header plus two summaries")
	}
	if !strings.Contains(lines[1], "true") || !strings.Contains(lines[1], "trackA") {
		t.Error("significant summary wrong: ", lines[1])
	}
	if !strings.Contains(lines[2], "false") {
		t.Error("non-significant summary wrong: ", lines[2])
	}
}

func TestSummaryPath(t *testing.T) {
	if p := SummaryPath("out/results.csv"); p != "out/results_variant_tissue_summary.csv" {
		t.Error("SummaryPath failed: ", p)
	}
	if p := SummaryPath("results.xlsx"); p != "results_variant_tissue_summary.xlsx" {
		t.Error("SummaryPath failed: ", p)
	}
}

func TestReadRowsRejectsSpreadsheets(t *testing.T) {
	if _, err := ReadRows("results.xlsx"); err == nil {
		t.Error("spreadsheets cannot be read back")
	}
}

func TestWriteRowsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := WriteRows(path, testRows()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty spreadsheet written")
	}
}
