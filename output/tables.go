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

// Package output serializes scan result rows and variant x tissue
// summaries to tables. The table format follows from the output file
// extension: .tsv/.txt are tab-separated, .xlsx/.xls are spreadsheets,
// everything else is comma-separated.
package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/elscan/scan"
)

// RowHeader is the column order of the detailed results table.
var RowHeader = []string{
	"chrom", "pos", "ref", "alt", "tissue", "track_name",
	"is_significant", "n_regions", "region_index",
	"rel_start_bp", "rel_end_bp", "abs_start_bp", "abs_end_bp",
	"mean_score", "max_score", "min_score", "direction", "plot_file",
}

// SummaryHeader is the column order of the summary table.
var SummaryHeader = []string{
	"chrom", "pos", "ref", "alt", "tissue", "is_significant_any", "track_name",
}

// WriteRows writes the detailed results table.
func WriteRows(path string, rows []scan.Row) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowRecord(row))
	}
	return writeTable(path, RowHeader, records)
}

// WriteSummaries writes the variant x tissue summary table.
func WriteSummaries(path string, summaries []scan.Summary) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Chrom,
			strconv.FormatInt(int64(s.Pos), 10),
			s.Ref,
			s.Alt,
			s.Tissue,
			strconv.FormatBool(s.AnySignificant),
			strings.Join(s.SignificantTracks, ","),
		})
	}
	return writeTable(path, SummaryHeader, records)
}

// SummaryPath derives the summary table path from the results table
// path by appending _variant_tissue_summary to the stem.
func SummaryPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + "_variant_tissue_summary" + ext
}

func rowRecord(row scan.Row) []string {
	relStart, relEnd, absStart, absEnd := "", "", "", ""
	if row.Significant {
		relStart = strconv.Itoa(row.RelStart)
		relEnd = strconv.Itoa(row.RelEnd)
		absStart = strconv.Itoa(row.AbsStart)
		absEnd = strconv.Itoa(row.AbsEnd)
	}
	return []string{
		row.Chrom,
		strconv.FormatInt(int64(row.Pos), 10),
		row.Ref,
		row.Alt,
		row.Tissue,
		row.Track,
		strconv.FormatBool(row.Significant),
		strconv.Itoa(row.NumRegions),
		strconv.Itoa(row.RegionIndex),
		relStart, relEnd, absStart, absEnd,
		formatScore(row.Stats.Mean),
		formatScore(row.Stats.Max),
		formatScore(row.Stats.Min),
		string(row.Direction),
		row.PlotFile,
	}
}

func formatScore(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func parseScore(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ReadRows reads a detailed results table back, for re-deriving the
// summary. Spreadsheet tables cannot be read back; use csv or tsv.
func ReadRows(path string) (rows []scan.Row, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		return nil, fmt.Errorf("cannot read results back from a %v table; use csv or tsv", ext)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	return readRows(file, delimiterFor(ext))
}

func readRows(r io.Reader, comma rune) ([]scan.Row, error) {
	records, err := readTable(r, comma)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty results table")
	}
	index := make(map[string]int)
	for i, name := range records[0] {
		index[name] = i
	}
	for _, name := range RowHeader {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("results table misses column %v", name)
		}
	}
	rows := make([]scan.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		field := func(name string) string { return record[index[name]] }
		pos, err := strconv.ParseInt(field("pos"), 10, 32)
		if err != nil {
			return nil, err
		}
		significant, err := strconv.ParseBool(field("is_significant"))
		if err != nil {
			return nil, err
		}
		numRegions, err := strconv.Atoi(field("n_regions"))
		if err != nil {
			return nil, err
		}
		regionIndex, err := strconv.Atoi(field("region_index"))
		if err != nil {
			return nil, err
		}
		row := scan.Row{
			Chrom:       field("chrom"),
			Pos:         int32(pos),
			Ref:         field("ref"),
			Alt:         field("alt"),
			Tissue:      field("tissue"),
			Track:       field("track_name"),
			Significant: significant,
			NumRegions:  numRegions,
			RegionIndex: regionIndex,
			Direction:   scan.Direction(field("direction")),
			PlotFile:    field("plot_file"),
		}
		if significant {
			bounds := []struct {
				name string
				dst  *int
			}{
				{"rel_start_bp", &row.RelStart},
				{"rel_end_bp", &row.RelEnd},
				{"abs_start_bp", &row.AbsStart},
				{"abs_end_bp", &row.AbsEnd},
			}
			for _, b := range bounds {
				value, err := strconv.Atoi(field(b.name))
				if err != nil {
					return nil, err
				}
				*b.dst = value
			}
		}
		if row.Stats.Mean, err = parseScore(field("mean_score")); err != nil {
			return nil, err
		}
		if row.Stats.Max, err = parseScore(field("max_score")); err != nil {
			return nil, err
		}
		if row.Stats.Min, err = parseScore(field("min_score")); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
