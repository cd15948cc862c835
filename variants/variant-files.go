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

package variants

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/elscan/internal"
)

// Columns names the variant table columns that hold the chromosome,
// the 1-based position, the reference bases, and the alternate bases.
type Columns struct {
	Chrom, Pos, Ref, Alt string
}

// DefaultColumns are the canonical variant table column names.
var DefaultColumns = Columns{Chrom: "CHROM", Pos: "POS", Ref: "REF", Alt: "ALT"}

// FromFile loads a variant table. The format follows from the file
// extension: .tsv and .txt are tab-separated, .csv is comma-separated,
// .vcf is parsed as VCF (first ALT allele only). Any other extension
// is tried tab-first, then comma.
func FromFile(path string, cols Columns) (vars []Variant, err error) {
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return readDelimited(file, '\t', cols)
	case ".csv":
		return readDelimited(file, ',', cols)
	case ".vcf":
		return readVCF(file)
	default:
		vars, err = readDelimited(file, '\t', cols)
		if err == nil {
			return vars, nil
		}
		if _, serr := file.Seek(0, io.SeekStart); serr != nil {
			return nil, serr
		}
		return readDelimited(file, ',', cols)
	}
}

func readDelimited(r io.Reader, comma rune, cols Columns) ([]Variant, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty variant table")
	}
	index := make(map[string]int)
	for i, name := range records[0] {
		index[name] = i
	}
	var missing []string
	for _, name := range []string{cols.Chrom, cols.Pos, cols.Ref, cols.Alt} {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}
	vars := make([]Variant, 0, len(records)-1)
	for _, record := range records[1:] {
		pos, err := strconv.ParseInt(record[index[cols.Pos]], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid position %v in variant table: %v", record[index[cols.Pos]], err)
		}
		vars = append(vars, Variant{
			Chrom: record[index[cols.Chrom]],
			Pos:   int32(pos),
			Ref:   record[index[cols.Ref]],
			Alt:   record[index[cols.Alt]],
		})
	}
	return vars, nil
}

func readVCF(r io.Reader) ([]Variant, error) {
	var vars []Variant
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 0x10000), 0x1000000)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("truncated VCF line: %v", line)
		}
		pos, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid POS in VCF line: %v", err)
		}
		// multi-allelic records contribute their first ALT only
		alt := strings.SplitN(fields[4], ",", 2)[0]
		vars = append(vars, Variant{
			Chrom: fields[0],
			Pos:   int32(pos),
			Ref:   fields[3],
			Alt:   alt,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// WriteTable writes a canonical tab-separated variant table.
func WriteTable(path string, vars []Variant) (err error) {
	file := internal.FileCreate(path)
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	writer := bufio.NewWriter(file)
	fmt.Fprintln(writer, "CHROM\tPOS\tREF\tALT")
	for _, v := range vars {
		fmt.Fprintf(writer, "%s\t%d\t%s\t%s\n", v.Chrom, v.Pos, v.Ref, v.Alt)
	}
	return writer.Flush()
}
