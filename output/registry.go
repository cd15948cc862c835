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
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/exascience/elscan/internal"
)

// tableWriter writes one header plus records table to w.
type tableWriter func(w io.Writer, header []string, records [][]string) error

// writers maps a lower-case file extension to its table writer.
// Unknown extensions fall back to csv.
var writers = map[string]tableWriter{
	".csv":  delimitedWriter(','),
	".tsv":  delimitedWriter('\t'),
	".txt":  delimitedWriter('\t'),
	".xlsx": writeXLSX,
	".xls":  writeXLSX,
}

func writeTable(path string, header []string, records [][]string) (err error) {
	writer, ok := writers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		writer = delimitedWriter(',')
	}
	file := internal.FileCreate(path)
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	return writer(file, header, records)
}

func delimitedWriter(comma rune) tableWriter {
	return func(w io.Writer, header []string, records [][]string) error {
		writer := csv.NewWriter(w)
		writer.Comma = comma
		if err := writer.Write(header); err != nil {
			return err
		}
		if err := writer.WriteAll(records); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	}
}

func delimiterFor(ext string) rune {
	switch ext {
	case ".tsv", ".txt":
		return '\t'
	default:
		return ','
	}
}

func readTable(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	return reader.ReadAll()
}
