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
	"io"

	"github.com/xuri/excelize/v2"
)

// writeXLSX writes the table as a single-sheet spreadsheet. All cells
// are written as strings, matching the delimited writers.
func writeXLSX(w io.Writer, header []string, records [][]string) (err error) {
	file := excelize.NewFile()
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	sheet := file.GetSheetName(0)
	if err := setRow(file, sheet, 1, header); err != nil {
		return err
	}
	for i, record := range records {
		if err := setRow(file, sheet, i+2, record); err != nil {
			return err
		}
	}
	_, err = file.WriteTo(w)
	return err
}

func setRow(file *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return file.SetSheetRow(sheet, cell, &cells)
}
