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

package cmd

import (
	"flag"
	"log"
	"os"

	"github.com/exascience/elscan/output"
	"github.com/exascience/elscan/scan"
)

// SummarizeHelp is the help string for this command.
const SummarizeHelp = "summarize parameters:\n" +
	"elscan summarize results-table summary-table\n" +
	"[--log-path path]\n"

// Summarize implements the elscan summarize command. It re-derives
// the variant x tissue summary from an existing detailed results
// table.
func Summarize() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 4, SummarizeHelp)

	input := getFilename(os.Args[2], SummarizeHelp)
	table := getFilename(os.Args[3], SummarizeHelp)

	setLogOutput(logPath)

	var sanityChecksFailed bool
	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", table) {
		sanityChecksFailed = true
	}
	if sanityChecksFailed {
		os.Exit(1)
	}

	rows, err := output.ReadRows(input)
	if err != nil {
		return err
	}
	if err := output.WriteSummaries(table, scan.Summarize(rows)); err != nil {
		return err
	}
	log.Println("Wrote variant x tissue summary to", table)
	return nil
}
