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

	"github.com/exascience/elscan/variants"
)

// VcfToVariantsHelp is the help string for this command.
const VcfToVariantsHelp = "vcf-to-variants parameters:\n" +
	"elscan vcf-to-variants vcf-file variants-file\n" +
	"[--log-path path]\n"

// VcfToVariants implements the elscan vcf-to-variants command. It
// converts a VCF into the canonical tab-separated variant table
// (first ALT allele only).
func VcfToVariants() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 4, VcfToVariantsHelp)

	input := getFilename(os.Args[2], VcfToVariantsHelp)
	table := getFilename(os.Args[3], VcfToVariantsHelp)

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

	vars, err := variants.FromFile(input, variants.DefaultColumns)
	if err != nil {
		return err
	}
	if err := variants.WriteTable(table, vars); err != nil {
		return err
	}
	log.Println("Wrote variant table to", table)
	return nil
}
