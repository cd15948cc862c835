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

// elScan scans predicted expression effects of genomic variants
// across tissues: it asks a remote expression model for reference and
// alternate signal tracks around each variant, detects sub-regions
// where the two diverge beyond a tolerance, and writes the detected
// regions and a per-tissue significance summary as tables.
//
// Please see https://github.com/exascience/elscan for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elscan/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: scan, summarize, vcf-to-variants")
	fmt.Fprint(os.Stderr, "\n", cmd.ScanHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SummarizeHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.VcfToVariantsHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = cmd.Scan()
	case "summarize":
		err = cmd.Summarize()
	case "vcf-to-variants":
		err = cmd.VcfToVariants()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command: ", os.Args[1])
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
