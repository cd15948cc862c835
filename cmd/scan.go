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
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/exascience/elscan/output"
	"github.com/exascience/elscan/predict"
	"github.com/exascience/elscan/render"
	"github.com/exascience/elscan/scan"
	"github.com/exascience/elscan/variants"
)

// ScanHelp is the help string for this command.
const ScanHelp = "\nscan parameters:\n" +
	"elscan scan variants-file output-table\n" +
	"[--tissues list]\n" +
	"[--threshold score]\n" +
	"[--min-length bp]\n" +
	"[--merge-distance bp]\n" +
	"[--window-size bp]\n" +
	"[--scan-span bp]\n" +
	"[--epsilon nr]\n" +
	"[--plot-non-sig]\n" +
	"[--scan-all-tracks]\n" +
	"[--no-plots]\n" +
	"[--output-dir dir]\n" +
	"[--endpoint url]\n" +
	"[--api-key key]\n" +
	"[--chrom-col name]\n" +
	"[--pos-col name]\n" +
	"[--ref-col name]\n" +
	"[--alt-col name]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile prefix]\n" +
	"[--log-path path]\n"

// defaultTissues is the demo tissue list of the scanner.
var defaultTissues = []string{
	"UBERON:0000992", "UBERON:0002371", "UBERON:0000948",
	"UBERON:0000955", "UBERON:0001134", "UBERON:0001264",
}

// Scan implements the elscan scan command.
func Scan() error {
	var (
		tissues       string
		cfg           scan.Config
		plotNonSig    bool
		scanAllTracks bool
		noPlots       bool
		outputDir     string
		endpoint      string
		apiKey        string
		cols          variants.Columns
		nrOfThreads   int
		timed         bool
		profile       string
		logPath       string
	)

	var flags flag.FlagSet

	flags.StringVar(&tissues, "tissues", "", "comma-separated UBERON terms to scan (default: demo list)")
	flags.Float64Var(&cfg.Threshold, "threshold", 0.5, "|ALT/REF-1| score threshold")
	flags.IntVar(&cfg.MinLength, "min-length", 1000, "minimum bp length of a merged region")
	flags.IntVar(&cfg.MergeDistance, "merge-distance", 300, "maximum bp gap between merged regions")
	flags.IntVar(&cfg.WindowSize, "window-size", 100, "sliding window size in bp")
	flags.IntVar(&cfg.ScanSpan, "scan-span", 50000, "bp on each side of the variant to scan")
	flags.Float64Var(&cfg.Epsilon, "epsilon", 1e-8, "added to REF window means to avoid division by zero")
	flags.BoolVar(&plotNonSig, "plot-non-sig", false, "render plots even when no track is significant")
	flags.BoolVar(&scanAllTracks, "scan-all-tracks", false, "render score plots for all significant tracks")
	flags.BoolVar(&noPlots, "no-plots", false, "disable rendering altogether")
	flags.StringVar(&outputDir, "output-dir", "elscan_plots", "directory for plot images")
	flags.StringVar(&endpoint, "endpoint", "", "expression model endpoint URL")
	flags.StringVar(&apiKey, "api-key", "", "expression model API key; default from ELSCAN_API_KEY")
	flags.StringVar(&cols.Chrom, "chrom-col", variants.DefaultColumns.Chrom, "variant table column: chromosome")
	flags.StringVar(&cols.Pos, "pos-col", variants.DefaultColumns.Pos, "variant table column: 1-based position")
	flags.StringVar(&cols.Ref, "ref-col", variants.DefaultColumns.Ref, "variant table column: reference bases")
	flags.StringVar(&cols.Alt, "alt-col", variants.DefaultColumns.Alt, "variant table column: alternate bases")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, ScanHelp)

	input := getFilename(os.Args[2], ScanHelp)
	table := getFilename(os.Args[3], ScanHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", table) {
		sanityChecksFailed = true
	}
	if cfg.Threshold <= 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid threshold: ", cfg.Threshold)
	}
	if cfg.WindowSize < 1 {
		sanityChecksFailed = true
		log.Println("Error: Invalid window-size: ", cfg.WindowSize)
	}
	if cfg.MinLength < 1 {
		sanityChecksFailed = true
		log.Println("Error: Invalid min-length: ", cfg.MinLength)
	}
	if cfg.MergeDistance < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid merge-distance: ", cfg.MergeDistance)
	}
	if cfg.Epsilon <= 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid epsilon: ", cfg.Epsilon)
	}
	if 2*cfg.ScanSpan < cfg.WindowSize {
		sanityChecksFailed = true
		log.Println("Error: scan-span too small for window-size: ", cfg.ScanSpan)
	}
	if endpoint == "" {
		sanityChecksFailed = true
		log.Println("Error: Missing --endpoint for the expression model.")
	}
	if apiKey == "" {
		apiKey = os.Getenv("ELSCAN_API_KEY")
	}
	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		os.Exit(1)
	}

	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}

	tissueList := defaultTissues
	if tissues != "" {
		tissueList = strings.Split(tissues, ",")
	}

	runner := &scan.Runner{
		Predictor:     predict.NewClient(endpoint, apiKey),
		Config:        cfg,
		Tissues:       tissueList,
		PlotNonSig:    plotNonSig,
		ScanAllTracks: scanAllTracks,
	}
	if !noPlots {
		runner.Renderer = render.New(outputDir)
	}

	var vars []variants.Variant
	err := timedRun(timed, profile, "Loading variant table.", 1, func() (err error) {
		vars, err = variants.FromFile(input, cols)
		return err
	})
	if err != nil {
		return err
	}

	var rows []scan.Row
	err = timedRun(timed, profile, "Scanning variants.", 2, func() (err error) {
		rows, err = runner.Run(context.Background(), vars)
		return err
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		log.Println("No results generated.")
		return nil
	}

	return timedRun(timed, profile, "Writing result tables.", 3, func() error {
		if err := output.WriteRows(table, rows); err != nil {
			return err
		}
		summaryPath := output.SummaryPath(table)
		if err := output.WriteSummaries(summaryPath, scan.Summarize(rows)); err != nil {
			return err
		}
		log.Println("Wrote detailed results to", table)
		log.Println("Wrote variant x tissue summary to", summaryPath)
		return nil
	})
}
