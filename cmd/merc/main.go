// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command merc drives the macro classification and translation pipeline
// end to end: ingest analyzer facts, classify and translate every macro,
// overlay the result onto the source tree, and report a CSV and a plain
// text summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/stoewer/go-strcase"

	"github.com/appleseedlab/merc/config"
	"github.com/appleseedlab/merc/driver"
	"github.com/appleseedlab/merc/ingest"
	"github.com/appleseedlab/merc/merc"
	"github.com/appleseedlab/merc/overlay"
	"github.com/appleseedlab/merc/stats"
)

func main() {
	var (
		srcDir          = flag.String("src", "", "source directory to translate (required)")
		analyzerOutput  = flag.String("analyzer-output", "", "path to a single analyzer output JSON file")
		compileCommands = flag.String("compile-commands", "", "path to a compile_commands.json to fan the analyzer out over")
		analyzerPath    = flag.String("analyzer", "", "external analyzer binary, required with -compile-commands")
		jobs            = flag.Int("jobs", driver.DefaultJobs, "worker count for -compile-commands mode")
		outDir          = flag.String("out", "", "directory to write translated source under (required)")
		csvPath         = flag.String("csv", "", "path to write the CSV action report to")
		programName     = flag.String("program", "", "program name recorded in the CSV report (defaults to the source directory's base name, snake_cased)")
		intSize         = flag.Int("int-size", int(config.Int32), "enum-backing integer width, 16 or 32")
		readOnly        = flag.Bool("read-only", false, "make translated output files read-only")
	)
	flag.Parse()

	if *srcDir == "" || *outDir == "" {
		glog.Exit("merc: -src and -out are required")
	}
	if *analyzerOutput == "" && *compileCommands == "" {
		glog.Exit("merc: one of -analyzer-output or -compile-commands is required")
	}

	name := *programName
	if name == "" {
		name = strcase.SnakeCase(filepath.Base(filepath.Clean(*srcDir)))
	}

	cfg, err := config.New(
		config.WithIntSize(config.IntSize(*intSize)),
		config.WithSourceRoot(*srcDir),
	)
	if err != nil {
		glog.Exitf("merc: %v", err)
	}

	data, err := loadRecords(*analyzerOutput, *compileCommands, *analyzerPath, *jobs, *srcDir, *outDir)
	if err != nil {
		glog.Exitf("merc: %v", err)
	}

	pd, ingestErrs := ingest.Ingest(data, *srcDir)
	if ingestErrs.HasErrors() {
		for _, d := range ingestErrs.Diagnostics() {
			glog.Warning(d.String())
		}
		glog.Exit("merc: malformed analyzer output")
	}

	translator := merc.New(cfg)
	results, acc := translator.Translate(pd)

	writer := overlay.Writer{SourceRoot: *srcDir, OutputDir: *outDir, ReadOnly: *readOnly}
	if err := writer.ApplyAll(merc.Translations(results)); err != nil {
		glog.Exitf("merc: %v", err)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			glog.Exitf("merc: %v", err)
		}
		defer f.Close()
		if err := stats.WriteCSV(f, name, acc.Rows()); err != nil {
			glog.Exitf("merc: %v", err)
		}
	}

	if err := stats.WriteSummary(os.Stdout, acc); err != nil {
		glog.Exitf("merc: %v", err)
	}
}

// loadRecords produces the combined analyzer-record JSON stream either by
// reading a single file directly or by fanning the analyzer out over a
// compile_commands.json database and merging the per-translation-unit
// outputs.
func loadRecords(analyzerOutput, compileCommands, analyzerPath string, jobs int, srcDir, outDir string) ([]byte, error) {
	if compileCommands == "" {
		return os.ReadFile(analyzerOutput)
	}

	if analyzerPath == "" {
		return nil, fmt.Errorf("-analyzer is required with -compile-commands")
	}

	ccData, err := os.ReadFile(compileCommands)
	if err != nil {
		return nil, err
	}
	ccs, err := driver.LoadCompileCommands(ccData)
	if err != nil {
		return nil, err
	}

	opts := driver.Options{
		AnalyzerPath: analyzerPath,
		SrcDir:       srcDir,
		OutDir:       filepath.Join(outDir, ".merc-analyzer-cache"),
		Jobs:         jobs,
	}
	outputs, err := driver.Run(context.Background(), opts, ccs)
	if err != nil {
		return nil, err
	}
	return driver.Merge(outputs)
}
