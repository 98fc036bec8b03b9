package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cpet "github.com/doctorfill-dev/TCP-report-generator"
	"github.com/doctorfill-dev/TCP-report-generator/pipeline"
)

func main() {
	var (
		xmlPath   = flag.String("xml", "", "Path to input spreadsheet-XML export")
		outDir    = flag.String("out", "", "Output directory")
		sport     = flag.String("sport", "endurance", "Zone model: endurance|other")
		format    = flag.String("format", "parquet", "Smoothed sample format: parquet|csv")
		overwrite = flag.Bool("overwrite", false, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --xml export.xml --out outdir [--sport endurance|other] [--format parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*xmlPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		XMLPath:    *xmlPath,
		OutDir:     *outDir,
		Sport:      cpet.SportType(*sport),
		Format:     *format,
		Overwrite:  *overwrite,
		CopySource: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cpet_analyze failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("cpet_analyze complete\n")
	fmt.Printf("Output dir:        %s\n", result.OutputDir)
	fmt.Printf("manifest.json:     %s\n", result.ManifestPath)
	fmt.Printf("report.json:       %s\n", result.ReportPath)
	fmt.Printf("smoothed samples:  %s (%d points)\n", result.SamplesPath, result.SampleCount)
	fmt.Printf("zone segments:     %s (%d segments)\n", result.SegmentsPath, result.SegmentCount)
	fmt.Printf("zone table:        %s\n", result.ZoneTablePath)
	fmt.Printf("notes:             %s\n", result.NotesPath)
	if result.SourceCopyPath != "" {
		fmt.Printf("source copy:       %s\n", result.SourceCopyPath)
	}
	fmt.Printf("test type:         %s\n", result.TestType)
}
