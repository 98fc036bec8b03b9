package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	cpet "github.com/doctorfill-dev/TCP-report-generator"
)

const maxInputBytes = 50 << 20

func main() {
	var (
		sport   = flag.String("sport", "endurance", "Zone model: endurance (5 zones) or other (3 zones)")
		jsonOut = flag.Bool("json", false, "Emit full report as JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <path-to-xml-export>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	filePath := flag.Arg(0)
	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}
	if info.Size() > maxInputBytes {
		fmt.Fprintf(os.Stderr, "file too large: %d bytes (max %d)\n", info.Size(), int64(maxInputBytes))
		os.Exit(1)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}

	report, err := cpet.Analyze(string(data), cpet.SportType(*sport))
	if err != nil {
		var cerr *cpet.Error
		if errors.As(err, &cerr) {
			fmt.Fprintf(os.Stderr, "analyse impossible (%s):\n", cerr.Kind)
			for _, msg := range cerr.Messages {
				fmt.Fprintf(os.Stderr, "- %s\n", msg)
			}
		} else {
			fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		}
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(report.Notes)
}
