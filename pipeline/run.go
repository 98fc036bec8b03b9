package pipeline

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	cpet "github.com/doctorfill-dev/TCP-report-generator"
)

// Run analyzes one export file and writes the full report bundle:
//   - manifest.json
//   - report.json
//   - smoothed_samples.parquet (or .csv)
//   - zone_segments.json
//   - zone_table.json
//   - notes.txt
//   - source.xml (optional)
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.XMLPath) == "" {
		return nil, fmt.Errorf("xml path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}

	info, err := os.Stat(opts.XMLPath)
	if err != nil {
		return nil, fmt.Errorf("stat xml file: %w", err)
	}
	if info.Size() > maxInputBytes {
		return nil, fmt.Errorf("xml file too large: %d bytes (max %d)", info.Size(), int64(maxInputBytes))
	}

	data, err := os.ReadFile(opts.XMLPath)
	if err != nil {
		return nil, fmt.Errorf("read xml file: %w", err)
	}
	sum := sha256.Sum256(data)
	sha := hex.EncodeToString(sum[:])

	report, err := cpet.Analyze(string(data), opts.Sport)
	if err != nil {
		return nil, fmt.Errorf("analyze xml file: %w", err)
	}

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}

	reportPath := filepath.Join(opts.OutDir, "report.json")
	if err := writeJSON(reportPath, report); err != nil {
		return nil, fmt.Errorf("write report.json: %w", err)
	}

	samplesPath := filepath.Join(opts.OutDir, "smoothed_samples."+formatExtension(format))
	switch format {
	case "csv":
		err = writeSamplesCSV(samplesPath, report.SmoothedSeries)
	case "parquet":
		err = writeSamplesParquet(samplesPath, report.SmoothedSeries)
	}
	if err != nil {
		return nil, fmt.Errorf("write smoothed samples: %w", err)
	}

	segmentsPath := filepath.Join(opts.OutDir, "zone_segments.json")
	if err := writeJSON(segmentsPath, report.ZoneSegments); err != nil {
		return nil, fmt.Errorf("write zone_segments.json: %w", err)
	}

	zoneTablePath := filepath.Join(opts.OutDir, "zone_table.json")
	if err := writeJSON(zoneTablePath, report.ZoneTable); err != nil {
		return nil, fmt.Errorf("write zone_table.json: %w", err)
	}

	notesPath := filepath.Join(opts.OutDir, "notes.txt")
	if err := os.WriteFile(notesPath, []byte(report.Notes+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write notes.txt: %w", err)
	}

	sourceCopyPath := ""
	if opts.CopySource {
		sourceCopyPath = filepath.Join(opts.OutDir, "source.xml")
		if err := copyFile(opts.XMLPath, sourceCopyPath); err != nil {
			return nil, fmt.Errorf("copy source xml file: %w", err)
		}
	}

	manifest := Manifest{
		FormatVersion:   BundleFormatVersion,
		GeneratedAt:     time.Now().UTC(),
		SourceFile:      opts.XMLPath,
		SourceFileName:  filepath.Base(opts.XMLPath),
		SourceSHA256:    sha,
		SourceSizeBytes: int64(len(data)),
		Sport:           string(report.Sport),
		TestType:        string(report.TestType),
		ReportPath:      filepath.Base(reportPath),
		SamplesPath:     filepath.Base(samplesPath),
		SegmentsPath:    filepath.Base(segmentsPath),
		ZoneTablePath:   filepath.Base(zoneTablePath),
		NotesPath:       filepath.Base(notesPath),
		SampleCount:     len(report.SmoothedSeries),
		SegmentCount:    len(report.ZoneSegments),
	}
	manifestPath := filepath.Join(opts.OutDir, "manifest.json")
	if err := writeJSON(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write manifest.json: %w", err)
	}

	return &Result{
		OutputDir:      opts.OutDir,
		ManifestPath:   manifestPath,
		ReportPath:     reportPath,
		SamplesPath:    samplesPath,
		SegmentsPath:   segmentsPath,
		ZoneTablePath:  zoneTablePath,
		NotesPath:      notesPath,
		SourceCopyPath: sourceCopyPath,
		SampleCount:    len(report.SmoothedSeries),
		SegmentCount:   len(report.ZoneSegments),
		TestType:       string(report.TestType),
	}, nil
}

func formatExtension(format string) string {
	if format == "csv" {
		return "csv"
	}
	return "parquet"
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

type smoothedParquetRow struct {
	ElapsedS float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	VO2LMin  float64 `parquet:"name=vo2_l_min, type=DOUBLE"`
	HRBPM    float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	VELMin   float64 `parquet:"name=ve_l_min, type=DOUBLE"`
}

func writeSamplesParquet(path string, points []cpet.SmoothedPoint) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(smoothedParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, p := range points {
		row := smoothedParquetRow{
			ElapsedS: p.ElapsedSeconds,
			VO2LMin:  p.VO2,
			HRBPM:    p.HeartRate,
			VELMin:   p.Ventilation,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func writeSamplesCSV(path string, points []cpet.SmoothedPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"elapsed_s", "vo2_l_min", "hr_bpm", "ve_l_min"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			formatFloat(p.ElapsedSeconds),
			formatFloat(p.VO2),
			formatFloat(p.HeartRate),
			formatFloat(p.Ventilation),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
