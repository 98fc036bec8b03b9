package pipeline

import (
	"time"

	cpet "github.com/doctorfill-dev/TCP-report-generator"
)

const (
	// BundleFormatVersion identifies the on-disk schema of the report bundle.
	BundleFormatVersion = "cpet_report_bundle_v1"

	// maxInputBytes caps the accepted export size. The library itself is
	// size-agnostic; the cap belongs to the file-reading boundary.
	maxInputBytes = 50 << 20
)

// Options configures one report-bundle run.
type Options struct {
	XMLPath    string
	OutDir     string
	Sport      cpet.SportType
	Format     string // parquet|csv
	Overwrite  bool
	CopySource bool
}

// Result returns generated output paths and bundle counts.
type Result struct {
	OutputDir      string `json:"output_dir"`
	ManifestPath   string `json:"manifest_path"`
	ReportPath     string `json:"report_path"`
	SamplesPath    string `json:"samples_path"`
	SegmentsPath   string `json:"segments_path"`
	ZoneTablePath  string `json:"zone_table_path"`
	NotesPath      string `json:"notes_path"`
	SourceCopyPath string `json:"source_copy_path,omitempty"`
	SampleCount    int    `json:"sample_count"`
	SegmentCount   int    `json:"segment_count"`
	TestType       string `json:"test_type"`
}

// Manifest captures bundle metadata and pointers to the generated files.
type Manifest struct {
	FormatVersion   string    `json:"format_version"`
	GeneratedAt     time.Time `json:"generated_at"`
	SourceFile      string    `json:"source_file"`
	SourceFileName  string    `json:"source_file_name"`
	SourceSHA256    string    `json:"source_sha256"`
	SourceSizeBytes int64     `json:"source_size_bytes"`
	Sport           string    `json:"sport"`
	TestType        string    `json:"test_type"`
	ReportPath      string    `json:"report_path"`
	SamplesPath     string    `json:"samples_path"`
	SegmentsPath    string    `json:"segments_path"`
	ZoneTablePath   string    `json:"zone_table_path"`
	NotesPath       string    `json:"notes_path"`
	SampleCount     int       `json:"sample_count"`
	SegmentCount    int       `json:"segment_count"`
}
