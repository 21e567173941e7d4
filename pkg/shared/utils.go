package shared

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// Data formats.
const (
	CSV   = "csv"
	JSONL = "jsonl"
)

// Type settings used to assign types to loaded columns.
const (
	Dynamic = "dynamic"
	AllText = "alltext"
)

// Sources a benchmark can read from.
const (
	FileSource     = "file"
	PostgresSource = "postgres"
)

func IsGZIPFile(file string) bool {
	return strings.HasSuffix(strings.ToLower(file), ".gz")
}

// DetectFormat guesses the data format from the file extension, ignoring a trailing .gz.
func DetectFormat(file string) string {
	name := strings.ToLower(file)
	name = strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(name) {
	case ".jsonl", ".json", ".ndjson":
		return JSONL
	default:
		return CSV
	}
}

func FormatNumber[T int | int64](n T) string {
	return humanize.Comma(int64(n))
}

// FormatSize humanizes a byte count; negative counts are "unknown".
func FormatSize(n int64) string {
	if n < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(n))
}

func ValidTypeSetting(t string) bool {
	return t == Dynamic || t == AllText
}
