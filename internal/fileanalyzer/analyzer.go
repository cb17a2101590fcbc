package fileanalyzer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/deploymenttheory/go-filesig/internal/hexdump"
	"github.com/deploymenttheory/go-filesig/internal/logger"
)

// Result represents the analysis result for a file
type Result struct {
	FilePath    string    `json:"file" plist:"file"`
	Known       bool      `json:"known" plist:"known"`
	Extensions  string    `json:"extensions,omitempty" plist:"extensions,omitempty"`
	Hex         string    `json:"hex_signature,omitempty" plist:"hex_signature,omitempty"`
	Description string    `json:"description,omitempty" plist:"description,omitempty"`
	ByExtension bool      `json:"extension_checked" plist:"extension_checked"`
	Sample      string    `json:"sample" plist:"sample"`
	SHA3Hash    string    `json:"sha3_hash,omitempty" plist:"sha3_hash,omitempty"`
	AnalyzedAt  time.Time `json:"analyzed_at" plist:"analyzed_at"`
}

// Analyzer defines the interface for file analyzers
type Analyzer interface {
	Analyze(filePath string) (*Result, error)
}

// SignatureAnalyzer matches a file's leading bytes against a signature table
type SignatureAnalyzer struct {
	Table *Table
}

// NewSignatureAnalyzer creates an analyzer backed by table
func NewSignatureAnalyzer(table *Table) *SignatureAnalyzer {
	return &SignatureAnalyzer{Table: table}
}

// Analyze checks a file's signature against the table. An unreadable file
// is not an error: the result is unknown and its sample holds the read
// error. The error text is never matched, since it carries the path.
func (a *SignatureAnalyzer) Analyze(filePath string) (*Result, error) {
	result := &Result{
		FilePath:   filePath,
		AnalyzedAt: timeNow(),
	}

	data, err := hexdump.Sample(filePath)
	if err != nil {
		logger.Debugf("Failed to read sample from %s: %v", filePath, err)
		result.Sample = err.Error()
		return result, nil
	}
	result.Sample = hexdump.Encode(data)

	ext := FileExtension(filePath)
	logger.Debugf("Analyzing %s (extension %q, sample %s)", filePath, ext, result.Sample)

	match, ok := a.Table.Find(result.Sample, ext)
	if !ok {
		logger.Debugf("No signature matched for %s", filePath)
		return result, nil
	}

	result.Known = true
	result.Extensions = match.Signature.Extensions
	result.Hex = match.Signature.Hex
	result.Description = match.Signature.Description
	result.ByExtension = match.ByExtension
	return result, nil
}

// FileExtension returns the extension of a path without the leading dot
func FileExtension(filePath string) string {
	return strings.TrimPrefix(filepath.Ext(filePath), ".")
}

var timeNow = func() time.Time {
	return time.Now()
}
