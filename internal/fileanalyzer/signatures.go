package fileanalyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/xi2/xz"

	"github.com/deploymenttheory/go-filesig/internal/logger"
)

// ErrTableNotFound is returned when the signature table file does not exist
var ErrTableNotFound = errors.New("signature table not found")

// Patterns shorter than this are anchored at the start of the sample
const minFloatingPattern = 4

// Signature is one row of the signature table: hex|extensions|description
type Signature struct {
	Hex         string
	Extensions  string
	Description string
	Line        int
}

// MalformedRow is a non-empty table line with fewer than three fields
type MalformedRow struct {
	Line int
	Text string
}

// Table holds signature rows in file order
type Table struct {
	Source     string
	Signatures []Signature
	Skipped    []MalformedRow
}

// Match is a table row accepted by Find
type Match struct {
	Signature   Signature
	ByExtension bool // accepted by the extension-checked pass
}

// Matches reports whether the rendered hex sample carries this signature
func (s *Signature) Matches(hex string) bool {
	if s.Hex == "" {
		return false
	}
	if len(s.Hex) < minFloatingPattern {
		return strings.HasPrefix(hex, s.Hex)
	}
	return strings.Contains(hex, s.Hex)
}

// LoadTable reads a signature table from disk. Tables ending in .gz, .zst
// or .xz are decompressed on the fly.
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTableNotFound, path)
		}
		return nil, fmt.Errorf("failed to open signature table: %w", err)
	}
	defer file.Close()

	r, closer, err := decompress(file, path)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress signature table %s: %w", path, err)
	}
	if closer != nil {
		defer closer()
	}

	return ParseTable(r, path)
}

func decompress(r io.Reader, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case ".xz":
		xr, err := xz.NewReader(r, 0)
		if err != nil {
			return nil, nil, err
		}
		return xr, nil, nil
	default:
		return r, nil, nil
	}
}

// ParseTable parses signature rows from r. Blank lines are ignored and rows
// with fewer than three fields are skipped and recorded in Table.Skipped.
func ParseTable(r io.Reader, source string) (*Table, error) {
	table := &Table{Source: source}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "|", 3)
		if len(fields) < 3 {
			logger.Warningf("Skipping malformed signature row %d in %s: %q", lineNo, source, line)
			table.Skipped = append(table.Skipped, MalformedRow{Line: lineNo, Text: line})
			continue
		}

		table.Signatures = append(table.Signatures, Signature{
			Hex:         strings.ToUpper(strings.TrimSpace(fields[0])),
			Extensions:  strings.TrimSpace(fields[1]),
			Description: strings.TrimSpace(fields[2]),
			Line:        lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signature table %s: %w", source, err)
	}

	logger.Debugf("Loaded %d signatures from %s (%d malformed rows skipped)",
		len(table.Signatures), source, len(table.Skipped))
	return table, nil
}

// Find returns the first row whose pattern matches hex. The first pass also
// requires ext to appear in the row's extension field; when nothing passes,
// a second pass ignores the extension.
func (t *Table) Find(hex, ext string) (Match, bool) {
	for _, checkExt := range []bool{true, false} {
		for i := range t.Signatures {
			sig := &t.Signatures[i]
			if !sig.Matches(hex) {
				continue
			}
			if checkExt && !strings.Contains(sig.Extensions, ext) {
				continue
			}
			logger.Debugf("Signature match on line %d (%s), extension checked: %t", sig.Line, sig.Hex, checkExt)
			return Match{Signature: *sig, ByExtension: checkExt}, true
		}
	}
	return Match{}, false
}
