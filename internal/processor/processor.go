package processor

import (
	"errors"
	"fmt"
	"os"

	"github.com/deploymenttheory/go-filesig/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filesig/internal/logger"
)

// ErrFileNotFound is returned when the inspected path does not name a file
var ErrFileNotFound = errors.New("file does not exist")

// Processor runs a single file through the signature analyzer
type Processor struct {
	analyzer fileanalyzer.Analyzer
	hash     bool
}

// New creates a Processor over table. When hash is set, a SHA3-256 digest
// of the whole file is attached to each result.
func New(table *fileanalyzer.Table, hash bool) *Processor {
	return &Processor{
		analyzer: fileanalyzer.NewSignatureAnalyzer(table),
		hash:     hash,
	}
}

// Inspect identifies filePath. A missing path is reported before any
// stream is opened.
func (p *Processor) Inspect(filePath string) (*fileanalyzer.Result, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		// Stat failures other than absence fall through: the analyzer
		// records the read error as the sample.
		logger.Debugf("Stat failed for %s: %v", filePath, err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, filePath)
	}

	result, err := p.analyzer.Analyze(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", filePath, err)
	}

	if p.hash {
		digest, err := fileDigest(filePath)
		if err != nil {
			logger.Warningf("Failed to hash %s: %v", filePath, err)
		} else {
			result.SHA3Hash = digest
		}
	}

	return result, nil
}
