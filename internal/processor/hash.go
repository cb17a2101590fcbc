package processor

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/deploymenttheory/go-filesig/internal/logger"
)

// fileDigest returns the SHA3-256 of the whole inspected file in lowercase
// hex, the form sha3sum prints. It backs --hash and runs after the sample
// read, so it reopens the file rather than extending the bounded read.
func fileDigest(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", filePath, err)
	}
	defer file.Close()

	h := sha3.New256()
	n, err := io.Copy(h, file)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", filePath, err)
	}
	logger.Debugf("Hashed %d bytes of %s", n, filePath)

	return hex.EncodeToString(h.Sum(nil)), nil
}
