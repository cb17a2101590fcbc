package hexdump

import (
	"errors"
	"io"
	"os"
	"strings"
)

// SampleSize is the number of leading bytes inspected per file
const SampleSize = 50

const hexChars = "0123456789ABCDEF"

// Sample reads at most SampleSize bytes from the start of a file.
// The file handle is closed before returning.
func Sample(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return buf[:n], nil
}

// Encode renders bytes as uppercase hex with no separators
func Encode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteByte(hexChars[c>>4])
		sb.WriteByte(hexChars[c&0x0F])
	}
	return sb.String()
}

// Render returns the hex form of a file's leading bytes. When the file
// cannot be read the error text is returned instead. That text includes the
// path, so matchers should use Sample and skip unreadable files.
func Render(path string) string {
	sample, err := Sample(path)
	if err != nil {
		return err.Error()
	}
	return Encode(sample)
}
