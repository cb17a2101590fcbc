package hexdump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte{0x00}, "00"},
		{[]byte{0xFF, 0xD8, 0xFF, 0xE0}, "FFD8FFE0"},
		{[]byte("%PDF"), "25504446"},
		{[]byte{0x0a, 0xbc}, "0ABC"},
	}

	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%x) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderShortFile(t *testing.T) {
	path := writeFile(t, "short.bin", []byte{0xFF, 0xD8, 0xFF})

	if got := Render(path); got != "FFD8FF" {
		t.Errorf("Render() = %q, want %q", got, "FFD8FF")
	}
}

func TestRenderBoundedToSampleSize(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, SampleSize*3)
	path := writeFile(t, "long.bin", data)

	got := Render(path)
	if len(got) != SampleSize*2 {
		t.Fatalf("Render() length = %d, want %d", len(got), SampleSize*2)
	}
	if got != strings.Repeat("AB", SampleSize) {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.bin", nil)

	if got := Render(path); got != "" {
		t.Errorf("Render() = %q, want empty string", got)
	}
}

func TestRenderMissingFileReturnsErrorText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")

	got := Render(path)
	if got == "" {
		t.Fatal("Render() returned empty string for missing file")
	}
	if !strings.Contains(got, "missing.bin") {
		t.Errorf("Render() = %q, expected the error text", got)
	}
}

func TestSampleMissingFile(t *testing.T) {
	if _, err := Sample(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Sample() expected error for missing file")
	}
}
