package config

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultTableName is the signature table expected next to the executable
const DefaultTableName = "ext_list.txt"

// Output formats
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatPlist = "plist"
)

// Config holds the settings for one invocation
type Config struct {
	FilePath  string
	ExtOnly   bool
	TablePath string
	Format    string
	Hash      bool
}

// Resolver locates the signature table
type Resolver interface {
	TablePath() (string, error)
}

// StaticResolver always returns Path
type StaticResolver struct {
	Path string
}

func (r StaticResolver) TablePath() (string, error) {
	return r.Path, nil
}

// ExecutableResolver looks for Name in the directory of the running
// executable, then in the working directory. When neither exists the
// executable-dir path is returned so the caller can report it.
type ExecutableResolver struct {
	Name string

	executable func() (string, error)
}

// NewExecutableResolver creates a resolver for the default table name
func NewExecutableResolver() *ExecutableResolver {
	return &ExecutableResolver{Name: DefaultTableName}
}

func (r *ExecutableResolver) TablePath() (string, error) {
	name := r.Name
	if name == "" {
		name = DefaultTableName
	}

	exe := r.executable
	if exe == nil {
		exe = os.Executable
	}

	exePath, err := exe()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}
	candidate := filepath.Join(filepath.Dir(exePath), name)
	if fileExists(candidate) {
		return candidate, nil
	}

	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, name)
		if fileExists(local) {
			return local, nil
		}
	}

	return candidate, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Validate checks the fields that flags cannot constrain
func (c Config) Validate() error {
	if c.FilePath == "" {
		return errors.New("a file path is required")
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatPlist:
		return nil
	default:
		return errors.New("unsupported format " + c.Format + " (want text, json or plist)")
	}
}
