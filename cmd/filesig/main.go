package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-filesig/internal/config"
	"github.com/deploymenttheory/go-filesig/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filesig/internal/logger"
	"github.com/deploymenttheory/go-filesig/internal/processor"
	"github.com/deploymenttheory/go-filesig/internal/report"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "1.0.1"

// Exit codes
const (
	exitFailure      = 1
	exitFileMissing  = 1
	exitTableMissing = 2
)

var errorColor = color.New(color.FgRed)

// exitError carries a process exit status through cobra
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	rootCmd := newRootCmd(nil)
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		logger.Errorf("Error executing command: %v", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command. A nil resolver locates the table next to
// the executable unless --table is given.
func newRootCmd(resolver config.Resolver) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filesig <file_path> [-ext]",
		Short: "Identify a file's type from its magic number",
		Long: `Identify a file by comparing its first 50 bytes against a whitelist of
known signatures stored in ` + config.DefaultTableName + ` next to the executable.

  filesig <file_path>      : Display file path, extension, hex signature, and signature description.
  filesig <file_path> -ext : Display extension only.
  filesig -h               : Display this help message.`,
		Version:          version,
		Args:             cobra.ArbitraryArgs,
		SilenceErrors:    true,
		SilenceUsage:     true,
		PersistentPreRun: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, resolver)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stderr")

	rootCmd.Flags().Bool("ext", false, "display the matched extension only")
	rootCmd.Flags().StringP("table", "t", "", "signature table (default is "+config.DefaultTableName+" beside the executable)")
	rootCmd.Flags().StringP("format", "f", config.FormatText, "output format: text, json or plist")
	rootCmd.Flags().Bool("hash", false, "include the SHA3-256 digest of the file")

	return rootCmd
}

// normalizeArgs rewrites the single-dash -ext switch into its long form so
// pflag does not read it as the shorthand cluster -e -x -t. Arguments after
// a "--" terminator are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	terminated := false
	for i, a := range args {
		if a == "--" {
			terminated = true
		}
		if !terminated && a == "-ext" {
			a = "--ext"
		}
		out[i] = a
	}
	return out
}

// setupLogging configures the logger based on command line flags
func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		logger.DisableColors()
		color.NoColor = true
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("Failed to open log file: %v", err)
		} else {
			logger.DisableColors()
			logger.Initialize(file)
			logger.Infof("Logging to file: %s", logFile)
		}
	}
	logger.Debugf("Debug logging enabled")
}

func runCheck(cmd *cobra.Command, args []string, resolver config.Resolver) error {
	out := cmd.OutOrStdout()

	tablePath, _ := cmd.Flags().GetString("table")
	if tablePath != "" {
		logger.Infof("Using signature table from --table: %s", tablePath)
		resolver = config.StaticResolver{Path: tablePath}
	} else if resolver == nil {
		resolver = config.NewExecutableResolver()
	}

	path, err := resolver.TablePath()
	if err != nil {
		printError(out, "Error: cannot locate signature table: %v", err)
		return &exitError{code: exitTableMissing, err: err}
	}

	table, err := fileanalyzer.LoadTable(path)
	if err != nil {
		if errors.Is(err, fileanalyzer.ErrTableNotFound) {
			printError(out, "Error: File %s is not present with file type signature. File must be located with the filesig executable!", path)
		} else {
			printError(out, "Error: %v", err)
		}
		return &exitError{code: exitTableMissing, err: err}
	}

	if len(args) < 1 {
		fmt.Fprintln(out, "At least one param is required")
		fmt.Fprintf(out, "Run '%s -h' for usage.\n", cmd.CommandPath())
		return nil
	}
	if len(args) > 1 {
		logger.Debugf("Ignoring extra arguments: %v", args[1:])
	}

	cfg, err := parseConfig(cmd, args[0], path)
	if err != nil {
		printError(out, "Error: %v", err)
		return &exitError{code: exitFailure, err: err}
	}

	proc := processor.New(table, cfg.Hash)
	result, err := proc.Inspect(cfg.FilePath)
	if err != nil {
		if errors.Is(err, processor.ErrFileNotFound) {
			printError(out, "Error: File '%s' does not exist!", cfg.FilePath)
			return &exitError{code: exitFileMissing, err: err}
		}
		printError(out, "Error: %v", err)
		return &exitError{code: exitFailure, err: err}
	}

	return report.Write(out, result, cfg.Format, cfg.ExtOnly)
}

func parseConfig(cmd *cobra.Command, filePath, tablePath string) (config.Config, error) {
	extOnly, _ := cmd.Flags().GetBool("ext")
	format, _ := cmd.Flags().GetString("format")
	hash, _ := cmd.Flags().GetBool("hash")

	cfg := config.Config{
		FilePath:  filePath,
		ExtOnly:   extOnly,
		TablePath: tablePath,
		Format:    format,
		Hash:      hash,
	}
	return cfg, cfg.Validate()
}

func printError(w io.Writer, format string, a ...interface{}) {
	errorColor.Fprintf(w, format+"\n", a...)
}
