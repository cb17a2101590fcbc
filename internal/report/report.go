package report

import (
	"encoding/json"
	"fmt"
	"io"

	"howett.net/plist"

	"github.com/deploymenttheory/go-filesig/internal/config"
	"github.com/deploymenttheory/go-filesig/internal/fileanalyzer"
)

// UnknownSignature is printed when no table row matches
const UnknownSignature = "Unknown signature."

const rule = "-------------------------------------------------------------"

// Write renders res in the given format
func Write(w io.Writer, res *fileanalyzer.Result, format string, extOnly bool) error {
	switch format {
	case config.FormatJSON:
		return JSON(w, res)
	case config.FormatPlist:
		return Plist(w, res)
	default:
		return Text(w, res, extOnly)
	}
}

// Text writes the human-readable block, or only the extension field when
// extOnly is set
func Text(w io.Writer, res *fileanalyzer.Result, extOnly bool) error {
	if !res.Known {
		_, err := fmt.Fprintln(w, UnknownSignature)
		return err
	}

	if extOnly {
		_, err := fmt.Fprintln(w, res.Extensions)
		return err
	}

	_, err := fmt.Fprintf(w, "%s\nFile:          %s\nExtension(s):  %s\nHex signature: %s\nDescription:   %s\n",
		rule, res.FilePath, res.Extensions, res.Hex, res.Description)
	if err != nil {
		return err
	}
	if res.SHA3Hash != "" {
		if _, err := fmt.Fprintf(w, "SHA3-256:      %s\n", res.SHA3Hash); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, rule)
	return err
}

// JSON writes res as indented JSON
func JSON(w io.Writer, res *fileanalyzer.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(res)
}

// Plist writes res as an XML property list
func Plist(w io.Writer, res *fileanalyzer.Result) error {
	encoder := plist.NewEncoderForFormat(w, plist.XMLFormat)
	encoder.Indent("\t")
	if err := encoder.Encode(res); err != nil {
		return fmt.Errorf("failed to encode plist: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}
