package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formats accepted by Export.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes v as JSON or YAML.
func Export(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("printers: unsupported format %q", format)
	}
}

// Export writes v in format to the printer's output.
func (pp *PrettyPrint) Export(format string, v interface{}) error {
	return Export(pp.out(), format, v)
}
