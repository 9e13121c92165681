package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.Newf("unsupported format: %s (use yaml or json)", s)
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer receives everything printed. Tests swap it out.
var Writer io.Writer = os.Stdout

// TreeResult is the top-level output of the `tree` command.
type TreeResult struct {
	TreeID      string              `yaml:"tree_id"                json:"tree_id"`
	Events      int                 `yaml:"events"                 json:"events"`
	Focus       *int32              `yaml:"focus,omitempty"        json:"focus,omitempty"`
	InputMethod bool                `yaml:"input_method,omitempty" json:"input_method,omitempty"`
	Elements    []model.FlatElement `yaml:"elements"               json:"elements"`
}

// ChangesResult is one event's effect on the client tree as printed by
// `replay --changes`.
type ChangesResult struct {
	Seq     int              `yaml:"seq"               json:"seq"`
	Event   model.EventType  `yaml:"event"             json:"event"`
	Changes []model.UIChange `yaml:"changes,omitempty" json:"changes,omitempty"`
	Events  []model.AXEvent  `yaml:"events,omitempty"  json:"events,omitempty"`
}

// Print serializes v to Writer in the current output format.
func Print(v interface{}) error {
	return Fprint(Writer, OutputFormat, v)
}

// Fprint serializes v to w in the given format.
func Fprint(w io.Writer, format Format, v interface{}) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return errors.Newf("unsupported output format: %s", format)
	}
}

// PrintJSON serializes v to Writer as compact single-line JSON.
func PrintJSON(v interface{}) error {
	return writeJSON(Writer, v, false)
}

// PrintPrettyJSON serializes v to Writer as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	return writeJSON(Writer, v, true)
}

// PrintYAML serializes v to Writer as YAML.
func PrintYAML(v interface{}) error {
	return writeYAML(Writer, v)
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "json encode")
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "yaml encode")
	}
	return enc.Close()
}
