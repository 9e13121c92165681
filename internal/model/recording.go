package model

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Recording is a captured sequence of Android accessibility events that can
// be replayed through a bridge.
type Recording struct {
	// FullFocusMode, when set, overrides the configured focus mode for replay.
	FullFocusMode *bool   `yaml:"full_focus_mode,omitempty" json:"full_focus_mode,omitempty"`
	Events        []Event `yaml:"events"                    json:"events"`
}

// LoadRecording reads a recording from a YAML or JSON file.
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load recording")
	}
	return ParseRecording(data)
}

// ParseRecording decodes a recording. JSON input is accepted since it is
// valid YAML.
func ParseRecording(data []byte) (*Recording, error) {
	var rec Recording
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "decode recording")
	}
	for i := range rec.Events {
		if len(rec.Events[i].Windows) == 0 {
			return nil, errors.Newf("event %d (%s) has no windows", i, rec.Events[i].Type)
		}
	}
	return &rec, nil
}

// SaveRecording writes a recording, choosing JSON for a .json path and YAML
// otherwise.
func SaveRecording(path string, rec *Recording) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(rec, "", "  ")
	} else {
		data, err = yaml.Marshal(rec)
	}
	if err != nil {
		return errors.Wrap(err, "marshal recording")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "save recording")
	}
	return nil
}
