package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"surveystat/app"
	"surveystat/internal/errors"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeOutput renders v as indented JSON or as block-style YAML.
func writeOutput(w io.Writer, format string, v interface{}) error {
	var (
		out []byte
		err error
	)
	switch format {
	case formatYAML:
		out, err = toYAML(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	_, err = w.Write(out)
	return err
}

// toYAML goes through JSON so that custom JSON encodings and field names
// carry over unchanged.
func toYAML(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// loadOptions reads analysis options from a YAML file. An empty path yields
// zero options, which the service fills from its defaults.
func loadOptions(path string) (app.Options, error) {
	var opts app.Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "failed to read options file %s", path)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.WithCode(errors.CodeValidationError, fmt.Errorf("invalid options file %s: %w", path, err))
	}
	return opts, nil
}
