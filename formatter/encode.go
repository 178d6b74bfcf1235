package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders docs to w in the given format.
func Write(w io.Writer, format Format, docs []*Document) error {
	switch format {
	case FormatText, "":
		return Text(w, docs)
	case FormatJSON:
		return JSON(w, docs)
	case FormatYAML:
		return YAML(w, docs)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func JSON(w io.Writer, docs []*Document) error {
	if docs == nil {
		docs = []*Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling documents to JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func YAML(w io.Writer, docs []*Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("error encoding documents to YAML: %w", err)
	}
	return enc.Close()
}
