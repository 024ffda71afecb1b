package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnexpectedPayload = errors.New("unexpected question payload")

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// wrapperKeys are the object keys a payload may nest its record list under.
var wrapperKeys = []string{"questions", "results", "items"}

func FormatFor(name, contentType string) Format {
	lowerName := strings.ToLower(name)
	if strings.HasSuffix(lowerName, ".yaml") || strings.HasSuffix(lowerName, ".yml") {
		return FormatYAML
	}
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeRecords parses a JSON or YAML document into raw records. The document
// must be a list, or an object holding the list under one of wrapperKeys.
func DecodeRecords(data []byte, f Format) ([]any, error) {
	var document any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	return extractRecords(document)
}

func extractRecords(document any) ([]any, error) {
	switch value := document.(type) {
	case []any:
		return value, nil
	case map[string]any:
		for _, key := range wrapperKeys {
			if records, ok := value[key].([]any); ok {
				return records, nil
			}
		}
	}
	return nil, ErrUnexpectedPayload
}
