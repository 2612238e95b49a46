package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the format for non-interactive mode output
type OutputFormat string

const (
	// TextFormat is one line per record (default)
	TextFormat OutputFormat = "text"

	// JSONFormat wraps the records in a JSON object
	JSONFormat OutputFormat = "json"

	// YAMLFormat wraps the records in a YAML mapping
	YAMLFormat OutputFormat = "yaml"
)

// IsValid checks if the output format is valid
func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat || f == YAMLFormat
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// Parse accepts a format name case insensitively; "yml" means YAML.
func Parse(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = YAMLFormat
	}
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
	return f, nil
}

// FormatRecords renders records in the given format. Text output calls line
// for each record; JSON and YAML nest the records under key.
func FormatRecords[T any](key string, records []T, format OutputFormat, line func(T) string) (string, error) {
	switch format {
	case TextFormat:
		var b strings.Builder
		for i, r := range records {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line(r))
		}
		return b.String(), nil
	case JSONFormat:
		if records == nil {
			records = []T{}
		}
		jsonBytes, err := json.MarshalIndent(map[string][]T{key: records}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonBytes), nil
	case YAMLFormat:
		if records == nil {
			records = []T{}
		}
		yamlBytes, err := yaml.Marshal(map[string][]T{key: records})
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return strings.TrimSuffix(string(yamlBytes), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
