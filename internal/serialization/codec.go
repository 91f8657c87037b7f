package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a config document encoding.
type Format int

// Supported formats.
const (
	JSON Format = iota
	YAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat maps "json", "yaml" or "yml" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// DetectFormat picks a format from the file extension, falling back to the
// content: documents starting with '{' are JSON, everything else YAML.
func DetectFormat(path string, data []byte) Format {
	if ext := filepath.Ext(path); ext != "" {
		if f, err := ParseFormat(ext); err == nil {
			return f
		}
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return JSON
	}
	return YAML
}

// Marshal encodes a config document.
func Marshal(doc map[string]any, f Format) ([]byte, error) {
	switch f {
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return data, nil
	case YAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}
}

// Unmarshal decodes a config document. The top level must be an object.
// Nested YAML mappings are normalized to map[string]any and sequences to
// []any, matching what encoding/json produces.
func Unmarshal(data []byte, f Format) (map[string]any, error) {
	var doc any
	switch f {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &DecodeError{Format: f, Err: err}
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &DecodeError{Format: f, Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}

	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, &DecodeError{Format: f, Err: ErrNotAnObject}
	}
	return m, nil
}

// ReadFile loads a config document, detecting its format.
func ReadFile(path string) (map[string]any, error) {
	//nolint:gosec // G304: reading a user-supplied config path is the point
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f := DetectFormat(path, data)
	doc, err := Unmarshal(data, f)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Source = path
		}
		return nil, err
	}
	return doc, nil
}

// WriteFile stores a config document in the format implied by the extension
// (JSON when there is none).
func WriteFile(path string, doc map[string]any) error {
	f := JSON
	if ext := filepath.Ext(path); ext != "" {
		parsed, err := ParseFormat(ext)
		if err != nil {
			return err
		}
		f = parsed
	}
	data, err := Marshal(doc, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalize turns map[any]any (YAML mappings with non-string keys) into
// map[string]any, recursing into containers.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	default:
		return v
	}
}
