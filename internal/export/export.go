// Package export encodes plans for use outside teco.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pablasso/teco/internal/plan"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json or yaml)", s)
	}
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p *plan.Plan, format Format) error {
	switch format {
	case FormatJSON:
		return JSON(w, p)
	case FormatYAML:
		return YAML(w, p)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// JSON writes p as indented JSON.
func JSON(w io.Writer, p *plan.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode plan as JSON: %w", err)
	}
	return nil
}

// YAML writes p as YAML with two-space indentation.
func YAML(w io.Writer, p *plan.Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode plan as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode plan as YAML: %w", err)
	}
	return nil
}
