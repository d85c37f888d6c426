package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meltanolabs/evidence-ext/internal/branding"
	"go.yaml.in/yaml/v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown describe format")

// splatCommand tells Meltano that every sub-command is forwarded.
const splatCommand = ":splat"

// Command is one command group the extension exposes to Meltano.
type Command struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Commands    []string `json:"commands" yaml:"commands"`
}

// Description is the document returned by `describe`.
type Description struct {
	Commands []Command `json:"commands" yaml:"commands"`
}

// Describe builds the describe document. Each call returns a fresh value.
func Describe() Description {
	return Description{
		Commands: []Command{
			{
				Name:        branding.CLIName(),
				Description: "extension commands",
				Commands:    []string{splatCommand},
			},
		},
	}
}

// Render serializes d in the requested format after validating it against
// the describe schema.
func Render(d Description, format string) ([]byte, error) {
	result, err := ValidateDescription(d)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("describe document is invalid: %s", result)
	}

	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling describe JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshaling describe YAML: %w", err)
		}
		return out, nil
	case FormatText, "":
		var b strings.Builder
		b.WriteString("Extension commands:\n")
		for _, c := range d.Commands {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", c.Name, c.Description, strings.Join(c.Commands, ", "))
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w %q: supported formats are %q, %q and %q", ErrUnknownFormat, format, FormatText, FormatJSON, FormatYAML)
	}
}
