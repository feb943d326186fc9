// Package export encodes compiled documents for consumers.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/timescript/pkg/domain"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatEngine Format = "engine"
)

// EnvelopeVersion is the schema version stamped on engine exports.
const EnvelopeVersion = "1.0.0"

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatJSON, FormatYAML, FormatEngine} }

// ParseFormat resolves a case-insensitive format name. The empty name is json.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatJSON, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
}

// ContentType returns the MIME type of an encoded document.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Summary counts the top-level nodes of a document.
type Summary struct {
	TotalDialogues int `json:"totalDialogues" yaml:"totalDialogues"`
	Questions      int `json:"questions" yaml:"questions"`
	Answers        int `json:"answers" yaml:"answers"`
}

// Envelope wraps a document for game-engine import.
type Envelope struct {
	Version   string          `json:"version" yaml:"version"`
	Language  string          `json:"language" yaml:"language"`
	Dialogues domain.Document `json:"dialogues" yaml:"dialogues"`
	Metadata  Summary         `json:"metadata" yaml:"metadata"`
}

// Summarize counts doc. TotalDialogues is the number of top-level nodes.
func Summarize(doc domain.Document) Summary {
	return Summary{
		TotalDialogues: len(doc),
		Questions:      doc.Count(domain.KindQuestion),
		Answers:        doc.Count(domain.KindAnswer),
	}
}

// NewEnvelope wraps doc with its summary.
func NewEnvelope(doc domain.Document) Envelope {
	if doc == nil {
		doc = domain.Document{}
	}
	return Envelope{
		Version:   EnvelopeVersion,
		Language:  "timescript",
		Dialogues: doc,
		Metadata:  Summarize(doc),
	}
}

// ToJSON writes the document array indented by two spaces.
func ToJSON(doc domain.Document) ([]byte, error) {
	return indent(doc)
}

// ToYAML writes the document as a YAML sequence.
func ToYAML(doc domain.Document) ([]byte, error) {
	if doc == nil {
		doc = domain.Document{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode([]domain.Node(doc)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ToEngine writes the engine envelope as indented JSON.
func ToEngine(doc domain.Document) ([]byte, error) {
	return indent(NewEnvelope(doc))
}

// Encode writes doc in the given format.
func Encode(doc domain.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(doc)
	case FormatYAML:
		return ToYAML(doc)
	case FormatEngine:
		return ToEngine(doc)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func indent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}
