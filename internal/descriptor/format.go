package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor file encoding
type Format string

const (
	FormatTOML     Format = "toml"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON, FormatMarkdown}

// DefaultFileNames are the descriptor file names searched for, in order
var DefaultFileNames = []string{
	"descriptor.toml",
	"descriptor.yaml",
	"descriptor.yml",
	"descriptor.json",
	"DESCRIPTOR.md",
}

// ParseFormat parses a format name ("toml", "yaml", "yml", "json", "md", "markdown")
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown descriptor format: %s (must be toml, yaml, json or markdown)", s)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".toml"
	}
}

// DefaultFileName returns the default descriptor file name for the format
func (f Format) DefaultFileName() string {
	if f == FormatMarkdown {
		return "DESCRIPTOR.md"
	}
	return "descriptor" + f.Extension()
}

var (
	tomlTableHeader = regexp.MustCompile(`(?m)^\s*\[{1,2}[A-Za-z0-9_."-]+\]{1,2}\s*$`)
	tomlAssignment  = regexp.MustCompile(`(?m)^\s*[A-Za-z0-9_."-]+\s*=`)
)

// Sniff guesses the format of descriptor content with no usable extension
func Sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && gjson.ValidBytes(trimmed):
		return FormatJSON
	case hasFrontMatter(trimmed, "---"), hasFrontMatter(trimmed, "+++"):
		return FormatMarkdown
	case tomlTableHeader.Match(trimmed), tomlAssignment.Match(trimmed):
		return FormatTOML
	default:
		return FormatYAML
	}
}

// hasFrontMatter reports whether data opens with a fence line and closes it
// again later. A lone "---" is a YAML document marker.
func hasFrontMatter(data []byte, fence string) bool {
	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != fence {
		return false
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == fence {
			return true
		}
	}
	return false
}

// Decode parses descriptor content. Unknown keys are rejected for TOML, YAML
// and JSON so misspelled fields do not silently disappear.
func Decode(format Format, data []byte) (*Document, error) {
	doc := &Document{}

	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), doc)
		if err != nil {
			return nil, &models.ConfigurationError{Reason: "cannot decode toml document", Err: err}
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			sort.Strings(keys)
			return nil, models.NewConfigurationError(keys[0], "unknown field")
		}

	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, &models.ConfigurationError{Reason: "cannot decode yaml document", Err: err}
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, &models.ConfigurationError{Reason: "cannot decode json document", Err: err}
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, models.NewConfigurationError("", "unexpected content after the json document")
		}

	case FormatMarkdown:
		body, err := frontmatter.MustParse(bytes.NewReader(data), doc)
		if err != nil {
			return nil, &models.ConfigurationError{Reason: "cannot decode front matter", Err: err}
		}
		if doc.Project.Description == "" {
			doc.Project.Description = strings.TrimSpace(string(body))
		}

	default:
		return nil, models.NewConfigurationError("", fmt.Sprintf("unsupported format %q", format))
	}

	return doc, nil
}

// Encode renders a document in the given format
func Encode(format Format, doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode toml: %w", err)
		}

	case FormatYAML:
		if err := encodeYAML(&buf, doc); err != nil {
			return nil, err
		}

	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		buf.Write(data)
		buf.WriteString("\n")

	case FormatMarkdown:
		// the description lives in the markdown body
		matter := *doc
		matter.Project.Description = ""

		buf.WriteString("---\n")
		if err := encodeYAML(&buf, &matter); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
		if doc.Project.Description != "" {
			buf.WriteString("\n")
			buf.WriteString(doc.Project.Description)
			buf.WriteString("\n")
		}

	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return buf.Bytes(), nil
}

func encodeYAML(buf *bytes.Buffer, doc *Document) error {
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
