package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"ipannotate/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles the same address-to-record mapping as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse walks the mapping node directly; decoding into a Go map would lose
// the key order.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Annotations, error) {
	var doc yaml.Node
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("failed to parse YAML: unexpected document structure")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML: expected mapping at document root (line %d)", root.Line)
	}

	annotations := domain.NewAnnotations()
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var ip string
		if err := keyNode.Decode(&ip); err != nil {
			return nil, fmt.Errorf("failed to parse YAML key (line %d): %w", keyNode.Line, err)
		}

		entry, err := parseYAMLEntry(valueNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML record %s: %w", ip, err)
		}
		annotations.Put(ip, entry)
	}

	return annotations, nil
}

func parseYAMLEntry(node *yaml.Node) (domain.Entry, error) {
	var entry domain.Entry
	if node.Kind != yaml.MappingNode {
		return entry, fmt.Errorf("expected mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return entry, fmt.Errorf("field name (line %d): %w", node.Content[i].Line, err)
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return entry, fmt.Errorf("field %s: %w", name, err)
		}
		entry.Set(name, value)
	}
	return entry, nil
}

// Export writes the mapping in insertion order
func (c *YAMLCodec) Export(annotations *domain.Annotations, w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var encodeErr error
	annotations.Each(func(ip string, entry domain.Entry) {
		if encodeErr != nil {
			return
		}
		value, err := entryNode(entry)
		if err != nil {
			encodeErr = fmt.Errorf("record %s: %w", ip, err)
			return
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ip}
		root.Content = append(root.Content, key, value)
	})
	if encodeErr != nil {
		return fmt.Errorf("failed to encode YAML: %w", encodeErr)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func entryNode(entry domain.Entry) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, field := range entry.Fields() {
		value := &yaml.Node{}
		switch v := field.Value.(type) {
		case json.Number:
			// numbers read from JSON keep their original spelling
			value.Kind = yaml.ScalarNode
			value.Tag = "!!int"
			if strings.ContainsAny(string(v), ".eE") {
				value.Tag = "!!float"
			}
			value.Value = string(v)
		default:
			if err := value.Encode(v); err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Name}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}
