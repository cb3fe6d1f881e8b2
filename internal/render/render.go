package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"authoring-kit/internal/target"
)

// Format selects the dump encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
	}
}

// Ext returns the file extension of f.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes n to w in the given format.
func Encode(w io.Writer, n *target.Node, f Format) error {
	switch f {
	case FormatJSON:
		b, err := MarshalJSON(n)
		if err != nil {
			return err
		}

		_, err = w.Write(append(b, '\n'))

		return err
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(YAMLNode(n)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Marshal returns n in the given format.
func Marshal(n *target.Node, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n, f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FileName returns the relative path a class root is written to:
// <class>/<scope><ext>, with ':' in scope names replaced by '_'.
func FileName(class, scope string, f Format) string {
	return filepath.Join(class, strings.ReplaceAll(scope, ":", "_")+f.Ext())
}

// YAMLNode converts n into an ordered YAML mapping.
func YAMLNode(n *target.Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range n.AttributeNames() {
		m.Content = append(m.Content, scalar(name), scalar(n.Attr(name)))
	}

	for _, child := range n.Children() {
		m.Content = append(m.Content, scalar(child.Name()), YAMLNode(child))
	}

	return m
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// MarshalJSON renders n as an indented JSON object keeping order.
func MarshalJSON(n *target.Node) ([]byte, error) {
	b, err := json.MarshalIndent(ordered{n}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}

	return b, nil
}

type ordered struct {
	node *target.Node
}

func (o ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true
	write := func(key string, value any) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}

		v, err := json.Marshal(value)
		if err != nil {
			return err
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)

		return nil
	}

	for _, name := range o.node.AttributeNames() {
		if err := write(name, o.node.Attr(name)); err != nil {
			return nil, err
		}
	}

	for _, child := range o.node.Children() {
		if err := write(child.Name(), ordered{child}); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
