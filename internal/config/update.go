package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rileyhilliard/beacon/internal/errors"
	"gopkg.in/yaml.v3"
)

// SaveIndicator replaces the indicator block of widget id in the config file.
// The rest of the document, including comments and key order, is preserved.
func SaveIndicator(configPath, id string, ic IndicatorConfig) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to read config file", "Check the file exists")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to parse config file", "Check the YAML syntax in "+configPath)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig, "Config file isn't a YAML mapping", "Start from an example .beacon.yaml")
	}

	widget, err := findWidgetNode(root.Content[0], id)
	if err != nil {
		return err
	}
	if typ := findMapValue(widget, "type"); typ == nil || typ.Value != TypeIndicator {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Widget '%s' isn't an indicator", id),
			"Only widgets with type: indicator have indicator settings")
	}

	var block yaml.Node
	if err := block.Encode(ic); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode indicator settings", "")
	}
	setMapValue(widget, "indicator", &block)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	if err := enc.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	info, err := os.Stat(configPath)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(configPath, buf.Bytes(), mode); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to write config file", "Check file permissions")
	}
	return nil
}

func findWidgetNode(doc *yaml.Node, id string) (*yaml.Node, error) {
	widgets := findMapValue(doc, "widgets")
	if widgets == nil || widgets.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrConfig, "No 'widgets' list in config", "Add a widgets: list to .beacon.yaml")
	}
	for _, item := range widgets.Content {
		if v := findMapValue(item, "id"); v != nil && v.Value == id {
			return item, nil
		}
	}
	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("Widget '%s' not found in config", id),
		"Check the id with: beacon validate")
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// setMapValue replaces the value under key, or appends the pair.
func setMapValue(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value)
}
