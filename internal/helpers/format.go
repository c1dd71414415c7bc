package helpers

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"xui-panel-client/internal/models"
)

// FormatSettingsJSON renders settings as indented JSON with wire field names
func FormatSettingsJSON(settings models.PanelSettings) (string, error) {
	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// FormatSettingsYAML renders settings as YAML, keeping the panel's field order
func FormatSettingsYAML(settings models.PanelSettings) (string, error) {
	pairs, err := models.PanelSettingsSchema().Pairs(&settings)
	if err != nil {
		return "", err
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pairs {
		var v any
		if err := json.Unmarshal(p.Value, &v); err != nil {
			return "", fmt.Errorf("decode %s: %w", p.Wire, err)
		}

		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return "", fmt.Errorf("encode %s: %w", p.Wire, err)
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.Wire}, &value)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
