package projectconfig

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

const pluginsKey = "plugins"

// AppendPlugins adds ids missing from the plugins list, in order, and
// returns the re-encoded document. The key is created when absent. Existing
// entries, comments and other keys are left as they are. When every id is
// already declared data is returned unchanged.
func AppendPlugins(data []byte, ids []string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("project config must be a mapping")
	}
	root := doc.Content[0]

	list := mappingValue(root, pluginsKey)
	if list == nil {
		list = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pluginsKey},
			list)
	}
	if list.Kind == yaml.ScalarNode && list.Tag == "!!null" {
		*list = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must be a list", list.Line, pluginsKey)
	}

	before := len(list.Content)
	present := make(map[string]bool, len(list.Content)+len(ids))
	for _, item := range list.Content {
		if id := entryID(item); id != "" {
			present[id] = true
		}
	}
	for _, id := range ids {
		if present[id] {
			continue
		}
		present[id] = true
		list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id})
	}
	if len(list.Content) == before {
		return data, nil
	}
	// "plugins: []" becomes a block list once it has items.
	if before == 0 {
		list.Style &^= yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func entryID(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.MappingNode:
		if v := mappingValue(n, "id"); v != nil {
			return v.Value
		}
	}
	return ""
}
