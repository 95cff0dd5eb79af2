package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const componentRefPrefix = "#/components/schemas/"

// propertyOrder walks the raw document and returns the declared property
// order of every component, allOf members first. kin-openapi decodes
// properties into maps, so the order has to come from the source text.
// A document yaml.v3 cannot read yields nil and properties fall back to
// sorted order.
func propertyOrder(raw []byte) map[string][]string {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	schemas := mappingValue(mappingValue(root.Content[0], "components"), "schemas")
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return nil
	}

	out := make(map[string][]string, len(schemas.Content)/2)
	for i := 0; i+1 < len(schemas.Content); i += 2 {
		name := schemas.Content[i].Value
		out[name] = componentKeys(schemas, schemas.Content[i+1], map[string]bool{name: true})
	}
	return out
}

func componentKeys(schemas, node *yaml.Node, visited map[string]bool) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	var keys []string
	if allOf := mappingValue(node, "allOf"); allOf != nil && allOf.Kind == yaml.SequenceNode {
		for _, member := range allOf.Content {
			if ref := mappingValue(member, "$ref"); ref != nil {
				if !strings.HasPrefix(ref.Value, componentRefPrefix) {
					continue
				}
				target := strings.TrimPrefix(ref.Value, componentRefPrefix)
				if visited[target] {
					continue
				}
				visited[target] = true
				keys = append(keys, componentKeys(schemas, mappingValue(schemas, target), visited)...)
				continue
			}
			keys = append(keys, componentKeys(schemas, member, visited)...)
		}
	}

	if properties := mappingValue(node, "properties"); properties != nil && properties.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(properties.Content); i += 2 {
			keys = append(keys, properties.Content[i].Value)
		}
	}
	return keys
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
