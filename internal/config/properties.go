package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Property - пара ключ/значение свойства материала
type Property struct {
	Key   string
	Value string
}

// Properties - свойства материала в порядке объявления.
// YAML сохраняет порядок документа, TOML-таблицы порядка не имеют,
// поэтому ключи из TOML сортируются.
type Properties []Property

// UnmarshalYAML разбирает отображение, сохраняя порядок ключей
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}

	out := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, Property{Key: k.Value, Value: v.Value})
	}
	*p = out
	return nil
}

// UnmarshalTOML разбирает таблицу, ключи сортируются
func (p *Properties) UnmarshalTOML(data interface{}) error {
	table, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("properties must be a table, got %T", data)
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Properties, 0, len(keys))
	for _, k := range keys {
		switch v := table[k].(type) {
		case map[string]interface{}, []interface{}, []map[string]interface{}:
			return fmt.Errorf("property %q must be a scalar", k)
		default:
			out = append(out, Property{Key: k, Value: fmt.Sprint(v)})
		}
	}
	*p = out
	return nil
}
