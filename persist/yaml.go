package persist

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes float fields so they decode as floats again: whole
// numbers keep a fractional part and negative zero keeps its sign.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, scalar("!!str", "tag"), scalar("!!str", r.Tag))
	if len(r.Fields) == 0 {
		return node, nil
	}

	fields := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.Names() {
		value := &yaml.Node{}
		switch v := r.Fields[name].(type) {
		case float64:
			value = scalar("!!float", formatFloat(v, 64))
		case float32:
			value = scalar("!!float", formatFloat(float64(v), 32))
		default:
			if err := value.Encode(v); err != nil {
				return nil, err
			}
		}
		fields.Content = append(fields.Content, scalar("!!str", name), value)
	}
	node.Content = append(node.Content, scalar("!!str", "fields"), fields)
	return node, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
