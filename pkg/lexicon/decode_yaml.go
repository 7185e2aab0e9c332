package lexicon

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// decodeYAML reads the same document shape as decodeJSON through yaml.Node,
// which keeps mapping keys in document order.
func decodeYAML(data []byte) (*Lexicon, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMalformed)
	}

	b := newBuilder()
	eachPair(root, func(key string, value *yaml.Node) {
		switch key {
		case SpecialWordsKey:
			eachPair(value, func(word string, label *yaml.Node) {
				b.addSpecial(word, label.Value)
			})
		case ClickableWordsKey:
			eachPair(value, func(word string, groups *yaml.Node) {
				b.addClickable(word, yamlMeanings(groups))
			})
		default:
			if value.Kind != yaml.MappingNode {
				log.Warnf("Skipping entry %q: record is not a mapping", key)
				return
			}
			desc, ok := lookup(value, "a")
			if !ok {
				desc, _ = lookup(value, "description")
			}
			b.addEntry(key, desc)
		}
	})
	return b.build()
}

func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}

func lookup(n *yaml.Node, key string) (string, bool) {
	var (
		val   string
		found bool
	)
	eachPair(n, func(k string, v *yaml.Node) {
		if k == key && !found {
			val, found = v.Value, true
		}
	})
	return val, found
}

func yamlMeanings(n *yaml.Node) []MeaningGroup {
	var out []MeaningGroup
	for _, g := range sequence(n) {
		var group MeaningGroup
		for _, line := range sequence(g) {
			group = append(group, line.Value)
		}
		if len(group) > 0 {
			out = append(out, group)
		}
	}
	return out
}

// sequence returns the items of a sequence node, or the node itself for a scalar.
func sequence(n *yaml.Node) []*yaml.Node {
	switch n.Kind {
	case yaml.SequenceNode:
		return n.Content
	case yaml.ScalarNode:
		return []*yaml.Node{n}
	}
	return nil
}
