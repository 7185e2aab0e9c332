package lexicon

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// decodeJSON walks the document with gjson so that object keys are visited
// in document order; encoding/json maps would lose it.
func decodeJSON(data []byte) (*Lexicon, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	b := newBuilder()
	root.ForEach(func(key, value gjson.Result) bool {
		switch name := key.String(); name {
		case SpecialWordsKey:
			value.ForEach(func(word, label gjson.Result) bool {
				b.addSpecial(word.String(), label.String())
				return true
			})
		case ClickableWordsKey:
			value.ForEach(func(word, groups gjson.Result) bool {
				b.addClickable(word.String(), jsonMeanings(groups))
				return true
			})
		default:
			if !value.IsObject() {
				log.Warnf("Skipping entry %q: record is not an object", name)
				return true
			}
			desc := value.Get("a")
			if !desc.Exists() {
				desc = value.Get("description")
			}
			b.addEntry(name, desc.String())
		}
		return true
	})
	return b.build()
}

// jsonMeanings reads a list of meaning groups. A bare string stands for a
// one-line group.
func jsonMeanings(groups gjson.Result) []MeaningGroup {
	var out []MeaningGroup
	for _, g := range groups.Array() {
		var group MeaningGroup
		for _, line := range g.Array() {
			group = append(group, line.String())
		}
		if len(group) > 0 {
			out = append(out, group)
		}
	}
	return out
}
