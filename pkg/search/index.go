package search

import (
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// bucket holds every entry sharing one normalized key, in document order.
type bucket struct {
	key     string
	entries []int
}

// Match is the best entry for a query.
type Match struct {
	Entry lexicon.Entry
	// NormalizedKey is Normalize(Entry.Headword).
	NormalizedKey string
}

// Index answers prefix queries over normalized headwords.
//
// Candidates come from a patricia trie keyed by normalized headword; the
// winner is the smallest candidate under the locale collator, with document
// order breaking ties. This selects the same entry as sorting every
// normalized key and taking the first one that carries the query prefix.
type Index struct {
	trie     *patricia.Trie
	entries  []lexicon.Entry
	mu       sync.Mutex
	collator *collate.Collator
}

// NewIndex builds an index over entries, ordering keys with the collation
// rules of locale.
func NewIndex(entries []lexicon.Entry, locale language.Tag) *Index {
	idx := &Index{
		trie:     patricia.NewTrie(),
		entries:  entries,
		collator: collate.New(locale),
	}
	for i, e := range entries {
		key := lexicon.Normalize(e.Headword)
		if key == "" {
			log.Debugf("Skipping empty headword at position %d", e.Order)
			continue
		}
		if item := idx.trie.Get(patricia.Prefix(key)); item != nil {
			b := item.(*bucket)
			b.entries = append(b.entries, i)
			continue
		}
		idx.trie.Insert(patricia.Prefix(key), &bucket{key: key, entries: []int{i}})
	}
	return idx
}

// FindBestMatch returns the entry whose normalized headword is smallest in
// collation order among those starting with the normalized query.
func (idx *Index) FindBestMatch(query string) (Match, bool) {
	if query == "" {
		return Match{}, false
	}
	prefix := lexicon.Normalize(query)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var best *bucket
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		b := item.(*bucket)
		if best == nil || idx.less(b, best) {
			best = b
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return Match{}, false
	}
	if best == nil {
		return Match{}, false
	}
	return Match{Entry: idx.entries[best.entries[0]], NormalizedKey: best.key}, true
}

func (idx *Index) less(a, b *bucket) bool {
	if c := idx.collator.CompareString(a.key, b.key); c != 0 {
		return c < 0
	}
	return a.entries[0] < b.entries[0]
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Ghost returns the part of normalizedKey past the first n runes, where n is
// the rune length of the raw query. The index comes from the query as typed,
// not its normalized form, so it lines up with what the user sees.
func Ghost(query, normalizedKey string) string {
	return utils.RuneSuffix(normalizedKey, utf8.RuneCountInString(query))
}
