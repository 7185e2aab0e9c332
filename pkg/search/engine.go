package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/bastiangx/lexserve/internal/logger"
	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/bastiangx/lexserve/pkg/render"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// ErrNotLoaded is the load error of an engine that was never initialized or was reset.
var ErrNotLoaded = errors.New("search: lexicon not loaded")

// Engine owns the loaded lexicon and the last-query memo. Construct one per
// process and pass it to the presentation layer.
//
// Searches run to completion under a mutex, so concurrent callers observe the
// same last-write-wins ordering as a single event loop.
type Engine struct {
	mu       sync.Mutex
	lex      *lexicon.Lexicon
	index    *Index
	renderer *render.Renderer
	loadErr  error
	last     *Result

	locale     language.Tag
	renderOpts render.Options
	intn       func(int) int
	logger     *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the collation locale used to order headwords.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) { e.locale = tag }
}

// WithRenderOptions sets the class names used in rendered markup.
func WithRenderOptions(opts render.Options) Option {
	return func(e *Engine) { e.renderOpts = opts }
}

// WithRand makes meaning-group selection draw from r.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.intn = r.IntN }
}

// WithLogger replaces the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with no lexicon; it refuses lookups until
// Initialize or Load succeeds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		loadErr: ErrNotLoaded,
		locale:  language.Turkish,
		intn:    rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.New("search")
	}
	return e
}

// Initialize installs lex atomically. A nil or empty lexicon is a load failure.
func (e *Engine) Initialize(lex *lexicon.Lexicon) error {
	if lex.Len() == 0 {
		err := fmt.Errorf("initialize: %w", lexicon.ErrEmpty)
		e.Fail(err)
		return err
	}

	index := NewIndex(lex.Entries(), e.locale)
	renderer := render.NewRenderer(lex, e.renderOpts)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lex = lex
	e.index = index
	e.renderer = renderer
	e.loadErr = nil
	e.last = nil
	e.logger.Debug("Lexicon installed", "entries", lex.Len(), "locale", e.locale)
	return nil
}

// Load retrieves source with loader and installs it. Any failure leaves the
// engine empty and refusing lookups.
func (e *Engine) Load(ctx context.Context, loader *lexicon.Loader, source string) error {
	lex, err := loader.Load(ctx, source)
	if err != nil {
		e.Fail(err)
		return err
	}
	return e.Initialize(lex)
}

// Fail drops any loaded lexicon and records err as the load failure.
func (e *Engine) Fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	if err != nil {
		e.loadErr = err
	}
	e.logger.Error("Lexicon unavailable", "err", e.loadErr)
}

// Reset returns the engine to its unloaded state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.lex = nil
	e.index = nil
	e.renderer = nil
	e.last = nil
	e.loadErr = ErrNotLoaded
}

// Err returns the load failure, or nil when a lexicon is installed.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// OnQueryChanged searches for text and renders the best match.
// A query identical to the previous one returns the previous result with
// Repeated set.
func (e *Engine) OnQueryChanged(text string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index == nil {
		return Result{Query: text, State: StateUnavailable}
	}
	if e.last != nil && e.last.Query == text {
		r := *e.last
		r.Repeated = true
		return r
	}

	r := e.search(text)
	e.last = &r
	return r
}

func (e *Engine) search(text string) Result {
	switch {
	case text == "":
		return Result{State: StateIdle}
	case utils.StartsWithSpace(text):
		return Result{Query: text, State: StateInvalid}
	}

	m, ok := e.index.FindBestMatch(text)
	if !ok {
		e.logger.Debugf("No entry for query '%s'", text)
		return Result{Query: text, State: StateNoMatch}
	}
	desc := e.renderer.Description(m.Entry.Description)
	return Result{
		Query:       text,
		State:       StateMatch,
		Headword:    m.Entry.Headword,
		Description: desc,
		Ghost:       Ghost(text, m.NormalizedKey),
		Searchable:  e.renderer.Searchables(desc),
	}
}

// OnSearchableClicked runs the trimmed text of a searchable span as the new query.
func (e *Engine) OnSearchableClicked(text string) Result {
	return e.OnQueryChanged(strings.TrimSpace(text))
}

// OnWordClicked picks one meaning group of word uniformly at random.
// Every call draws again.
func (e *Engine) OnWordClicked(word string) (lexicon.MeaningGroup, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lex == nil {
		return nil, false
	}
	groups, ok := e.lex.Meanings(word)
	if !ok || len(groups) == 0 {
		return nil, false
	}
	return groups[e.intn(len(groups))], true
}

// MeaningMarkup renders group as sanitized lines, each ending in a line break.
func (e *Engine) MeaningMarkup(group lexicon.MeaningGroup) string {
	e.mu.Lock()
	r := e.renderer
	e.mu.Unlock()
	if r == nil {
		return ""
	}
	return r.Meaning(group)
}

// Stats reports the size of the loaded lexicon.
func (e *Engine) Stats() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	loaded := 0
	if e.lex != nil {
		loaded = 1
	}
	return map[string]int{
		"entries":        e.lex.Len(),
		"specialWords":   len(e.lex.SpecialWords()),
		"clickableWords": len(e.lex.ClickableWords()),
		"loaded":         loaded,
	}
}
