package lexicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/charmbracelet/log"
)

// DefaultFetchTimeout bounds a single source retrieval.
const DefaultFetchTimeout = 10 * time.Second

// maxDocumentSize caps the size of a lexicon document.
const maxDocumentSize = 64 << 20

// Loader retrieves and decodes a lexicon document. Sources are file paths or
// http(s) URLs. A Loader makes exactly one attempt per call; there is no retry.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	maxSize int64
}

// NewLoader creates a loader. A zero timeout selects DefaultFetchTimeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{
		client:  &http.Client{},
		timeout: timeout,
		maxSize: maxDocumentSize,
	}
}

// Load fetches source and decodes it into a Lexicon.
func (l *Loader) Load(ctx context.Context, source string) (*Lexicon, error) {
	data, err := l.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	format := DetectFormat(source, data)
	lex, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	log.Debugf("Loaded %d entries, %d special words, %d clickable words from %s",
		lex.Len(), len(lex.special), len(lex.clickable), source)
	return lex, nil
}

// Fetch returns the raw bytes of source.
func (l *Loader) Fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrFetch)
	}
	if !utils.IsRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		defer f.Close()
		return l.readLimited(source, f)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, source, resp.Status)
	}
	return l.readLimited(source, resp.Body)
}

// readLimited reads r whole, failing when it holds more than maxSize bytes.
func (l *Loader) readLimited(source string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, source, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s: document too large (over %d bytes)", ErrFetch, source, l.maxSize)
	}
	return data, nil
}

// Load is a convenience wrapper around NewLoader(0).Load.
func Load(ctx context.Context, source string) (*Lexicon, error) {
	return NewLoader(0).Load(ctx, source)
}
