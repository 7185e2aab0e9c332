// Package cli is a terminal front end for the lookup engine, used for
// testing and debugging outside the browser.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/bastiangx/lexserve/pkg/render"
	"github.com/bastiangx/lexserve/pkg/search"
	"github.com/charmbracelet/log"
)

// InputHandler reads queries line by line and prints the best match.
//
// Input forms:
//
//	ata       look up a prefix
//	#at%C4%B1 restore a query from a permalink fragment
//	?wolf     show a random meaning group of a clickable word
//	!kurt     follow a searchable word of the last description
type InputHandler struct {
	searcher  search.Searcher
	in        io.Reader
	out       io.Writer
	showGhost bool
	styles    Styles
	classes   render.Options
}

// NewInputHandler creates a handler reading from in and printing to out.
func NewInputHandler(searcher search.Searcher, in io.Reader, out io.Writer, showGhost bool, classes render.Options) *InputHandler {
	return &InputHandler{
		searcher:  searcher,
		in:        in,
		out:       out,
		showGhost: showGhost,
		styles:    DefaultStyles(),
		classes:   classes,
	}
}

type readResult struct {
	line string
	err  error
}

// Start runs the loop until the input ends or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	stats := h.searcher.Stats()
	fmt.Fprintf(h.out, "lexserve CLI: %d entries\n", stats["entries"])
	fmt.Fprintln(h.out, "type a prefix and press Enter, ?word for meanings, !word to follow (Ctrl+C to exit):")

	lines := make(chan readResult)
	go func() {
		reader := bufio.NewReader(h.in)
		for {
			line, err := reader.ReadString('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		fmt.Fprint(h.out, "> ")
		if ctx.Err() != nil {
			fmt.Fprintln(h.out)
			return nil
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return nil
		case r := <-lines:
			if r.err != nil && r.line == "" {
				if r.err == io.EOF {
					return nil
				}
				return r.err
			}
			h.HandleLine(strings.TrimRight(r.line, "\r\n"))
			if r.err == io.EOF {
				return nil
			}
		}
	}
}

// HandleLine dispatches one line of input.
func (h *InputHandler) HandleLine(line string) {
	switch {
	case utils.IsBlank(line):
		return
	case strings.HasPrefix(line, "?"):
		h.handleClick(strings.TrimSpace(line[1:]))
	case strings.HasPrefix(line, "!"):
		text := line[1:]
		h.show(strings.TrimSpace(text), h.searcher.OnSearchableClicked(text))
	case strings.HasPrefix(line, "#"):
		h.handleQuery(search.QueryFromFragment(line))
	default:
		h.handleQuery(strings.TrimSpace(line))
	}
}

func (h *InputHandler) handleQuery(query string) {
	start := time.Now()
	res := h.searcher.OnQueryChanged(query)
	log.Debugf("Took [ %v ] for query '%s' (%s)", time.Since(start), query, res.State)
	h.show(query, res)
}

func (h *InputHandler) show(query string, res search.Result) {
	if res.Repeated {
		log.Debug("Query unchanged, skipping render")
		return
	}

	switch res.State {
	case search.StateIdle:
		return
	case search.StateUnavailable:
		fmt.Fprintln(h.out, h.styles.Error.Render("Oops! lexicon not loaded"))
	case search.StateInvalid:
		fmt.Fprintln(h.out, h.styles.Error.Render("invalid query: leading whitespace"))
	case search.StateNoMatch:
		fmt.Fprintln(h.out, h.styles.Error.Render(fmt.Sprintf("no entry for '%s'", query)))
	case search.StateMatch:
		head := query
		if h.showGhost {
			head += h.styles.Ghost.Render(res.Ghost)
		}
		fmt.Fprintf(h.out, "%s  %s\n", head, h.styles.Label.Render("["+res.Headword+"]"))
		fmt.Fprintln(h.out, RenderMarkup(res.Description, h.styles, h.classes))
		if len(res.Searchable) > 0 {
			see := make([]string, len(res.Searchable))
			for i, s := range res.Searchable {
				see[i] = h.styles.Searchable.Render("!" + s)
			}
			fmt.Fprintln(h.out, "see: "+strings.Join(see, ", "))
		}
		fmt.Fprintln(h.out, h.styles.Ghost.Render("permalink: "+search.FragmentFor(query)))
	}
}

func (h *InputHandler) handleClick(word string) {
	group, ok := h.searcher.OnWordClicked(word)
	if !ok {
		log.Warnf("No meanings for '%s'", word)
		fmt.Fprintln(h.out, h.styles.Error.Render(fmt.Sprintf("'%s' is not clickable", word)))
		return
	}
	fmt.Fprint(h.out, RenderMarkup(h.searcher.MeaningMarkup(group), h.styles, h.classes))
}
