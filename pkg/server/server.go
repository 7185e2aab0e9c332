package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/lexserve/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Reloader re-runs the lexicon load for the "reload" action.
type Reloader func(ctx context.Context) error

// Server handles the IPC for lexicon lookups.
type Server struct {
	searcher search.Searcher
	reload   Reloader
	maxQuery int
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	logger   *log.Logger
}

// NewServer creates a server reading requests from r and writing responses to w.
// reload may be nil, in which case the "reload" action reports an error.
func NewServer(searcher search.Searcher, r io.Reader, w io.Writer, maxQuery int, reload Reloader, logger *log.Logger) *Server {
	return &Server{
		searcher: searcher,
		reload:   reload,
		maxQuery: maxQuery,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		logger:   logger,
	}
}

type decoded struct {
	req Request
	err error
}

// Start serves requests until the input ends or ctx is cancelled.
// Decoding runs on its own goroutine so a blocked read never delays shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	reqs := make(chan decoded)
	go func() {
		for {
			var req Request
			err := s.dec.Decode(&req)
			select {
			case reqs <- decoded{req: req, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		if ctx.Err() != nil {
			s.logger.Debug("Context cancelled, stopping server")
			return nil
		}
		select {
		case <-ctx.Done():
			s.logger.Debug("Context cancelled, stopping server")
			return nil
		case d := <-reqs:
			if d.err != nil {
				if errors.Is(d.err, io.EOF) {
					s.logger.Debug("Client closed input")
					return nil
				}
				s.logger.Errorf("Decoding request: %v", d.err)
				return fmt.Errorf("decode request: %w", d.err)
			}
			if ctx.Err() != nil {
				return nil
			}
			if err := s.handle(ctx, d.req); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handle(ctx context.Context, req Request) error {
	switch {
	case req.Action != "":
		return s.handleAction(ctx, req)
	case req.Word != "":
		return s.handleClick(req)
	case req.Follow != "":
		return s.handleLookup(req.ID, req.Follow, s.searcher.OnSearchableClicked)
	case req.Query != nil:
		return s.handleLookup(req.ID, *req.Query, s.searcher.OnQueryChanged)
	default:
		return s.sendError(req.ID, "request has no query, word, follow or action", 400)
	}
}

func (s *Server) handleLookup(id, query string, lookup func(string) search.Result) error {
	if s.maxQuery > 0 && utf8.RuneCountInString(query) > s.maxQuery {
		s.logger.Debug("Query too long", "len", utf8.RuneCountInString(query))
		return s.sendError(id, fmt.Sprintf("query exceeds maximum length of %d characters", s.maxQuery), 400)
	}

	start := time.Now()
	res := lookup(query)
	elapsed := time.Since(start)

	return s.send(LookupResponse{
		ID:          id,
		Query:       res.Query,
		State:       res.State.String(),
		Error:       res.IsError(),
		Headword:    res.Headword,
		Description: res.Description,
		Ghost:       res.Ghost,
		Searchable:  res.Searchable,
		Repeated:    res.Repeated,
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleClick(req Request) error {
	group, ok := s.searcher.OnWordClicked(req.Word)
	if !ok {
		return s.send(MeaningResponse{ID: req.ID, Lines: []string{}, Missing: true})
	}
	return s.send(MeaningResponse{
		ID:     req.ID,
		Lines:  group,
		Markup: s.searcher.MeaningMarkup(group),
	})
}

func (s *Server) handleAction(ctx context.Context, req Request) error {
	switch req.Action {
	case "info":
		return s.send(s.info(req.ID, nil))
	case "reload":
		if s.reload == nil {
			return s.send(s.info(req.ID, errors.New("reload not supported")))
		}
		err := s.reload(ctx)
		if err != nil {
			s.logger.Errorf("Reload failed: %v", err)
		}
		return s.send(s.info(req.ID, err))
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) info(id string, err error) InfoResponse {
	stats := s.searcher.Stats()
	resp := InfoResponse{
		ID:             id,
		Status:         "ok",
		Entries:        stats["entries"],
		SpecialWords:   stats["specialWords"],
		ClickableWords: stats["clickableWords"],
	}
	if stats["loaded"] == 0 {
		resp.Status = "unavailable"
	}
	if err != nil {
		resp.Status = "error"
		resp.Error = err.Error()
	}
	return resp
}

// send encodes one response. Encoding failures are fatal to the session.
func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
