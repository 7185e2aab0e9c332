package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/lexserve/internal/logger"
	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/bastiangx/lexserve/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testLexicon = `{
  "ata":  {"a": "father figure"},
  "atam": {"a": "my father"},
  "specialWords":   {"anim.": "animal"},
  "clickableWords": {"wolf": [["canine", "dog kin"]]}
}`

func newEngine(t *testing.T) *search.Engine {
	t.Helper()
	return newEngineFrom(t, testLexicon)
}

func newEngineFrom(t *testing.T, doc string) *search.Engine {
	t.Helper()
	lex, err := lexicon.Parse([]byte(doc), lexicon.FormatJSON)
	require.NoError(t, err)
	e := search.NewEngine(search.WithLogger(logger.Discard()))
	require.NoError(t, e.Initialize(lex))
	return e
}

func query(s string) *string { return &s }

// session encodes reqs, runs the server over them and returns a decoder
// positioned after the ready message.
func session(t *testing.T, srv func(in, out *bytes.Buffer) *Server, reqs ...Request) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}
	require.NoError(t, srv(&in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready["status"])
	return dec
}

func TestLookupSession(t *testing.T) {
	engine := newEngine(t)
	newSrv := func(in, out *bytes.Buffer) *Server {
		return NewServer(engine, in, out, 10, nil, logger.Discard())
	}

	dec := session(t, newSrv,
		Request{ID: "q1", Query: query("at")},
		Request{ID: "q2", Query: query("at")},
		Request{ID: "q3", Query: query("zz")},
		Request{ID: "q4", Query: query(" at")},
		Request{ID: "q5", Query: query("")},
		Request{ID: "q6", Query: query(strings.Repeat("a", 11))},
	)

	var r LookupResponse
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "q1", r.ID)
	assert.Equal(t, "match", r.State)
	assert.Equal(t, "ata", r.Headword)
	assert.Equal(t, "a", r.Ghost)
	assert.Equal(t, "father figure", r.Description)
	assert.False(t, r.Repeated)
	assert.False(t, r.Error)

	r = LookupResponse{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "q2", r.ID)
	assert.True(t, r.Repeated)
	assert.Equal(t, "ata", r.Headword)

	r = LookupResponse{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "no_match", r.State)
	assert.True(t, r.Error)

	r = LookupResponse{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "invalid", r.State)
	assert.True(t, r.Error)

	r = LookupResponse{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "idle", r.State)
	assert.False(t, r.Error)

	var tooLong ErrorResponse
	require.NoError(t, dec.Decode(&tooLong))
	assert.Equal(t, "q6", tooLong.ID)
	assert.Equal(t, 400, tooLong.Code)
	assert.Contains(t, tooLong.Error, "maximum length")
}

func TestClickSession(t *testing.T) {
	engine := newEngine(t)
	newSrv := func(in, out *bytes.Buffer) *Server {
		return NewServer(engine, in, out, 60, nil, logger.Discard())
	}

	dec := session(t, newSrv,
		Request{ID: "c1", Word: "wolf"},
		Request{ID: "c2", Word: "bear"},
	)

	var m MeaningResponse
	require.NoError(t, dec.Decode(&m))
	assert.Equal(t, "c1", m.ID)
	assert.Equal(t, []string{"canine", "dog kin"}, m.Lines)
	assert.Equal(t, "canine<br>dog kin<br>", m.Markup)
	assert.False(t, m.Missing)

	m = MeaningResponse{}
	require.NoError(t, dec.Decode(&m))
	assert.Equal(t, "c2", m.ID)
	assert.True(t, m.Missing)
	assert.Empty(t, m.Lines)
}

func TestFollowSession(t *testing.T) {
	engine := newEngineFrom(t, `{
	  "kurt":    {"a": "wolf"},
	  "bozkurt": {"a": "grey wolf, see <span class=\"searchable\">kurt</span>"}
	}`)
	newSrv := func(in, out *bytes.Buffer) *Server {
		return NewServer(engine, in, out, 60, nil, logger.Discard())
	}

	dec := session(t, newSrv,
		Request{ID: "q1", Query: query("boz")},
		Request{ID: "f1", Follow: " kurt "},
	)

	var r LookupResponse
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "bozkurt", r.Headword)
	assert.Equal(t, []string{"kurt"}, r.Searchable)

	r = LookupResponse{}
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "f1", r.ID)
	assert.Equal(t, "kurt", r.Query)
	assert.Equal(t, "match", r.State)
	assert.Equal(t, "kurt", r.Headword)
	assert.Empty(t, r.Ghost)
}

func TestStartStopsWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	srv := NewServer(newEngine(t), pr, &out, 60, nil, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server kept running after cancellation")
	}
}

func TestActionSession(t *testing.T) {
	engine := newEngine(t)
	reloads := 0
	reload := func(ctx context.Context) error {
		reloads++
		if reloads > 1 {
			engine.Fail(errors.New("source gone"))
			return errors.New("source gone")
		}
		return nil
	}
	newSrv := func(in, out *bytes.Buffer) *Server {
		return NewServer(engine, in, out, 60, reload, logger.Discard())
	}

	dec := session(t, newSrv,
		Request{ID: "a1", Action: "info"},
		Request{ID: "a2", Action: "reload"},
		Request{ID: "a3", Action: "reload"},
		Request{ID: "q1", Query: query("at")},
		Request{ID: "a4", Action: "shutdown"},
		Request{ID: "x1"},
	)

	var info InfoResponse
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, InfoResponse{ID: "a1", Status: "ok", Entries: 2, SpecialWords: 1, ClickableWords: 1}, info)

	info = InfoResponse{}
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "ok", info.Status)

	info = InfoResponse{}
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "error", info.Status)
	assert.Equal(t, "source gone", info.Error)
	assert.Equal(t, 0, info.Entries)

	var r LookupResponse
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, "unavailable", r.State)
	assert.True(t, r.Error)

	var unknown ErrorResponse
	require.NoError(t, dec.Decode(&unknown))
	assert.Equal(t, "a4", unknown.ID)
	assert.Contains(t, unknown.Error, "unknown action")

	var empty ErrorResponse
	require.NoError(t, dec.Decode(&empty))
	assert.Equal(t, "x1", empty.ID)
	assert.Equal(t, 400, empty.Code)

	assert.Equal(t, 2, reloads)
}

func TestReloadUnsupported(t *testing.T) {
	engine := newEngine(t)
	newSrv := func(in, out *bytes.Buffer) *Server {
		return NewServer(engine, in, out, 60, nil, logger.Discard())
	}
	dec := session(t, newSrv, Request{ID: "a1", Action: "reload"})

	var info InfoResponse
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "error", info.Status)
	assert.NotEmpty(t, info.Error)
}

func TestStartStopsOnCancelledContext(t *testing.T) {
	var in, out bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(Request{ID: "q1", Query: query("at")}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv := NewServer(newEngine(t), &in, &out, 60, nil, logger.Discard())
	require.NoError(t, srv.Start(ctx))

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	require.NoError(t, dec.Decode(&ready))
	var next LookupResponse
	assert.Error(t, dec.Decode(&next), "no lookup is answered after cancellation")
}

func TestStartRejectsGarbage(t *testing.T) {
	in := bytes.NewBufferString("\xc1")
	var out bytes.Buffer
	srv := NewServer(newEngine(t), in, &out, 60, nil, logger.Discard())
	assert.Error(t, srv.Start(context.Background()))
}
