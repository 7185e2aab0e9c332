/*
Package server implements msgpack IPC for lexicon lookups.

Clients write msgpack-encoded requests to stdin and read msgpack-encoded
responses from stdout, one value per message. Every request carries an ID
that is echoed back.

A lookup sends the current input value on every change:

	{"id": "q1", "q": "at"}

and receives the state, the matched headword, the rendered description and
the ghost suffix:

	{"id": "q1", "st": "match", "k": "ata", "d": "father figure", "g": "a", "t": 41}

A repeated query comes back with "rep": true and the previous payload, so a
client can skip re-rendering.

Clicking a rendered clickable word asks for one meaning group:

	{"id": "c1", "w": "wolf"}
	{"id": "c1", "m": ["canine"], "h": "canine<br>"}

Clicking a searchable span runs its text as the next query; the answer is
a lookup response carrying the query that was run:

	{"id": "f1", "f": " kurt "}
	{"id": "f1", "q": "kurt", "st": "match", "k": "kurt", ...}

Admin actions report or reload the lexicon:

	{"id": "a1", "action": "info"}
	{"id": "a2", "action": "reload"}

Failures that are not lookup states come back as {"id": ..., "e": msg, "c": code}.
*/
package server

// Request is the union of every message a client may send. Action wins over
// Word, Word over Follow, and Follow over Query.
type Request struct {
	ID     string  `msgpack:"id"`
	Query  *string `msgpack:"q,omitempty"`
	Word   string  `msgpack:"w,omitempty"`
	Follow string  `msgpack:"f,omitempty"`
	Action string  `msgpack:"action,omitempty"` // "info", "reload"
}

// LookupResponse answers a query.
type LookupResponse struct {
	ID          string   `msgpack:"id"`
	Query       string   `msgpack:"q,omitempty"`
	State       string   `msgpack:"st"`
	Error       bool     `msgpack:"err,omitempty"`
	Headword    string   `msgpack:"k,omitempty"`
	Description string   `msgpack:"d,omitempty"`
	Ghost       string   `msgpack:"g,omitempty"`
	Searchable  []string `msgpack:"s,omitempty"`
	Repeated    bool     `msgpack:"rep,omitempty"`
	TimeTaken   int64    `msgpack:"t"`
}

// MeaningResponse answers a click on a clickable word.
type MeaningResponse struct {
	ID      string   `msgpack:"id"`
	Lines   []string `msgpack:"m"`
	Markup  string   `msgpack:"h"`
	Missing bool     `msgpack:"miss,omitempty"`
}

// InfoResponse answers admin actions.
type InfoResponse struct {
	ID             string `msgpack:"id"`
	Status         string `msgpack:"status"`
	Error          string `msgpack:"error,omitempty"`
	Entries        int    `msgpack:"entries"`
	SpecialWords   int    `msgpack:"special_words"`
	ClickableWords int    `msgpack:"clickable_words"`
}

// ErrorResponse holds basic error information for malformed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
