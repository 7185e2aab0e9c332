package search

// State classifies the outcome of a query.
type State int

const (
	// StateIdle is the neutral state for an empty query.
	StateIdle State = iota
	// StateMatch means an entry carries the query as a prefix.
	StateMatch
	// StateNoMatch means the query is well formed but nothing matched.
	StateNoMatch
	// StateInvalid means the query starts with whitespace.
	StateInvalid
	// StateUnavailable means no lexicon is loaded; every query gets it.
	StateUnavailable
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StateMatch:       "match",
	StateNoMatch:     "no_match",
	StateInvalid:     "invalid",
	StateUnavailable: "unavailable",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Result is what a presentation layer renders for one query.
type Result struct {
	Query string
	State State
	// Headword is the matched entry key as it appears in the source.
	Headword string
	// Description is sanitized, annotated markup with clickable words marked.
	Description string
	// Ghost is the suggested remainder after what the user typed.
	Ghost string
	// Searchable lists the texts of searchable spans in Description.
	Searchable []string
	// Repeated is set when the query equals the previous one and nothing was
	// recomputed; callers can skip re-rendering.
	Repeated bool
}

// IsError reports whether the result should be shown as an error state.
// An empty query is neutral, not an error.
func (r Result) IsError() bool {
	switch r.State {
	case StateNoMatch, StateInvalid, StateUnavailable:
		return true
	}
	return false
}
