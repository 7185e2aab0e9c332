package search

import (
	"net/url"
	"strings"
)

// QueryFromFragment decodes a permalink fragment such as "#%C4%B1%C5%9F"
// back into the query it was made from. Undecodable input is returned as is.
func QueryFromFragment(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	q, err := url.PathUnescape(fragment)
	if err != nil {
		return fragment
	}
	return q
}

// FragmentFor encodes query as a permalink fragment. The empty query maps to "".
func FragmentFor(query string) string {
	if query == "" {
		return ""
	}
	return "#" + url.PathEscape(query)
}
