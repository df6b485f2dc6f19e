// Package route classifies request paths into logical routes.
//
// Classification is structural. A path is split on "/" with empty segments
// dropped, and the first shape in Shapes that accepts the segments decides
// the route. Trailing slashes, repeated slashes and extra trailing segments
// do not change the outcome.
package route

import "strings"

type Kind int8

const (
	// Static is a bare collection such as /articles.
	Static Kind = iota + 1
	// Vote is /{resource}/{id}/upvote or /{resource}/{id}/downvote.
	Vote
	// Username is /users/{username}.
	Username
	// ID is /{resource}/{id}.
	ID
)

// Route is the result of classifying a path.
type Route struct {
	Kind     Kind
	Resource string // first segment
	Param    string // username or id, as written in the path
	Action   string // "upvote" or "downvote" for Vote routes
}

// Shape is one entry of the classification table.
type Shape struct {
	Kind    Kind
	Pattern string
	Match   func(segments []string) bool
}

// Shapes is consulted in order; the first match wins.
var Shapes = []Shape{
	{
		Kind:    Static,
		Pattern: "/{resource}",
		Match:   func(s []string) bool { return len(s) == 1 },
	},
	{
		Kind:    Vote,
		Pattern: "/{resource}/{id}/{upvote|downvote}",
		Match:   func(s []string) bool { return len(s) > 2 && IsVoteAction(s[2]) },
	},
	{
		Kind:    Username,
		Pattern: "/users/{username}",
		Match:   func(s []string) bool { return s[0] == "users" },
	},
	{
		Kind:    ID,
		Pattern: "/{resource}/{id}",
		Match:   func([]string) bool { return true },
	},
}

func IsVoteAction(s string) bool {
	return s == "upvote" || s == "downvote"
}

// Segments splits path on "/" and discards empty segments.
func Segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

// Classify returns the route for path. It reports false for a path with no
// segments, which no route can serve.
func Classify(path string) (Route, bool) {
	s := Segments(path)
	if len(s) == 0 {
		return Route{}, false
	}

	for _, shape := range Shapes {
		if !shape.Match(s) {
			continue
		}

		r := Route{Kind: shape.Kind, Resource: s[0]}
		if shape.Kind != Static {
			r.Param = s[1]
		}
		if shape.Kind == Vote {
			r.Action = s[2]
		}

		return r, true
	}

	return Route{}, false
}

// Key is the logical route key, e.g. "/articles/:id/upvote".
func (r Route) Key() string {
	switch r.Kind {
	case Static:
		return "/" + r.Resource
	case Vote:
		return "/" + r.Resource + "/:id/" + r.Action
	case Username:
		return "/" + r.Resource + "/:username"
	case ID:
		return "/" + r.Resource + "/:id"
	}

	return ""
}

// Path is the canonical concrete path of the route with parameters filled
// in and anything the classification ignored dropped.
func (r Route) Path() string {
	switch r.Kind {
	case Static:
		return "/" + r.Resource
	case Vote:
		return "/" + r.Resource + "/" + r.Param + "/" + r.Action
	case Username, ID:
		return "/" + r.Resource + "/" + r.Param
	}

	return "/"
}
