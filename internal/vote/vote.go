// Package vote implements the up/down vote toggle shared by articles and
// comments.
package vote

import (
	"fmt"

	"github.com/SergeyParamoshkin/newsboard/internal/model"
)

type Direction int8

const (
	Up Direction = iota + 1
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "upvote"
	case Down:
		return "downvote"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// ParseDirection maps the path action ("upvote", "downvote") to a Direction.
func ParseDirection(action string) (Direction, bool) {
	switch action {
	case "upvote":
		return Up, true
	case "downvote":
		return Down, true
	}

	return 0, false
}

// Toggle records username's vote in direction d. The username is first
// removed from the opposite list, then appended to the requested one unless
// it is already there, so repeating a vote changes nothing.
func Toggle(v *model.Votes, username string, d Direction) {
	same, opposite := &v.UpvotedBy, &v.DownvotedBy
	if d == Down {
		same, opposite = opposite, same
	}

	*opposite = remove(*opposite, username)
	if !contains(*same, username) {
		*same = append(*same, username)
	}
}

func contains(list []string, username string) bool {
	for _, v := range list {
		if v == username {
			return true
		}
	}

	return false
}

func remove(list []string, username string) []string {
	out := list[:0]
	for _, v := range list {
		if v != username {
			out = append(out, v)
		}
	}

	return out
}
