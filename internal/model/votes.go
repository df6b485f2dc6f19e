package model

// Votes holds the usernames that voted on an article or comment.
// The two lists are kept disjoint by vote.Toggle and keep the order
// in which votes were cast.
type Votes struct {
	UpvotedBy   []string `json:"upvotedBy" yaml:"upvotedBy"`
	DownvotedBy []string `json:"downvotedBy" yaml:"downvotedBy"`
}

func NewVotes() Votes {
	return Votes{UpvotedBy: []string{}, DownvotedBy: []string{}}
}

func (v Votes) Clone() Votes {
	return Votes{
		UpvotedBy:   append([]string{}, v.UpvotedBy...),
		DownvotedBy: append([]string{}, v.DownvotedBy...),
	}
}

// RemoveID returns ids without the first occurrence of id. The slice is
// returned unchanged when id is absent.
func RemoveID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
