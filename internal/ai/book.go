package ai

import "strings"

// OpeningBook maps the concatenated coordinate notation of the moves played so far
// ("" for the initial position, "e2e4e7e5" after two plies) to candidate replies.
// It is never modified after construction.
type OpeningBook map[string][]string

var defaultBook = OpeningBook{
	"":     {"e2e4", "d2d4"},
	"e2e4": {"e7e5", "c7c5", "e7e6"},
	"d2d4": {"d7d5", "g8f6", "e7e6"},

	"e2e4e7e5": {"g1f3", "f1c4"},
	"e2e4c7c5": {"g1f3", "b1c3"},
	"e2e4e7e6": {"d2d4"},
	"d2d4d7d5": {"c2c4", "g1f3"},
	"d2d4g8f6": {"c2c4", "g1f3"},
	"d2d4e7e6": {"c2c4", "e2e4"},

	"e2e4e7e5g1f3": {"b8c6", "g8f6"},
	"e2e4e7e5f1c4": {"g8f6", "b8c6"},
	"e2e4c7c5g1f3": {"d7d6", "b8c6", "e7e6"},
	"e2e4e7e6d2d4": {"d7d5"},
	"d2d4d7d5c2c4": {"e7e6", "c7c6"},
	"d2d4g8f6c2c4": {"e7e6", "g7g6"},
}

// DefaultBook returns the built-in opening book.
func DefaultBook() OpeningBook {
	return defaultBook
}

// BookKey joins move notations into a book key.
func BookKey(moves []string) string {
	return strings.Join(moves, "")
}

func (b OpeningBook) Candidates(key string) []string {
	return b[key]
}
