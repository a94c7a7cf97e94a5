package search

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var flagPattern = regexp.MustCompile(`^--?[a-z]+`)

// IsFlag reports whether a query word is passed to rg as an option
func IsFlag(s string) bool {
	return flagPattern.MatchString(s)
}

// Tokenize turns a free-text query into rg arguments.
// Flags stay separate tokens; a run of words that follows a non-flag token
// is merged into that token with single spaces, so "-i foo bar" becomes
// ["-i", "foo bar"]. Words are split on single whitespace characters, which
// keeps repeated blanks inside phrases.
func Tokenize(query string) []string {
	if query == "" {
		return nil
	}
	words := splitEachSpace(query)

	tokens := make([]string, 0, len(words))
	for i, w := range words {
		if i == 0 || IsFlag(w) || IsFlag(tokens[len(tokens)-1]) {
			tokens = append(tokens, w)
			continue
		}
		tokens[len(tokens)-1] += " " + w
	}
	return tokens
}

// splitEachSpace splits on every whitespace rune, keeping empty words
// between adjacent separators.
func splitEachSpace(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			words = append(words, s[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(words, s[start:])
}
