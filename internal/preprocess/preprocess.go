// Package preprocess cleans extracted document text and splits it into tokens.
package preprocess

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed stopwords.txt
var stopwordList string

var stopwords = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(stopwordList) {
		set[w] = struct{}{}
	}
	return set
}()

var disallowed = regexp.MustCompile(`[^A-Za-z0-9\s.,\-()+#]`)

// CleanText drops characters outside letters, digits and . , - ( ) + # and
// collapses whitespace. Case is kept so capitalized phrases survive.
func CleanText(s string) string {
	s = disallowed.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits s on whitespace and trims surrounding punctuation from every
// token. Inner punctuation is kept (c++, node.js, scikit-learn).
func Tokenize(s string) []string {
	raw := strings.Fields(s)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.Trim(t, ".,()-"); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// IsStopword reports whether the token is an English stopword, ignoring case.
func IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}

// RemoveStopwords returns the tokens that are not stopwords.
func RemoveStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats summarizes a token stream.
type Stats struct {
	Tokens  int `json:"tokens"`
	Content int `json:"content_tokens"`
	Unique  int `json:"unique_content_tokens"`
}

// Summarize counts all tokens and the content tokens left after stopword removal.
func Summarize(tokens, content []string) Stats {
	unique := make(map[string]struct{}, len(content))
	for _, t := range content {
		unique[strings.ToLower(t)] = struct{}{}
	}
	return Stats{Tokens: len(tokens), Content: len(content), Unique: len(unique)}
}
