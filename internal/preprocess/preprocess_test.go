package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	in := "Skills:\tPython, C++ & C#\n\n• Built *Inventory Tracker* (2023) – node.js"
	assert.Equal(t, "Skills Python, C++ C# Built Inventory Tracker (2023) node.js", CleanText(in))
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Python, C++ (scikit-learn). node.js - -- ...")
	assert.Equal(t, []string{"Python", "C++", "scikit-learn", "node.js"}, got)
	assert.Empty(t, Tokenize("  "))
}

func TestRemoveStopwords(t *testing.T) {
	tokens := []string{"I", "have", "built", "the", "API", "with", "Go", "and", "didn't", "stop"}
	assert.Equal(t, []string{"built", "API", "Go", "stop"}, RemoveStopwords(tokens))
	assert.True(t, IsStopword("The"))
	assert.False(t, IsStopword("python"))
}

func TestSummarize(t *testing.T) {
	tokens := []string{"the", "Python", "and", "python", "sql"}
	stats := Summarize(tokens, RemoveStopwords(tokens))
	assert.Equal(t, Stats{Tokens: 5, Content: 3, Unique: 2}, stats)
}
