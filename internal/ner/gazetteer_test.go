package ner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGazetteerTag(t *testing.T) {
	g := NewGazetteer(GazetteerConfig{
		People:   []string{"Jane  Doe"},
		Products: []string{"tableau", " "},
	})

	text := "B.Tech in Computer Science from ABC Institute of Technology. " +
		"Interned at Acme Technologies and used Tableau. Mentored by Jane Doe."

	entities, err := g.Tag(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{Text: "b.tech", Label: Education},
		{Text: "abc institute of technology", Label: Fac},
		{Text: "acme technologies", Label: Org},
		{Text: "tableau", Label: Product},
		{Text: "jane doe", Label: Person},
	}, entities)
}

func TestGazetteerDegreePhrases(t *testing.T) {
	g := NewGazetteer(GazetteerConfig{})

	entities, err := g.Tag(context.Background(), "master of science and a phd, later an mba")
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{Text: "master of science", Label: Education},
		{Text: "phd", Label: Education},
		{Text: "mba", Label: Education},
	}, entities)
}

func TestGazetteerSkipsBareInstitutionWords(t *testing.T) {
	g := NewGazetteer(GazetteerConfig{})

	entities, err := g.Tag(context.Background(), "graduated from the university")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestGazetteerDeduplicates(t *testing.T) {
	g := NewGazetteer(GazetteerConfig{Organizations: []string{"Google", "Google Cloud"}})

	entities, err := g.Tag(context.Background(), "google cloud partner, previously at google and google")
	require.NoError(t, err)

	assert.Equal(t, []Entity{
		{Text: "google cloud", Label: Org},
		{Text: "google", Label: Org},
	}, entities)
}

func TestGazetteerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGazetteer(GazetteerConfig{}).Tag(ctx, "phd")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTaggerFuncAndNop(t *testing.T) {
	var tagger Tagger = TaggerFunc(func(_ context.Context, text string) ([]Entity, error) {
		return []Entity{{Text: text, Label: Person}}, nil
	})

	entities, err := tagger.Tag(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, []Entity{{Text: "ada", Label: Person}}, entities)

	entities, err = Nop{}.Tag(context.Background(), "ada")
	require.NoError(t, err)
	assert.Empty(t, entities)
}
