// Package ner defines the named entity tagging capability used by the field
// extractor and a deterministic dictionary based implementation of it.
package ner

import "context"

// Label is the semantic type of an entity. The set is open: taggers may
// return labels not listed here and consumers ignore what they do not route.
type Label string

const (
	Person    Label = "PERSON"
	Org       Label = "ORG"
	Fac       Label = "FAC"
	Education Label = "EDUCATION"
	WorkOfArt Label = "WORK_OF_ART"
	Product   Label = "PRODUCT"
	GPE       Label = "GPE"
	Date      Label = "DATE"
)

// Entity is a tagged span of the input text.
type Entity struct {
	Text  string `json:"text" mapstructure:"text"`
	Label Label  `json:"label" mapstructure:"label"`
}

// Tagger finds entities in text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Entity, error)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(ctx context.Context, text string) ([]Entity, error)

func (f TaggerFunc) Tag(ctx context.Context, text string) ([]Entity, error) {
	return f(ctx, text)
}

// Nop never finds anything.
type Nop struct{}

func (Nop) Tag(context.Context, string) ([]Entity, error) {
	return nil, nil
}
