package ner

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// GazetteerConfig lists known names that the rules cannot infer.
type GazetteerConfig struct {
	Organizations []string `mapstructure:"organizations"`
	People        []string `mapstructure:"people"`
	Products      []string `mapstructure:"products"`
}

type rule struct {
	label   Label
	pattern *regexp.Regexp
	// minWords is checked after leading filler words are trimmed.
	minWords int
}

// Gazetteer tags entities with regular expressions and configured
// dictionaries. It works on lowercased text and returns lowercased entities.
type Gazetteer struct {
	rules []rule
}

const (
	degreePattern = `\b(?:(?:bachelor|master)(?:'s)?(?: of| in) (?:[a-z]+ ){0,2}(?:science|arts|engineering|technology|commerce|administration|applications)` +
		`|b\.tech|m\.tech|b\.sc|m\.sc|btech|mtech|bsc|msc|ph\.d|phd|mba|mca|bca)\b`
	facilityPattern = `\b(?:[a-z]+ ){1,2}(?:university|college|institute)(?: of (?:[a-z]+ )?[a-z]+)?\b` +
		`|\buniversity of [a-z]+(?: [a-z]+)?\b`
	companyPattern = `\b(?:[a-z0-9&]+ ){1,2}(?:inc|ltd|llc|corp|corporation|technologies|solutions|labs|systems|limited)\b`
)

var filler = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "at": {}, "from": {}, "in": {}, "of": {}, "and": {},
	"to": {}, "for": {}, "with": {}, "by": {}, "on": {}, "studied": {}, "graduated": {},
	"attended": {}, "joined": {}, "worked": {}, "working": {}, "interned": {},
}

// NewGazetteer compiles the built-in rules together with the configured names.
func NewGazetteer(cfg GazetteerConfig) *Gazetteer {
	g := &Gazetteer{rules: []rule{
		{label: Education, pattern: regexp.MustCompile(degreePattern), minWords: 1},
		{label: Fac, pattern: regexp.MustCompile(facilityPattern), minWords: 2},
		{label: Org, pattern: regexp.MustCompile(companyPattern), minWords: 2},
	}}

	g.addDictionary(Org, cfg.Organizations)
	g.addDictionary(Person, cfg.People)
	g.addDictionary(Product, cfg.Products)

	return g
}

func (g *Gazetteer) addDictionary(label Label, names []string) {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.Join(strings.Fields(name), " "))
		if name == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	if len(quoted) == 0 {
		return
	}

	// longest first so alternation prefers the most specific name
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	pattern := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	g.rules = append(g.rules, rule{label: label, pattern: pattern, minWords: 1})
}

type span struct {
	start  int
	entity Entity
}

// Tag returns the entities in order of appearance, each (text, label) pair once.
func (g *Gazetteer) Tag(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	var spans []span
	seen := make(map[Entity]struct{})

	for _, r := range g.rules {
		for _, loc := range r.pattern.FindAllStringIndex(lower, -1) {
			words := trimFiller(strings.Fields(lower[loc[0]:loc[1]]))
			if len(words) < r.minWords {
				continue
			}
			e := Entity{Text: strings.Join(words, " "), Label: r.label}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			spans = append(spans, span{start: loc[0], entity: e})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	entities := make([]Entity, 0, len(spans))
	for _, s := range spans {
		entities = append(entities, s.entity)
	}
	return entities, nil
}

func trimFiller(words []string) []string {
	for len(words) > 0 {
		if _, ok := filler[words[0]]; !ok {
			break
		}
		words = words[1:]
	}
	return words
}
