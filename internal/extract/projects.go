package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProjectPattern describes one project name rule: a trigger word, optionally
// followed by one of the qualifier words, followed by a run of Capitalized words.
type ProjectPattern struct {
	Trigger    string
	Qualifiers []string
}

// DefaultProjectPatterns are the built-in project name rules.
var DefaultProjectPatterns = []ProjectPattern{
	{Trigger: "project", Qualifiers: []string{"titled", "named", "called"}},
	{Trigger: "developed", Qualifiers: []string{"an", "a", "the"}},
	{Trigger: "built", Qualifiers: []string{"an", "a", "the"}},
	{Trigger: "created", Qualifiers: []string{"an", "a", "the"}},
	{Trigger: "designed", Qualifiers: []string{"an", "a", "the"}},
}

// MaxProjectNameLength caps a captured project name, in bytes.
const MaxProjectNameLength = 50

const capitalizedRun = `([A-Z][\w\-]*(?: [A-Z][\w\-]*)*)`

type projectRule struct {
	trigger string
	re      *regexp.Regexp
}

func compileProjectPatterns(patterns []ProjectPattern) []projectRule {
	rules := make([]projectRule, 0, len(patterns))
	for _, p := range patterns {
		trigger := strings.TrimSpace(p.Trigger)
		if trigger == "" {
			continue
		}

		expr := `(?i:\b` + regexp.QuoteMeta(trigger) + `\b)\s+`
		if len(p.Qualifiers) > 0 {
			quoted := make([]string, 0, len(p.Qualifiers))
			for _, q := range p.Qualifiers {
				quoted = append(quoted, regexp.QuoteMeta(q))
			}
			expr += `(?:(?i:` + strings.Join(quoted, "|") + `)\s+)?`
		}
		expr += capitalizedRun

		rules = append(rules, projectRule{trigger: trigger, re: regexp.MustCompile(expr)})
	}
	return rules
}

func (e *Extractor) projectNames(text string) []string {
	var names []string
	for _, rule := range e.projects {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			if name, ok := projectName(m[1]); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// projectName title-cases the captured phrase and accepts it when it has
// more than one word.
func projectName(phrase string) (string, bool) {
	words := strings.Fields(phrase)

	length := 0
	for i, w := range words {
		if i > 0 {
			length++
		}
		length += len(w)
		if length > MaxProjectNameLength {
			words = words[:i]
			break
		}
	}

	if len(words) < 2 {
		return "", false
	}

	return cases.Title(language.Und).String(strings.Join(words, " ")), true
}
