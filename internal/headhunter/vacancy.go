package headhunter

import (
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mitchellh/mapstructure"
)

type Vacancy struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Area struct {
		Name string `json:"name,omitempty"`
	} `json:"area,omitempty"`
	Experience struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"experience,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Description  string `json:"description,omitempty"`
	KeySkills    []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Snippet struct {
		Requirement    string `json:"requirement,omitempty"`
		Responsibility string `json:"responsibility,omitempty"`
	} `json:"snippet,omitempty"`
}

func decodeVacancy(raw map[string]interface{}) (*Vacancy, error) {
	var vacancy Vacancy
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &vacancy,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &vacancy, nil
}

var anyTag = regexp.MustCompile(`<[^>]*>`)

// PlainText converts the vacancy markup to markdown, which the text pipeline
// reads as plain text. Markup the converter rejects has its tags dropped.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		md = html.UnescapeString(anyTag.ReplaceAllString(s, " "))
	}
	return strings.TrimSpace(md)
}

// Skills returns the key skill names.
func (v *Vacancy) Skills() []string {
	skills := make([]string, 0, len(v.KeySkills))
	for _, s := range v.KeySkills {
		if name := strings.TrimSpace(s.Name); name != "" {
			skills = append(skills, name)
		}
	}
	return skills
}

// JobDescription renders the vacancy as job description text.
func (v *Vacancy) JobDescription() string {
	var parts []string
	if v.Name != "" {
		parts = append(parts, v.Name)
	}
	if d := PlainText(v.Description); d != "" {
		parts = append(parts, d)
	} else {
		for _, s := range []string{v.Snippet.Requirement, v.Snippet.Responsibility} {
			if s = PlainText(s); s != "" {
				parts = append(parts, s)
			}
		}
	}
	if skills := v.Skills(); len(skills) > 0 {
		parts = append(parts, "Key skills: "+strings.Join(skills, ", "))
	}
	return strings.Join(parts, "\n\n")
}
