package enhance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/fields"
)

type scripted struct {
	skills  string
	rewrite string
	err     error
	prompts []string
}

func (s *scripted) Infer(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.err != nil {
		return "", s.err
	}
	if strings.HasPrefix(prompt, "Identify") {
		return s.skills, nil
	}
	return s.rewrite, nil
}

func newEnhancer(s *scripted, opts ...Option) *Enhancer {
	return New(s, extract.Vocabulary{}, nil, opts...)
}

func TestInferProjectSkillsKeepsEvidence(t *testing.T) {
	s := &scripted{skills: "Python, Pandas, TensorFlow, SQL, "}

	got, err := newEnhancer(s).InferProjectSkills(context.Background(),
		"Developed a churn model with pandas", "Skills: python, pandas, sql")
	require.NoError(t, err)

	assert.Equal(t, []string{"pandas", "python", "sql"}, got)
	assert.Contains(t, s.prompts[0], `"Developed a churn model with pandas"`)
}

func TestInferProjectSkillsRefusal(t *testing.T) {
	got, err := newEnhancer(&scripted{skills: ai.InsufficientInformation}).
		InferProjectSkills(context.Background(), "did things", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		refused bool
	}{
		{
			name:  "accepted",
			reply: "Built a churn prediction model in Python using pandas.",
			want:  "Built a churn prediction model in Python using pandas.",
		},
		{
			name:    "invented skills",
			reply:   "Built a churn model using pandas and TensorFlow on AWS.",
			want:    ai.InsufficientInformation,
			refused: true,
		},
		{
			name:    "model refusal",
			reply:   " Not enough information to infer. ",
			want:    ai.InsufficientInformation,
			refused: true,
		},
		{
			name:  "skill already in the sentence",
			reply: "Engineered a churn model leveraging Excel.",
			want:  "Engineered a churn model leveraging Excel.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scripted{rewrite: tt.reply}
			rw, err := newEnhancer(s).Rewrite(context.Background(), "built a churn model with pandas in excel", []string{"pandas", "python"})
			require.NoError(t, err)

			assert.Equal(t, tt.want, rw.Rewritten)
			assert.Equal(t, tt.refused, rw.Refused)
			assert.Equal(t, "built a churn model with pandas in excel", rw.Original)
			assert.Contains(t, s.prompts[0], "Include these skills naturally: pandas, python")
		})
	}
}

func enhanceInput() Input {
	return Input{
		ResumeText: "Jane Doe\nDeveloped a churn model with pandas and python.\n" +
			"Hobbies: chess and hiking\nLed a team of four engineers on research",
		Resume:        fields.Empty().With(fields.Skills, []string{"Pandas", "python"}),
		JD:            fields.Empty().With(fields.Skills, []string{"python", "SQL", "aws"}),
		ResumeContent: []string{"developed", "churn", "model", "pandas", "python"},
		JDContent:     []string{"Python", "sql", "aws"},
	}
}

func TestEnhance(t *testing.T) {
	s := &scripted{skills: "pandas, python", rewrite: "Improved sentence."}

	result, err := newEnhancer(s).Enhance(context.Background(), enhanceInput())
	require.NoError(t, err)

	require.Len(t, result.Sentences, 2)
	assert.Equal(t, "Developed a churn model with pandas and python", result.Sentences[0].Original)
	assert.Equal(t, "Led a team of four engineers on research", result.Sentences[1].Original)
	assert.Equal(t, "Improved sentence.", result.Sentences[1].Rewritten)
	assert.Equal(t, []string{"pandas", "python"}, result.Sentences[0].Skills)

	assert.Equal(t, []string{"aws", "sql"}, result.Missing)
	assert.Equal(t, []string{
		"Add these skills to your resume: aws, sql",
		"Consider expanding your resume with more details and keywords.",
		"You have 1 keywords matching the JD. Good alignment!",
	}, result.Suggestions)
}

func TestEnhanceServiceFailureKeepsGap(t *testing.T) {
	s := &scripted{err: errors.New("503 unavailable")}

	result, err := newEnhancer(s).Enhance(context.Background(), enhanceInput())

	var serr *ai.ServiceError
	require.ErrorAs(t, err, &serr)
	require.NotNil(t, result)
	assert.Empty(t, result.Sentences)
	assert.Equal(t, []string{"aws", "sql"}, result.Missing)
	assert.Len(t, s.prompts, 1, "rewriting stops at the first failure")
}

func TestEnhanceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newEnhancer(&scripted{}).Enhance(ctx, enhanceInput())
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestEnhanceWithoutInferrerRefuses(t *testing.T) {
	result, err := New(nil, extract.Vocabulary{}, nil).Enhance(context.Background(), enhanceInput())
	require.NoError(t, err)

	require.Len(t, result.Sentences, 2)
	for _, s := range result.Sentences {
		assert.True(t, s.Refused)
		assert.Equal(t, ai.InsufficientInformation, s.Rewritten)
	}
}

func TestSentencesLimit(t *testing.T) {
	e := newEnhancer(&scripted{}, WithMaxSentences(1))
	got := e.Sentences("Built a parser for logs. Designed the schema for events; Designed the schema for events")
	assert.Equal(t, []string{"Built a parser for logs"}, got)

	e = newEnhancer(&scripted{})
	got = e.Sentences("- Built a parser for logs\n- Built a parser for logs\nwent hiking every weekend")
	assert.Equal(t, []string{"Built a parser for logs"}, got)
}

func TestSuggestions(t *testing.T) {
	long := make([]string, 501)
	for i := range long {
		long[i] = fmt.Sprintf("w%d", i)
	}

	got := Suggestions([]string{"a", "b", "c", "d", "e", "f"}, long, []string{"W1", "w2", "zz"})
	assert.Equal(t, []string{
		"Add these skills to your resume: a, b, c, d, e",
		"Your resume might be too long. Consider making it more concise.",
		"You have 2 keywords matching the JD. Good alignment!",
	}, got)

	assert.Empty(t, Suggestions(nil, long[:100], nil))
}

func TestRenderReport(t *testing.T) {
	e := &Enhancement{
		Sentences:   []Rewrite{{Rewritten: "Built X."}, {Rewritten: ai.InsufficientInformation}},
		Missing:     []string{"aws"},
		Suggestions: []string{"Add these skills to your resume: aws"},
	}

	expected := "Enhanced Project/Experience Sentences:\n" +
		"=====================================\n" +
		"- Built X.\n" +
		"- Not enough information to infer.\n" +
		"\nSkills Missing in CV (from JD):\n" +
		"=====================================\n" +
		"- aws\n" +
		"\nSuggestions:\n" +
		"=====================================\n" +
		"1. Add these skills to your resume: aws\n"
	assert.Equal(t, expected, RenderReport(e))

	path, err := Save(e, filepath.Join(t.TempDir(), "out"), "")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))
	assert.Equal(t, DefaultReportFile, filepath.Base(path))
}

func TestEnhancedResume(t *testing.T) {
	assert.Equal(t,
		"ENHANCED RESUME\n\nmy resume\n\n---\n\nADDITIONAL RECOMMENDED SKILLS (from JD matching):\n"+
			"None - your resume skills align perfectly with the JD!",
		EnhancedResume("my resume", nil))

	many := make([]string, 20)
	for i := range many {
		many[i] = fmt.Sprintf("s%02d", i)
	}
	out := EnhancedResume("cv", many)
	assert.True(t, strings.HasSuffix(out, "s13\ns14"))
	assert.NotContains(t, out, "s15")
}
