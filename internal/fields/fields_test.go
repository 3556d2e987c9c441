package fields

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDeduplicatesAndSorts(t *testing.T) {
	b := NewBuilder()
	b.Add(Skills, "sql", "python", "sql", "")
	b.Add(Category("UNKNOWN"), "ignored")

	f := b.Build()

	assert.Equal(t, []string{"python", "sql"}, f.Skills)
	for _, c := range Categories() {
		assert.NotNil(t, f.Get(c), "category %s must be present", c)
	}
	assert.Equal(t, 2, f.Len())
}

func TestWithReturnsCopy(t *testing.T) {
	original := Empty().With(Skills, []string{"go"})
	updated := original.With(Skills, []string{"sql", "go", "sql"})

	assert.Equal(t, []string{"go"}, original.Skills)
	assert.Equal(t, []string{"go", "sql"}, updated.Skills)

	got := updated.Get(Skills)
	got[0] = "mutated"
	assert.Equal(t, "go", updated.Skills[0])
}

func TestMarshalWritesEveryCategoryInOrder(t *testing.T) {
	f := Empty().
		With(Skills, []string{"python", "sql"}).
		With(Name, []string{"o'neil"})

	expected := "NAME: ['o\\'neil']\n" +
		"ORG: []\n" +
		"EDUCATION: []\n" +
		"EXPERIENCE: []\n" +
		"PROJECTS: []\n" +
		"ACHIEVEMENTS: []\n" +
		"SKILLS: ['python', 'sql']\n"

	assert.Equal(t, expected, string(Marshal(f)))
}

func TestUnmarshalRoundTripsMarshal(t *testing.T) {
	f := Empty().
		With(Education, []string{"b.tech", "university"}).
		With(Projects, []string{"Inventory Tracker", "project"}).
		With(Org, []string{`back\slash`})

	decoded, err := Unmarshal(Marshal(f))
	require.NoError(t, err)
	assert.Equal(t, f, decoded)
}

func TestUnmarshalFillsMissingCategories(t *testing.T) {
	decoded, err := Unmarshal([]byte("header without separator\nSKILLS: [\"sql\", 'python', 'sql']\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "sql"}, decoded.Skills)
	assert.Equal(t, []string{}, decoded.Name)
	assert.Equal(t, []string{}, decoded.Achievements)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{name: "unknown category", data: "HOBBIES: ['chess']", line: 1},
		{name: "duplicate category", data: "SKILLS: []\nSKILLS: ['go']", line: 2},
		{name: "unterminated list", data: "NAME: []\nSKILLS: ['go'", line: 2},
		{name: "unquoted item", data: "SKILLS: [go]", line: 1},
		{name: "missing separator", data: "SKILLS: ['go' 'sql']", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "[]", want: []string{}},
		{name: "python repr", input: "['a', 'b c']", want: []string{"a", "b c"}},
		{name: "json", input: `["x", "y"]`, want: []string{"x", "y"}},
		{name: "trailing comma", input: "['a',]", want: []string{"a"}},
		{name: "escaped quote", input: `['it\'s']`, want: []string{"it's"}},
		{name: "no bracket", input: "'a', 'b'", wantErr: true},
		{name: "double comma", input: "['a',, 'b']", wantErr: true},
		{name: "trailing garbage", input: "['a'] x", wantErr: true},
		{name: "unterminated string", input: "['a]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ner_structured_output.txt")
	f := Empty().With(Achievements, []string{"award"})

	require.NoError(t, WriteFile(path, f))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)

	require.NoError(t, os.WriteFile(path, []byte("SKILLS: ['broken"), 0o644))
	_, err = ReadFile(path)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}
