package fields

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseError reports malformed structured-fields or token input.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Reason)
	}
	return "parse error: " + e.Reason
}

// Marshal encodes the fields as one `CATEGORY: ['a', 'b']` line per category.
func Marshal(f StructuredFields) []byte {
	var buf bytes.Buffer
	for _, c := range categories {
		buf.WriteString(string(c))
		buf.WriteString(": ")
		buf.WriteString(FormatList(f.Get(c)))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// FormatList renders values as a bracketed list of single-quoted strings.
func FormatList(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		for _, r := range v {
			if r == '\'' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// Unmarshal decodes the line format produced by Marshal. Lines without a colon
// are skipped. Categories absent from the input decode as empty.
func Unmarshal(data []byte) (StructuredFields, error) {
	raw := make(map[string][]string, len(categories))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if !Category(key).Valid() {
			return StructuredFields{}, &ParseError{Line: line, Reason: fmt.Sprintf("unknown category %q", key)}
		}
		if _, dup := raw[key]; dup {
			return StructuredFields{}, &ParseError{Line: line, Reason: fmt.Sprintf("duplicate category %q", key)}
		}

		values, err := ParseList(value)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				return StructuredFields{}, &ParseError{Line: line, Reason: perr.Reason}
			}
			return StructuredFields{}, err
		}
		raw[key] = values
	}
	if err := scanner.Err(); err != nil {
		return StructuredFields{}, &ParseError{Line: line + 1, Reason: err.Error()}
	}

	var decoded StructuredFields
	if err := mapstructure.Decode(raw, &decoded); err != nil {
		return StructuredFields{}, fmt.Errorf("decode structured fields: %w", err)
	}

	b := NewBuilder()
	for _, c := range categories {
		b.Add(c, *decoded.slot(c)...)
	}
	return b.Build(), nil
}

// ParseList parses a bracketed list literal such as `['a', "b"]`.
// Items must be quoted; backslash escapes the next character.
func ParseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		return nil, &ParseError{Reason: "list must start with '['"}
	}

	runes := []rune(s)
	out := []string{}
	i := 1
	expectItem := true

	for {
		for i < len(runes) && isSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			return nil, &ParseError{Reason: "unterminated list"}
		}

		switch r := runes[i]; {
		case r == ']':
			i++
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			if i != len(runes) {
				return nil, &ParseError{Reason: "unexpected content after ']'"}
			}
			return out, nil
		case r == ',':
			if expectItem {
				return nil, &ParseError{Reason: "unexpected ','"}
			}
			expectItem = true
			i++
		case r == '\'' || r == '"':
			if !expectItem {
				return nil, &ParseError{Reason: "missing ',' between items"}
			}
			item, next, err := readQuoted(runes, i)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
			i = next
			expectItem = false
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
}

func readQuoted(runes []rune, start int) (string, int, error) {
	quote := runes[start]
	var b strings.Builder
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
			if i >= len(runes) {
				return "", 0, &ParseError{Reason: "dangling escape"}
			}
			b.WriteRune(unescape(runes[i]))
		case quote:
			return b.String(), i + 1, nil
		default:
			b.WriteRune(runes[i])
		}
	}
	return "", 0, &ParseError{Reason: "unterminated string"}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return r
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ReadFile loads structured fields from path.
func ReadFile(path string) (StructuredFields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StructuredFields{}, err
	}
	f, err := Unmarshal(data)
	if err != nil {
		return StructuredFields{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile stores structured fields at path.
func WriteFile(path string, f StructuredFields) error {
	return os.WriteFile(path, Marshal(f), 0o644)
}
