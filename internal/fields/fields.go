package fields

import (
	"sort"
)

// Category names one semantic section of a resume or job description.
type Category string

const (
	Name         Category = "NAME"
	Org          Category = "ORG"
	Education    Category = "EDUCATION"
	Experience   Category = "EXPERIENCE"
	Projects     Category = "PROJECTS"
	Achievements Category = "ACHIEVEMENTS"
	Skills       Category = "SKILLS"
)

var categories = []Category{Name, Org, Education, Experience, Projects, Achievements, Skills}

// Categories returns all categories in serialization order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// StructuredFields holds the extracted values of a single document.
// Every category is always present; a category without matches is an empty slice.
type StructuredFields struct {
	Name         []string `mapstructure:"NAME" json:"name"`
	Org          []string `mapstructure:"ORG" json:"org"`
	Education    []string `mapstructure:"EDUCATION" json:"education"`
	Experience   []string `mapstructure:"EXPERIENCE" json:"experience"`
	Projects     []string `mapstructure:"PROJECTS" json:"projects"`
	Achievements []string `mapstructure:"ACHIEVEMENTS" json:"achievements"`
	Skills       []string `mapstructure:"SKILLS" json:"skills"`
}

// Empty returns StructuredFields with every category set to an empty slice.
func Empty() StructuredFields {
	var f StructuredFields
	for _, c := range categories {
		*f.slot(c) = []string{}
	}
	return f
}

// Get returns a copy of the values stored for the category.
func (f StructuredFields) Get(c Category) []string {
	slot := f.slot(c)
	if slot == nil {
		return []string{}
	}
	out := make([]string, len(*slot))
	copy(out, *slot)
	return out
}

// With returns a copy of f where the category holds the sorted unique values.
func (f StructuredFields) With(c Category, values []string) StructuredFields {
	out := f.normalized()
	if slot := out.slot(c); slot != nil {
		*slot = NewSet(values...).Sorted()
	}
	return out
}

// Len returns the total number of values across all categories.
func (f StructuredFields) Len() int {
	total := 0
	for _, c := range categories {
		total += len(*f.slot(c))
	}
	return total
}

// normalized returns a copy with no nil categories.
func (f StructuredFields) normalized() StructuredFields {
	out := f
	for _, c := range categories {
		slot := out.slot(c)
		if *slot == nil {
			*slot = []string{}
			continue
		}
		cp := make([]string, len(*slot))
		copy(cp, *slot)
		*slot = cp
	}
	return out
}

func (f *StructuredFields) slot(c Category) *[]string {
	switch c {
	case Name:
		return &f.Name
	case Org:
		return &f.Org
	case Education:
		return &f.Education
	case Experience:
		return &f.Experience
	case Projects:
		return &f.Projects
	case Achievements:
		return &f.Achievements
	case Skills:
		return &f.Skills
	default:
		return nil
	}
}

// Builder accumulates values per category with set semantics.
type Builder struct {
	sets map[Category]Set
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{sets: make(map[Category]Set, len(categories))}
	for _, c := range categories {
		b.sets[c] = NewSet()
	}
	return b
}

// Add inserts values into the category. Unknown categories are ignored.
func (b *Builder) Add(c Category, values ...string) {
	set, ok := b.sets[c]
	if !ok {
		return
	}
	set.Add(values...)
}

// Build returns the accumulated values as sorted unique slices.
func (b *Builder) Build() StructuredFields {
	var f StructuredFields
	for _, c := range categories {
		*f.slot(c) = b.sets[c].Sorted()
	}
	return f
}

// Set is an unordered collection of unique strings.
type Set map[string]struct{}

// NewSet returns a set holding the provided values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	s.Add(values...)
	return s
}

// Add inserts values, skipping empty strings.
func (s Set) Add(values ...string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the values in lexicographic order. The result is never nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
