package extract

// Vocabulary holds the keyword lists matched by substring against the text.
type Vocabulary struct {
	Skills       []string
	Experience   []string
	Projects     []string
	Achievements []string
	Education    []string
}

// DefaultVocabulary returns the built-in keyword lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Skills: []string{
			"python", "java", "c++", "machine learning", "deep learning", "data science",
			"sql", "power bi", "excel", "pandas", "numpy", "matplotlib", "seaborn",
			"tensorflow", "keras", "pytorch", "nlp", "transformers", "scikit-learn",
			"flask", "django", "fastapi", "aws", "azure", "git", "github", "linux",
		},
		Experience: []string{
			"internship", "project", "developed", "engineer", "research", "experience",
			"worked", "implemented", "analyzed", "designed", "built", "maintained",
			"tested", "collaborated", "led",
		},
		Projects: []string{
			"project", "developed", "created", "built", "designed", "implemented",
			"prototype", "application",
		},
		Achievements: []string{
			"award", "certification", "certificate", "achievement", "honor",
			"recognition", "rank", "won", "secured", "completed", "participated",
		},
		Education: []string{
			"b.tech", "m.tech", "bachelor", "master", "phd", "university", "college",
			"institute",
		},
	}
}
