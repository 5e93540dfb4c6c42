package assign

// category pairs a coarse work-type label with its keyword set.
type category struct {
	name  string
	words TokenSet
}

// categories is scanned in order and the first keyword intersection wins, so
// a requirement touching both backend and frontend terms classifies by table
// priority.
var categories = []category{
	{"backend", newTokenSet("backend", "api", "server", "db", "sql", "django", "spring", "node", "fastapi", "redis", "kafka")},
	{"frontend", newTokenSet("frontend", "ui", "ux", "react", "vue", "angular", "nextjs", "tailwind")},
	{"ai", newTokenSet("ml", "ai", "llm", "pytorch", "tensorflow", "nlp", "cv", "inference", "embedding")},
	{"devops", newTokenSet("devops", "aws", "gcp", "azure", "kubernetes", "docker", "cicd", "terraform")},
	{"data", newTokenSet("data", "etl", "spark", "airflow", "warehouse", "bi", "db", "sql")},
	{"mobile", newTokenSet("mobile", "android", "ios", "kotlin", "swift", "reactnative", "flutter")},
	{"qa", newTokenSet("qa", "test", "testing", "pytest", "selenium")},
	{"docs", newTokenSet("docs", "문서", "문서화", "스펙", "요구사항", "시나리오")},
	{"design", newTokenSet("design", "ui", "ux")},
}

// Classify infers the work category for a requirement token set. It returns
// an empty string when no category keyword intersects, which is a valid
// outcome rather than an error.
func Classify(tokens TokenSet) string {
	for _, c := range categories {
		if c.words.IntersectCount(tokens) > 0 {
			return c.name
		}
	}
	return ""
}

func categoryWords(name string) TokenSet {
	for _, c := range categories {
		if c.name == name {
			return c.words
		}
	}
	return nil
}
