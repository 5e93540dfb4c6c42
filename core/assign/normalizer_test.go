package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskforge/allocd/core/model"
)

func TestTokens_SynonymFolding(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"k8s short form", "deploy on k8s", "kubernetes"},
		{"kubernetes full form", "Kubernetes operator", "kubernetes"},
		{"nodejs", "nodejs services", "node"},
		{"react native compound", "react native app", "reactnative"},
		{"postgresql", "PostgreSQL tuning", "postgres"},
		{"korean backend", "백엔드 개발", "backend"},
		{"korean frontend", "프론트엔드 화면", "frontend"},
		{"machine learning", "machine learning pipeline", "ml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokens(tc.text)
			assert.True(t, toks.Has(tc.want), "tokens %v should contain %q", toks, tc.want)
		})
	}
}

func TestTokens_Splitting(t *testing.T) {
	toks := Tokens("Python, Django & MySQL!")
	assert.True(t, toks.Has("python"))
	assert.True(t, toks.Has("django"))
	assert.True(t, toks.Has("mysql"))

	// single-rune fragments are dropped
	toks = Tokens("a b 한")
	assert.Empty(t, toks)
}

func TestTokens_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokens(""))
}

func TestTokens_Pure(t *testing.T) {
	a := Tokens("Spring Boot backend with Redis")
	b := Tokens("Spring Boot backend with Redis")
	assert.Equal(t, a, b)
}

func TestRequirementTokens_JSONDescription(t *testing.T) {
	req := model.Requirement{
		ID:      1,
		Title:   "search service",
		Summary: "",
		Description: `{"stack": ["Elasticsearch", "Kafka"], "details": {"cache": "Redis"}}`,
	}
	toks := RequirementTokens(req, nil)
	assert.True(t, toks.Has("kafka"))
	assert.True(t, toks.Has("redis"))
	assert.True(t, toks.Has("elasticsearch"))
	assert.True(t, toks.Has("search"))
}

func TestRequirementTokens_InvalidJSONFallsBack(t *testing.T) {
	req := model.Requirement{
		ID:          2,
		Title:       "Login API",
		Summary:     "session handling",
		Description: "not json at all {",
	}
	toks := RequirementTokens(req, nil)
	assert.True(t, toks.Has("api"))
	assert.True(t, toks.Has("login"))
	assert.True(t, toks.Has("session"))
}

func TestRequirementTokens_EmptyDescription(t *testing.T) {
	req := model.Requirement{ID: 3, Title: "dashboard UI"}
	toks := RequirementTokens(req, nil)
	assert.True(t, toks.Has("design")) // ui folds to design
	assert.True(t, toks.Has("dashboard"))
}

func TestTokenSet_Intersect(t *testing.T) {
	a := newTokenSet("python", "django", "api")
	b := newTokenSet("api", "python", "react")
	assert.Equal(t, 2, a.IntersectCount(b))
	assert.Equal(t, []string{"api", "python"}, a.Intersect(b))
	assert.Empty(t, a.Intersect(newTokenSet()))
}
