package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	// backend precedes frontend in the table, so mixed terms classify backend.
	assert.Equal(t, "backend", Classify(newTokenSet("api", "react")))
	assert.Equal(t, "frontend", Classify(newTokenSet("react")))
	assert.Equal(t, "ai", Classify(newTokenSet("llm", "docker")))
	assert.Equal(t, "devops", Classify(newTokenSet("docker")))
}

func TestClassify_TableOrder(t *testing.T) {
	// db appears in both backend and data keyword sets; table order decides.
	assert.Equal(t, "backend", Classify(newTokenSet("db")))
}

func TestClassify_NoCategory(t *testing.T) {
	assert.Equal(t, "", Classify(newTokenSet("gardening", "cooking")))
	assert.Equal(t, "", Classify(newTokenSet()))
}
