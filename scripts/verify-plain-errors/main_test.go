package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFlagsViolations(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "violation.go"))
	require.NoError(t, err)

	violations, err := Analyze("file=" + path)
	require.NoError(t, err)
	require.Len(t, violations, 2)

	assert.Contains(t, violations[0], "direct Content-Type header")
	assert.Contains(t, violations[1], "http.Error call")
}

func TestAnalyzeAPIPackageIsClean(t *testing.T) {
	violations, err := Analyze(filepath.Join("..", "..", "internal", "api"))
	require.NoError(t, err)
	assert.Empty(t, violations)
}
