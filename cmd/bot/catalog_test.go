package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

func TestPrintTree(t *testing.T) {
	rb, err := othership.LoadDefault()
	require.NoError(t, err)

	var buf bytes.Buffer
	printTree(&buf, rb)

	out := buf.String()
	assert.Contains(t, out, "TRAINED (+10)")
	assert.Contains(t, out, "MASTER (+20)")
	assert.Contains(t, out, "Teamster: max wounds")
}

func TestLoadRulebook_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills: [{id: a, name: A, tier: expert}]\n"), 0o600))

	_, err := loadRulebook(path)
	assert.ErrorContains(t, err, path)
}

func TestLoadRulebook_Default(t *testing.T) {
	rb, err := loadRulebook("")
	require.NoError(t, err)
	assert.NotEmpty(t, rb.Scenarios())
}
