package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refeitorio/controle-acesso/roster"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matriculas.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoster(t, "matricula;nome\n1001;Ana Souza\n 1002 ; Bruno Lima \n")

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	emp, found := r.Find("1001")
	require.True(t, found)
	assert.Equal(t, "Ana Souza", emp.Name)

	// Fields are trimmed
	emp, found = r.Find("1002")
	require.True(t, found)
	assert.Equal(t, "Bruno Lima", emp.Name)
}

func TestLoad_HeaderDiscarded(t *testing.T) {
	path := writeRoster(t, "matricula;nome\n1001;Ana Souza\n")

	r, err := roster.Load(path)
	require.NoError(t, err)

	_, found := r.Find("matricula")
	assert.False(t, found, "the header line must not become an employee")
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	path := writeRoster(t, "matricula;nome\n1001;Ana Souza\n\nlinha-sem-separador\n1002;Bruno Lima\n")

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := roster.Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestFind_FirstMatchWins(t *testing.T) {
	r := roster.New([]roster.Employee{
		{ID: "1001", Name: "Primeira"},
		{ID: "1001", Name: "Segunda"},
	})

	emp, found := r.Find("1001")
	require.True(t, found)
	assert.Equal(t, "Primeira", emp.Name)
}

func TestFind_NotFound(t *testing.T) {
	r := roster.New(nil)
	_, found := r.Find("1001")
	assert.False(t, found)
}
