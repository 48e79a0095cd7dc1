package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTxtSplitsParagraphs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "policy.txt",
		"Академическая стипендия назначается по итогам сессии.\n\n"+
			"Размер составляет 1500 рублей.\n\n\n"+
			"   \n")

	docs, err := New().Load([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "академическая стипендия назначается по итогам сессии.", docs[0].Text)
	assert.Equal(t, "размер составляет 1500 рублей.", docs[1].Text)
	assert.Equal(t, path, docs[0].Metadata["source"])
	assert.Equal(t, 0, docs[0].Metadata["paragraph"])
	assert.Equal(t, 1, docs[1].Metadata["paragraph"])
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestLoadCollapsesInnerWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "messy.txt", "Первая   строка\nвторая строка")

	docs, err := New().Load([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "первая строка вторая строка", docs[0].Text)
}

func TestLoadHTMLStripsMarkup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html",
		`<html><head><style>p { color: red; }</style>`+
			`<script>var x = "скрипт";</script></head>`+
			`<body><p>Стипендия назначается приказом.</p>`+
			`<p>Выплата производится ежемесячно.</p></body></html>`)

	docs, err := New().Load([]string{path})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "стипендия назначается приказом.", docs[0].Text)
	assert.Equal(t, "выплата производится ежемесячно.", docs[1].Text)
	for _, d := range docs {
		assert.NotContains(t, d.Text, "скрипт")
		assert.NotContains(t, d.Text, "color")
	}
}

func TestLoadGlobPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "первый документ")
	writeFile(t, dir, "b.txt", "второй документ")

	docs, err := New().Load([]string{filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestLoadSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "текст положения")
	missing := filepath.Join(dir, "missing.txt")

	docs, err := New().Load([]string{good, missing})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoadUnsupportedExtensionSkipped(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "текст положения")
	bad := writeFile(t, dir, "data.docx", "не поддерживается")

	docs, err := New().Load([]string{good, bad})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoadEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	_, err := New().Load([]string{filepath.Join(dir, "nothing.txt")})
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}
