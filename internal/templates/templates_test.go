package templates

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/misinform-app/articles/internal/apperrors"
	"github.com/misinform-app/articles/internal/utils"
)

const (
	shippedTemplates = "../../templates/empty"
	shippedStubs     = "../../templates/jsons"
)

func TestLookup(t *testing.T) {
	d, ok := Lookup(1)
	require.True(t, ok)
	assert.Equal(t, Descriptor{ID: 1, Key: "buzzfeed", TemplateFile: "buzzfeed.jinja.html", StubFile: "buzzfeed-master.json"}, d)

	for _, id := range []int{0, 4, 9, -1} {
		_, ok := Lookup(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestAll_OrderedByID(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, "buzzfeed", all[0].Key)
	assert.Equal(t, "journal", all[1].Key)
	assert.Equal(t, "modern", all[2].Key)
}

func TestStubLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal-master.json"), []byte(`{"title": "T"}`), 0o644))
	loader := NewStubLoader(dir)

	journal, _ := Lookup(2)
	text, err := loader.Load(journal)
	require.NoError(t, err)
	assert.Equal(t, `{"title": "T"}`, text)

	modern, _ := Lookup(3)
	_, err = loader.Load(modern)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeIO, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Cannot read file modern-master.json")
}

func TestNewRenderer_MissingDir(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "page.jinja.html",
		`<h1>{{ headline }}</h1>{% for item in items %}<li>{{ item.title }}</li>{% endfor %}`)
	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.Render("page.jinja.html", map[string]any{
		"headline": "Coffee <b>causes</b> invisibility",
		"items":    []any{map[string]any{"title": "One"}, map[string]any{"title": "Two"}},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Coffee &lt;b&gt;causes&lt;/b&gt; invisibility")
	assert.NotContains(t, out, "<b>causes</b>")
	assert.Contains(t, out, "<li>One</li><li>Two</li>")
}

func TestRenderer_Errors(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "broken.jinja.html", `{% for x in %}`)
	r, err := NewRenderer(dir)
	require.NoError(t, err)

	_, err = r.Render("missing.jinja.html", map[string]any{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeIO, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Template not found: missing.jinja.html")

	_, err = r.Render("broken.jinja.html", map[string]any{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeRender, apperrors.CodeOf(err))
}

func TestShippedStubsRender(t *testing.T) {
	r, err := NewRenderer(shippedTemplates)
	require.NoError(t, err)
	loader := NewStubLoader(shippedStubs)

	for _, d := range All() {
		t.Run(d.Key, func(t *testing.T) {
			stub, err := loader.Load(d)
			require.NoError(t, err)

			var data map[string]any
			require.NoError(t, json.Unmarshal([]byte(stub), &data))

			out, err := r.Render(d.TemplateFile, data)
			require.NoError(t, err)
			assert.Contains(t, out, "<!DOCTYPE html>")
		})
	}
}

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRender_EngineLogsGoThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := utils.Zlog
	utils.Zlog = zap.New(core)
	t.Cleanup(func() { utils.Zlog = prev })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list.jinja.html"),
		[]byte(`<ul>{% for item in items %}<li>{{ item }}</li>{% endfor %}</ul>`), 0o644))
	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.Render("list.jinja.html", map[string]any{"headline": "X"})
	require.NoError(t, err)
	assert.Equal(t, "<ul></ul>", out)

	assert.Positive(t, logs.FilterMessageSnippet("Value.Iterate() not available").Len())
}
