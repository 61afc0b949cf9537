package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"views/base.html": &fstest.MapFile{Data: []byte(
			`<main>{% block content %}{% endblock %}</main>`,
		)},
		"views/hello.html": &fstest.MapFile{Data: []byte(
			`{% extends "base.html" %}{% block content %}Hello {{ name }} ({{ app }}){% endblock %}`,
		)},
		"views/escape.html": &fstest.MapFile{Data: []byte(
			`<p>{{ text }}</p>`,
		)},
	}
}

func TestEngineRender(t *testing.T) {
	engine, err := NewEngine(
		WithFS(testFS()),
		WithBaseDir("views"),
		WithGlobals(map[string]any{"app": "greenbridge"}),
	)
	require.NoError(t, err)

	out, err := engine.RenderString("hello", map[string]any{"name": "Asha"})
	require.NoError(t, err)
	require.Equal(t, `<main>Hello Asha (greenbridge)</main>`, out)
}

func TestEngineEscapesByDefault(t *testing.T) {
	engine, err := NewEngine(WithFS(testFS()), WithBaseDir("views"))
	require.NoError(t, err)

	out, err := engine.RenderString("escape", map[string]any{
		"text": `<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestEngineStructContext(t *testing.T) {
	engine, err := NewEngine(WithFS(testFS()), WithBaseDir("views"))
	require.NoError(t, err)

	// structs reach templates through their json tags
	data := struct {
		Name string `json:"name"`
	}{Name: "Ravi"}
	out, err := engine.RenderString("hello", data)
	require.NoError(t, err)
	require.Contains(t, out, "Hello Ravi")
}

func TestEngineUnknownTemplate(t *testing.T) {
	engine, err := NewEngine(WithFS(testFS()), WithBaseDir("views"))
	require.NoError(t, err)

	_, err = engine.RenderString("nope", nil)
	require.Error(t, err)
}

func TestEngineRequiresSource(t *testing.T) {
	_, err := NewEngine()
	require.Error(t, err)
}
