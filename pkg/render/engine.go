// Package render is the HTML view layer: a pongo2 template engine over
// an embedded filesystem, view models binding form definitions to
// submitted values and errors, theme token resolution, and sanitation
// for text that ends up inside markup.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sync"

	"github.com/flosch/pongo2/v6"
)

type config struct {
	fsys      fs.FS
	baseDir   string
	extension string
	globals   map[string]any
}

// Option configures the engine.
type Option func(*config)

// WithFS renders templates from an fs.FS, typically the embedded one.
func WithFS(fsys fs.FS) Option {
	return func(c *config) { c.fsys = fsys }
}

// WithBaseDir scopes template lookups to a subdirectory. Without
// WithFS it reads from the local filesystem, which is handy during
// template development.
func WithBaseDir(dir string) Option {
	return func(c *config) { c.baseDir = dir }
}

// WithExtension overrides the default ".html" appended to extensionless
// template names.
func WithExtension(ext string) Option {
	return func(c *config) {
		if ext != "" {
			c.extension = ext
		}
	}
}

// WithGlobals exposes values to every template.
func WithGlobals(data map[string]any) Option {
	return func(c *config) {
		if c.globals == nil {
			c.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			c.globals[key] = value
		}
	}
}

// Engine renders pongo2 templates with a parse-once cache.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

// NewEngine builds a template engine from the given options. One of
// WithFS or WithBaseDir is required.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := config{extension: ".html"}
	for _, opt := range opts {
		opt(&cfg)
	}

	var loader pongo2.TemplateLoader
	switch {
	case cfg.fsys != nil:
		fsys := cfg.fsys
		if cfg.baseDir != "" {
			sub, err := fs.Sub(fsys, cfg.baseDir)
			if err != nil {
				return nil, fmt.Errorf("render: scope to %q: %w", cfg.baseDir, err)
			}
			fsys = sub
		}
		loader = pongo2.NewFSLoader(fsys)
	case cfg.baseDir != "":
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: local loader %q: %w", cfg.baseDir, err)
		}
		loader = local
	default:
		return nil, fmt.Errorf("render: no template source configured")
	}

	set := pongo2.NewSet("greenbridge", loader)
	for key, value := range cfg.globals {
		set.Globals[key] = value
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// Render writes the named template to w.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	tmpl, err := e.template(name)
	if err != nil {
		return err
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("render: execute %q: %w", name, err)
	}
	return nil
}

// RenderString renders the named template to a string.
func (e *Engine) RenderString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	if path.Ext(name) == "" {
		name += e.extension
	}

	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

// toContext adapts arbitrary view data to a pongo2 context. Structs
// take a JSON round trip so templates address fields by their json
// tags.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("render: encode view data: %w", err)
		}
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("render: decode view data: %w", err)
		}
		return pongo2.Context(out), nil
	}
}
