package render

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ThemeContext is what the layout needs from a resolved theme: the
// merged tokens and their CSS custom-property form.
type ThemeContext struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars string            `json:"cssVars,omitempty"`
}

// Palette holds the registered theme manifests and resolves
// name/variant pairs into layout-ready token sets.
type Palette struct {
	registry  theme.Registry
	manifests map[string]*theme.Manifest
}

// NewPalette registers the given manifests.
func NewPalette(manifests ...*theme.Manifest) (*Palette, error) {
	p := &Palette{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if err := p.registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		p.manifests[manifest.Name] = manifest
	}
	return p, nil
}

// manifestFile is the YAML shape of a theme manifest on disk.
type manifestFile struct {
	Name     string            `yaml:"name"`
	Version  string            `yaml:"version"`
	Tokens   map[string]string `yaml:"tokens"`
	Variants map[string]struct {
		Tokens map[string]string `yaml:"tokens"`
	} `yaml:"variants"`
}

// ParseManifest reads a theme manifest from YAML.
func ParseManifest(raw []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("render: parse theme manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, errors.New("render: theme manifest needs a name")
	}
	if file.Version == "" {
		file.Version = "1.0.0"
	}
	manifest := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: variant.Tokens}
		}
	}
	return manifest, nil
}

// LoadFile registers a YAML manifest alongside the themes already in
// the palette, so deployments can ship their own look.
func (p *Palette) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("render: read theme manifest: %w", err)
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return err
	}
	if err := p.registry.Register(manifest); err != nil {
		return fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}
	p.manifests[manifest.Name] = manifest
	return nil
}

// Resolve merges a manifest's base tokens with the requested variant.
// An unknown variant falls back to the base tokens; an unknown theme
// is an error.
func (p *Palette) Resolve(name, variant string) (ThemeContext, error) {
	manifest, ok := p.manifests[name]
	if !ok {
		return ThemeContext{}, fmt.Errorf("render: unknown theme %q", name)
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	resolved := ThemeContext{Name: name, Tokens: tokens}
	if variant == "" {
		resolved.CSSVars = cssVars(tokens)
		return resolved, nil
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		resolved.Variant = variant
	}
	resolved.CSSVars = cssVars(tokens)
	return resolved, nil
}

// cssVars renders tokens as CSS custom properties in stable order.
func cssVars(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "--%s: %s; ", key, tokens[key])
	}
	return strings.TrimSpace(b.String())
}

// DefaultPalette is the built-in GreenBridge look with light and dark
// variants.
func DefaultPalette() (*Palette, error) {
	return NewPalette(&theme.Manifest{
		Name:    "greenbridge",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-bg":      "#f4f7f4",
			"color-surface": "#ffffff",
			"color-text":    "#1d2a23",
			"color-muted":   "#5c6f64",
			"color-primary": "#1f7a4d",
			"color-accent":  "#e8f3ec",
			"color-error":   "#b3372b",
			"color-success": "#1f7a4d",
			"color-info":    "#2b5fb3",
			"radius":        "10px",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"color-bg":      "#131a16",
					"color-surface": "#1c2620",
					"color-text":    "#e7efe9",
					"color-muted":   "#9db3a6",
					"color-accent":  "#233129",
				},
			},
		},
	})
}
