// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks provides the content block registry: the process-wide
// mapping from a block-type identifier to its data schema, default payload,
// and HTML renderer. The registry is built once at startup and read
// concurrently without synchronization; new block types are added by
// registering a definition, never by touching the page data model or the
// publish pipeline.
package blocks

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"siteforge/internal/markdown"
)

// Definition describes one block type: its identity, editor metadata, the
// JSON Schema its data payload must satisfy, the payload a freshly inserted
// block starts with, and the HTML template that renders it.
type Definition struct {
	// Type is the stable string key stored in page content.
	Type string

	// Name is the human-readable label shown in the editor palette.
	Name string

	// Description is shown under the name in the "add section" palette.
	Description string

	// Schema is the JSON Schema source validating the Data payload.
	Schema string

	// Defaults is the data payload used when the block is freshly inserted.
	Defaults map[string]any

	// Template is the html/template source rendering the block. It receives
	// {Data, Site} where Data is the block payload and Site the render-time
	// site context.
	Template string

	compiled *jsonschema.Schema
	tmpl     *template.Template
}

// templateFuncs are helpers available to every block template.
var templateFuncs = template.FuncMap{
	// markdown converts a Markdown string to trusted HTML. Used by the
	// rich-text block.
	"markdown": func(v any) template.HTML {
		s, ok := v.(string)
		if !ok {
			return ""
		}
		out, err := markdown.ToHTML(s)
		if err != nil {
			return template.HTML(template.HTMLEscapeString(s))
		}
		return template.HTML(out)
	},
}

// compile parses the definition's schema and template. Called once per
// definition when the registry is built.
func (d *Definition) compile() error {
	compiler := jsonschema.NewCompiler()
	url := "mem://blocks/" + d.Type + ".schema.json"
	if err := compiler.AddResource(url, strings.NewReader(d.Schema)); err != nil {
		return fmt.Errorf("register schema for block %q: %w", d.Type, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("compile schema for block %q: %w", d.Type, err)
	}
	d.compiled = compiled

	tmpl, err := template.New(d.Type).Funcs(templateFuncs).Parse(d.Template)
	if err != nil {
		return fmt.Errorf("parse template for block %q: %w", d.Type, err)
	}
	d.tmpl = tmpl
	return nil
}

// ValidateData checks a block data payload against the definition's schema.
func (d *Definition) ValidateData(data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if err := d.compiled.Validate(normalize(data)); err != nil {
		return fmt.Errorf("block %q data: %w", d.Type, err)
	}
	return nil
}

// ApplyDefaults returns a copy of data with the definition's default values
// filled in for top-level keys the payload omits. The input is never mutated.
func (d *Definition) ApplyDefaults(data map[string]any) map[string]any {
	merged := make(map[string]any, len(d.Defaults)+len(data))
	for k, v := range d.Defaults {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	return merged
}

// Execute renders the block template with the given payload.
func (d *Definition) Execute(w io.Writer, payload any) error {
	return d.tmpl.Execute(w, payload)
}

// normalize converts typed values (e.g. int) into the generic JSON forms
// the schema validator expects. Data decoded from JSON is already generic;
// this matters for payloads constructed in Go, such as defaults.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}

// Registry is the process-wide block type lookup. It is immutable after
// construction and safe for concurrent reads.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// New builds a registry from the given definitions, compiling each schema
// and template. Registration order is preserved for the editor palette.
func New(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("block definition with empty type")
		}
		if _, dup := r.defs[d.Type]; dup {
			return nil, fmt.Errorf("duplicate block type %q", d.Type)
		}
		if err := d.compile(); err != nil {
			return nil, err
		}
		r.defs[d.Type] = d
		r.order = append(r.order, d.Type)
	}
	return r, nil
}

// Resolve looks up a block definition by type. Unresolved types are
// non-fatal everywhere: renderers skip the block, editors flag it.
func (r *Registry) Resolve(blockType string) (*Definition, bool) {
	d, ok := r.defs[blockType]
	return d, ok
}

// All returns every definition in registration order. Used to populate
// the editor's "add section" palette.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.defs[t])
	}
	return out
}
