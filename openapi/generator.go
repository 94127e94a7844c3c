// Package openapi generates an OpenAPI 3.0 document from registered
// routes and Go types. Request and response schemas are derived from
// struct fields via reflection, named structs are registered once under
// components/schemas and referenced from operations.
package openapi

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

type Generator struct {
	info    Info
	servers []Server
	tags    []Tag

	paths      map[string]*PathItem
	schemas    map[string]*Schema
	security   map[string]*SecurityScheme
	pathFilter *regexp.Regexp
}

type GeneratorOption func(*Generator)

// WithPathPrefix restricts the generated document to paths matching the
// given regular expression. Everything else stays reachable over HTTP
// but never appears in the document.
func WithPathPrefix(expr string) GeneratorOption {
	return func(g *Generator) {
		g.pathFilter = regexp.MustCompile(expr)
	}
}

func WithServer(url, description string) GeneratorOption {
	return func(g *Generator) {
		g.servers = append(g.servers, Server{Url: url, Description: description})
	}
}

func WithTag(name, description string) GeneratorOption {
	return func(g *Generator) {
		g.tags = append(g.tags, Tag{Name: name, Description: description})
	}
}

// WithBearerAuth declares an HTTP bearer security scheme under the given
// name so operations can reference it.
func WithBearerAuth(name string) GeneratorOption {
	return func(g *Generator) {
		g.security[name] = &SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		}
	}
}

func NewGenerator(info Info, opts ...GeneratorOption) *Generator {
	g := &Generator{
		info:     info,
		paths:    make(map[string]*PathItem),
		schemas:  make(map[string]*Schema),
		security: make(map[string]*SecurityScheme),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Operation registers one (method, path) pair. Registering the same
// pair twice is a programming error and panics, the document must hold
// exactly one operation per pair.
func (g *Generator) Operation(method, path string, opts ...OperationOption) *Operation {
	op := &Operation{
		OperationId: operationId(method, path),
		Responses:   make(map[StatusCode]Response),
	}

	for _, opt := range opts {
		opt(g, op)
	}

	if len(op.Responses) == 0 {
		op.Responses["200"] = Response{Description: "OK"}
	}

	for _, p := range pathParams(path) {
		if !hasParam(op.Parameters, p, InPath) {
			op.Parameters = append(op.Parameters, Parameter{
				Name:     p,
				In:       InPath,
				Required: true,
				Schema:   &Schema{Type: SchemaInteger},
			})
		}
	}

	item := g.paths[path]
	if item == nil {
		item = &PathItem{}
		g.paths[path] = item
	}

	var slot **Operation

	switch strings.ToUpper(method) {
	case "GET":
		slot = &item.Get
	case "PUT":
		slot = &item.Put
	case "POST":
		slot = &item.Post
	case "DELETE":
		slot = &item.Delete
	case "OPTIONS":
		slot = &item.Options
	case "HEAD":
		slot = &item.Head
	case "PATCH":
		slot = &item.Patch
	default:
		panic(fmt.Errorf("unsupported method: %v", method))
	}

	if *slot != nil {
		panic(fmt.Errorf("duplicate operation: %v %v", method, path))
	}
	*slot = op

	return op
}

// Document assembles the final document from everything registered so
// far. Excluded operations and paths outside the configured prefix are
// dropped, then every $ref is checked against components.
func (g *Generator) Document() (*Document, error) {
	doc := &Document{
		Openapi: "3.0.3",
		Info:    g.info,
		Servers: g.servers,
		Tags:    g.tags,
		Paths:   make(map[string]*PathItem),
	}

	for path, item := range g.paths {
		if g.pathFilter != nil && !g.pathFilter.MatchString(path) {
			continue
		}

		out := &PathItem{}
		assign(&out.Get, item.Get)
		assign(&out.Put, item.Put)
		assign(&out.Post, item.Post)
		assign(&out.Delete, item.Delete)
		assign(&out.Options, item.Options)
		assign(&out.Head, item.Head)
		assign(&out.Patch, item.Patch)

		if !out.empty() {
			doc.Paths[path] = out
		}
	}

	if len(g.schemas) > 0 || len(g.security) > 0 {
		doc.Components = &Components{}
		if len(g.schemas) > 0 {
			doc.Components.Schemas = g.schemas
		}
		if len(g.security) > 0 {
			doc.Components.SecuritySchemes = g.security
		}
	}

	if err := doc.CheckRefs(); err != nil {
		return nil, err
	}

	return doc, nil
}

func assign(dst **Operation, src *Operation) {
	if src != nil && !src.excluded {
		*dst = src
	}
}

// SchemaFor derives a schema for v. Named struct types are registered
// in components and returned as a $ref.
func (g *Generator) SchemaFor(v any) *Schema {
	return g.schemaForType(reflect.TypeOf(v))
}

func (g *Generator) schemaForType(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Type: SchemaObject}
	}

	nullable := false
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: SchemaString, Nullable: nullable}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: SchemaInteger, Nullable: nullable}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: SchemaNumber, Nullable: nullable}
	case reflect.Bool:
		return &Schema{Type: SchemaBoolean, Nullable: nullable}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: SchemaString, Format: "binary"}
		}
		return &Schema{Type: SchemaArray, Items: g.schemaForType(t.Elem())}
	case reflect.Map:
		return &Schema{Type: SchemaObject}
	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return &Schema{Type: SchemaString, Format: "date-time", Nullable: nullable}
		}

		name := t.Name()
		if name == "" {
			return g.structSchema(t)
		}

		if _, ok := g.schemas[name]; !ok {
			// placeholder first, guards against recursive types
			g.schemas[name] = &Schema{}
			g.schemas[name] = g.structSchema(t)
		}
		return RefSchema(name)
	default:
		return &Schema{Type: SchemaString}
	}
}

func (g *Generator) structSchema(t reflect.Type) *Schema {
	out := &Schema{
		Type:       SchemaObject,
		Properties: make(map[string]*Schema),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		optional := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					optional = true
				}
			}
		}

		schema := g.schemaForType(field.Type)

		// a $ref cannot carry sibling keywords in 3.0
		if doc := field.Tag.Get("doc"); doc != "" && schema.Ref == "" {
			schema.Description = doc
		}

		out.Properties[name] = schema

		if !optional && field.Type.Kind() != reflect.Pointer {
			out.Required = append(out.Required, name)
		}
	}

	return out
}

// CheckRefs walks the document and reports the first schema reference
// without a matching component. Unresolvable references are a
// build-time failure, never a request-time one.
func (d *Document) CheckRefs() error {
	var check func(s *Schema) error
	check = func(s *Schema) error {
		if s == nil {
			return nil
		}
		if s.Ref != "" {
			name := strings.TrimPrefix(s.Ref, refPrefix)
			if name == s.Ref {
				return fmt.Errorf("unsupported reference format: %v", s.Ref)
			}
			if d.Components == nil || d.Components.Schemas[name] == nil {
				return fmt.Errorf("unresolvable schema reference: %v", s.Ref)
			}
			return nil
		}
		if err := check(s.Items); err != nil {
			return err
		}
		for _, prop := range s.Properties {
			if err := check(prop); err != nil {
				return err
			}
		}
		return nil
	}

	checkContent := func(content map[string]MediaType) error {
		for _, media := range content {
			if err := check(media.Schema); err != nil {
				return err
			}
		}
		return nil
	}

	for path, item := range d.Paths {
		for method, op := range item.operations() {
			if op == nil {
				continue
			}
			for _, param := range op.Parameters {
				if err := check(param.Schema); err != nil {
					return fmt.Errorf("%v %v: %w", method, path, err)
				}
			}
			if op.RequestBody != nil {
				if err := checkContent(op.RequestBody.Content); err != nil {
					return fmt.Errorf("%v %v: %w", method, path, err)
				}
			}
			for _, response := range op.Responses {
				if err := checkContent(response.Content); err != nil {
					return fmt.Errorf("%v %v: %w", method, path, err)
				}
			}
		}
	}

	if d.Components != nil {
		for name, schema := range d.Components.Schemas {
			if err := check(schema); err != nil {
				return fmt.Errorf("components/schemas/%v: %w", name, err)
			}
			for _, prop := range schema.Properties {
				if err := check(prop); err != nil {
					return fmt.Errorf("components/schemas/%v: %w", name, err)
				}
			}
		}
	}

	return nil
}

var pathParamExpr = regexp.MustCompile(`\{([^{}]+)\}`)

func pathParams(path string) []string {
	var out []string
	for _, m := range pathParamExpr.FindAllStringSubmatch(path, -1) {
		out = append(out, m[1])
	}
	return out
}

func hasParam(params []Parameter, name string, in ParameterLocation) bool {
	for _, p := range params {
		if p.Name == name && p.In == in {
			return true
		}
	}
	return false
}

func operationId(method, path string) string {
	parts := []string{strings.ToLower(method)}

	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") {
			seg = "by_" + strings.Trim(seg, "{}")
		}
		parts = append(parts, seg)
	}

	return strings.Join(parts, "_")
}
