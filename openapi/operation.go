package openapi

import (
	"fmt"
	"net/http"
)

// OperationOption attaches declarative metadata to a registered
// operation, the way view decorators annotate endpoints in schema-first
// REST frameworks. Options run against the generator so schema options
// can register component schemas as a side effect.
type OperationOption func(*Generator, *Operation)

func WithSummary(summary string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Summary = summary
	}
}

func WithDescription(description string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Description = description
	}
}

func WithOperationId(id string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.OperationId = id
	}
}

func WithTags(tags ...string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Tags = append(op.Tags, tags...)
	}
}

// WithRequest declares the JSON request body shape from a model value.
func WithRequest(model any) OperationOption {
	return func(g *Generator, op *Operation) {
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {Schema: g.SchemaFor(model)},
			},
		}
	}
}

// WithResponse maps one status code to a JSON response shape. A nil
// model declares a bodyless response.
func WithResponse(status int, model any, description string) OperationOption {
	return func(g *Generator, op *Operation) {
		response := Response{Description: description}

		if model != nil {
			response.Content = map[string]MediaType{
				"application/json": {Schema: g.SchemaFor(model)},
			}
		}

		op.Responses[statusCode(status)] = response
	}
}

// WithResponseSchema is WithResponse for a hand-built schema, typically
// a RefSchema.
func WithResponseSchema(status int, schema *Schema, description string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Responses[statusCode(status)] = Response{
			Description: description,
			Content: map[string]MediaType{
				"application/json": {Schema: schema},
			},
		}
	}
}

func WithQueryParam(name string, schema *Schema, required bool, description string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:        name,
			In:          InQuery,
			Description: description,
			Required:    required,
			Schema:      schema,
		})
	}
}

// WithExample attaches a named literal payload to the response for the
// given status code. The response must already be declared.
func WithExample(status int, name string, summary string, value any) OperationOption {
	return func(_ *Generator, op *Operation) {
		code := statusCode(status)
		response, ok := op.Responses[code]
		if !ok {
			panic(fmt.Errorf("example %q targets undeclared response %v", name, code))
		}

		media, ok := response.Content["application/json"]
		if !ok {
			panic(fmt.Errorf("example %q targets a bodyless response %v", name, code))
		}

		if media.Examples == nil {
			media.Examples = make(map[string]*Example)
		}
		media.Examples[name] = &Example{Summary: summary, Value: value}
		response.Content["application/json"] = media
	}
}

// WithSecurity marks the operation as requiring the named security
// scheme (declared via WithBearerAuth).
func WithSecurity(scheme string) OperationOption {
	return func(_ *Generator, op *Operation) {
		op.Security = append(op.Security, SecurityRequirement{scheme: {}})
	}
}

// Excluded hides the operation from the generated document while the
// route itself keeps serving.
func Excluded() OperationOption {
	return func(_ *Generator, op *Operation) {
		op.excluded = true
	}
}

func statusCode(status int) StatusCode {
	if http.StatusText(status) == "" {
		panic(fmt.Errorf("unknown status code: %v", status))
	}
	return fmt.Sprintf("%d", status)
}
