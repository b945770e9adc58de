// Package toolregistry reflects local native tool functions into
// JSON-schema tool definitions and holds the name-to-callable map the agent
// loop dispatches through.
package toolregistry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Tool is one native, in-process tool. Args is a pointer to a zero-valued
// struct carrying `jsonschema:"..."` tags; the registry reflects its type
// once at startup instead of parsing a runtime docstring.
type Tool interface {
	Name() string
	Description() string
	Args() any
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// Definition is the OpenAI-facing shape of one tool: name, description, and
// a JSON-schema object describing its parameters.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Registry holds the tool definitions and callables built once at startup.
type Registry struct {
	defs  []Definition
	tools map[string]Tool
}

// New reflects every tool's argument struct and builds the name-to-callable
// map. Tools are registered in the order given; a later tool with a name
// already present makes New return an error (the Tool Registry never overwrites itself —
// name collisions across local tools are a caller bug, caught here rather
// than silently resolved as the MCP Bridge does for remote tools).
func New(tools ...Tool) (*Registry, error) {
	reflector := &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}

	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; exists {
			return nil, fmt.Errorf("toolregistry: duplicate tool name %q", t.Name())
		}
		schema := reflector.Reflect(t.Args())
		r.defs = append(r.defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  schema,
		})
		r.tools[t.Name()] = t
	}
	return r, nil
}

// Definitions returns the full tool-definition list, in registration order.
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Has reports whether name is a registered local tool.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Call dispatches to the named tool. The caller (chunkproc.FinalizeToolCalls)
// only invokes this after confirming Has(name).
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("toolregistry: unknown tool %q", name)
	}
	return t.Call(ctx, args)
}
