package openai

import (
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  jsonSchema `json:"parameters"`
}

type jsonSchema struct {
	Type        string                `json:"type"`
	Description string                `json:"description,omitempty"`
	Properties  map[string]jsonSchema `json:"properties,omitempty"`
	Required    []string              `json:"required,omitempty"`
	Items       *jsonSchema           `json:"items,omitempty"`
	Enum        []string              `json:"enum,omitempty"`
}

func toolSpecs(defs []domain.ToolDefinition) []toolSpec {
	specs := make([]toolSpec, 0, len(defs))
	for _, def := range defs {
		specs = append(specs, toolSpec{
			Type: "function",
			Function: functionSpec{
				Name:        def.Name,
				Description: toolDescription(def),
				Parameters:  parametersSchema(def),
			},
		})
	}
	return specs
}

func toolDescription(def domain.ToolDefinition) string {
	description := def.Description
	if def.Kind.RequiresConfirmation() {
		description += " Changes data; the user confirms before it runs."
	}
	if len(def.CascadeEffects) > 0 {
		description += " Also: " + strings.Join(def.CascadeEffects, "; ") + "."
	}
	return description
}

func parametersSchema(def domain.ToolDefinition) jsonSchema {
	schema := jsonSchema{Type: "object", Properties: map[string]jsonSchema{}}
	for _, param := range def.Params {
		schema.Properties[param.Name] = paramSchema(param)
		if param.Required {
			schema.Required = append(schema.Required, param.Name)
		}
	}
	return schema
}

func paramSchema(param domain.ParamSpec) jsonSchema {
	out := jsonSchema{Type: "string", Description: param.Description}
	switch param.Type {
	case domain.ParamNumber:
		out.Type = "number"
	case domain.ParamInteger:
		out.Type = "integer"
	case domain.ParamBoolean:
		out.Type = "boolean"
	case domain.ParamEnum:
		out.Enum = append([]string(nil), param.Enum...)
	case domain.ParamDate:
		out.Description = joinDescription(param.Description, "a date as written by the user, e.g. 2026-06-14 or next Saturday")
	case domain.ParamTime:
		out.Description = joinDescription(param.Description, "a time of day, e.g. 16:30 or 4pm")
	case domain.ParamEntity:
		out.Description = joinDescription(param.Description, "the "+param.EntityType.Label()+" name or pronoun exactly as the user said it")
	case domain.ParamEntityList:
		out.Type = "array"
		out.Items = &jsonSchema{Type: "string"}
		out.Description = joinDescription(param.Description, param.EntityType.Label()+" names or pronouns exactly as the user said them")
	}
	return out
}

func joinDescription(description, hint string) string {
	if description == "" {
		return hint
	}
	return description + " (" + hint + ")"
}
