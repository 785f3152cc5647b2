package httpapi

import (
	"github.com/bnema/weddingflow-assistant/internal/application"
	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type sessionDTO struct {
	SessionID      string `json:"sessionId"`
	Language       string `json:"language"`
	ActiveClientID string `json:"activeClientId,omitempty"`
}

type refDTO struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cascadeDTO struct {
	Effect string `json:"effect"`
	Entity refDTO `json:"entity"`
}

type resultDTO struct {
	Tool     string       `json:"tool"`
	Primary  *refDTO      `json:"primary,omitempty"`
	Cascades []cascadeDTO `json:"cascades,omitempty"`
	Affected []refDTO     `json:"affected,omitempty"`
	Removed  []refDTO     `json:"removed,omitempty"`
	Lines    []string     `json:"lines,omitempty"`
}

type responseDTO struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text"`
	Language string     `json:"language"`
	Tool     string     `json:"tool,omitempty"`
	State    string     `json:"state"`
	ActionID string     `json:"actionId,omitempty"`
	Preview  []string   `json:"preview,omitempty"`
	Cascades []string   `json:"cascades,omitempty"`
	Result   *resultDTO `json:"result,omitempty"`
}

type paramDTO struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
	EntityType  string   `json:"entityType,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type toolDTO struct {
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	Kind                 string     `json:"kind"`
	RequiresConfirmation bool       `json:"requiresConfirmation"`
	ClientScoped         bool       `json:"clientScoped"`
	Cascades             []string   `json:"cascades,omitempty"`
	Params               []paramDTO `json:"params"`
}

func toRefDTO(ref domain.EntityRef) refDTO {
	return refDTO{Type: string(ref.Type), ID: string(ref.ID), Name: ref.Name}
}

func toRefDTOs(refs []domain.EntityRef) []refDTO {
	if len(refs) == 0 {
		return nil
	}
	out := make([]refDTO, 0, len(refs))
	for _, ref := range refs {
		out = append(out, toRefDTO(ref))
	}
	return out
}

func toResponseDTO(resp application.AssistantResponse) responseDTO {
	out := responseDTO{
		Kind:     string(resp.Kind),
		Text:     resp.Text,
		Language: string(resp.Language),
		Tool:     resp.Tool,
		State:    string(resp.State),
		ActionID: resp.ActionID,
		Preview:  resp.Preview,
		Cascades: resp.Cascades,
	}

	if result := resp.Result; result != nil {
		dto := &resultDTO{
			Tool:     result.Tool,
			Affected: toRefDTOs(result.Affected),
			Removed:  toRefDTOs(result.Removed),
			Lines:    result.Lines,
		}
		if result.Primary != nil {
			primary := toRefDTO(*result.Primary)
			dto.Primary = &primary
		}
		for _, cascade := range result.Cascades {
			dto.Cascades = append(dto.Cascades, cascadeDTO{Effect: cascade.Effect, Entity: toRefDTO(cascade.Entity)})
		}
		out.Result = dto
	}
	return out
}

func toToolDTO(def domain.ToolDefinition) toolDTO {
	out := toolDTO{
		Name:                 def.Name,
		Description:          def.Description,
		Kind:                 string(def.Kind),
		RequiresConfirmation: def.Kind.RequiresConfirmation(),
		ClientScoped:         def.ClientScoped,
		Cascades:             def.CascadeEffects,
		Params:               make([]paramDTO, 0, len(def.Params)),
	}
	for _, param := range def.Params {
		out.Params = append(out.Params, paramDTO{
			Name:        param.Name,
			Type:        string(param.Type),
			Required:    param.Required,
			Description: param.Description,
			EntityType:  string(param.EntityType),
			Enum:        param.Enum,
		})
	}
	return out
}
