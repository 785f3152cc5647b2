package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/weddingflow-assistant/internal/application"
	"github.com/bnema/weddingflow-assistant/internal/domain"
)

type RenderOptions struct {
	// ShowMeta appends the tool and action state under the reply.
	ShowMeta bool
}

var badgeLabels = map[application.ResponseKind]string{
	application.ResponseReply:         "assistant",
	application.ResponseClarification: "question",
	application.ResponsePreview:       "confirm?",
	application.ResponseResult:        "done",
	application.ResponseError:         "problem",
}

func renderResponse(resp application.AssistantResponse, opts RenderOptions, s styles) string {
	label := badgeLabels[resp.Kind]
	if label == "" {
		label = string(resp.Kind)
	}
	if resp.Kind == application.ResponseResult && resp.State != domain.ActionExecuted {
		label = "result"
	}
	lines := []string{s.badges[resp.Kind].Render(label)}

	body := strings.TrimSpace(resp.Text)
	if body == "" {
		lines = append(lines, s.empty.Render("(no reply)"))
	}
	for _, line := range strings.Split(body, "\n") {
		if body == "" {
			break
		}
		if strings.HasPrefix(line, "- ") {
			lines = append(lines, s.bullet.Render("  •")+" "+s.text.Render(strings.TrimPrefix(line, "- ")))
			continue
		}
		lines = append(lines, s.text.Render(line))
	}

	if opts.ShowMeta {
		if meta := metaLine(resp); meta != "" {
			lines = append(lines, s.meta.Render(meta))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func metaLine(resp application.AssistantResponse) string {
	parts := make([]string, 0, 3)
	if resp.Tool != "" {
		parts = append(parts, "tool: "+resp.Tool)
	}
	if resp.State != "" && resp.State != domain.ActionIdle {
		parts = append(parts, "state: "+string(resp.State))
	}
	if resp.Language != "" && resp.Language != domain.LanguageEnglish {
		parts = append(parts, "lang: "+string(resp.Language))
	}
	return strings.Join(parts, " · ")
}

func renderCatalog(defs []domain.ToolDefinition, s styles) string {
	lines := []string{
		s.title.Render("WeddingFlow tools"),
		s.header.Render(fmt.Sprintf("tools: %d", len(defs))),
	}
	if len(defs) == 0 {
		lines = append(lines, s.empty.Render("No tools registered."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, def := range defs {
		lines = append(lines, s.section.Render(renderTool(def, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTool(def domain.ToolDefinition, s styles) string {
	kind := s.query.Render("[query]")
	if def.Kind.RequiresConfirmation() {
		kind = s.mutation.Render("[mutation, confirms]")
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.title.Render(def.Name), " ", kind),
		s.text.Render(def.Description),
	}
	if params := paramSummary(def.Params); params != "" {
		parts = append(parts, s.param.Render("params: "+params))
	}
	for _, effect := range def.CascadeEffects {
		parts = append(parts, s.cascade.Render("  also "+effect))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func paramSummary(params []domain.ParamSpec) string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		name := p.Name
		if p.Required {
			name += "*"
		}
		typ := string(p.Type)
		if p.EntityType != "" {
			typ += ":" + string(p.EntityType)
		}
		out = append(out, name+" "+typ)
	}
	return strings.Join(out, ", ")
}
