package response

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/weddingflow-assistant/internal/application"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	text     lipgloss.Style
	bullet   lipgloss.Style
	meta     lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	query    lipgloss.Style
	mutation lipgloss.Style
	param    lipgloss.Style
	cascade  lipgloss.Style
	badges   map[application.ResponseKind]lipgloss.Style
}

func newStyles() styles {
	badge := lipgloss.NewStyle().Bold(true)
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		query:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		mutation: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		param:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		cascade:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		badges: map[application.ResponseKind]lipgloss.Style{
			application.ResponseReply:         badge.Foreground(lipgloss.Color("39")),
			application.ResponseClarification: badge.Foreground(lipgloss.Color("141")),
			application.ResponsePreview:       badge.Foreground(lipgloss.Color("214")),
			application.ResponseResult:        badge.Foreground(lipgloss.Color("78")),
			application.ResponseError:         badge.Foreground(lipgloss.Color("203")),
		},
	}
}
