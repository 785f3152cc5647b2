package application

import (
	"fmt"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

const promptPreamble = `You are the WeddingFlow planning assistant for a wedding planning company.
You help planners manage clients (weddings), guests, vendors, budgets, timelines, hotel bookings and gifts.

Rules:
- Use a tool whenever the request reads or changes wedding data. Never invent records, ids or amounts.
- Query tools run immediately. Mutation tools are shown to the planner for confirmation before anything is saved, so call them directly without asking first.
- Pass people, vendors and other records by the name the planner used. When the planner uses a pronoun such as "them", "it" or "the others", pass that pronoun as the value.
- Dates and times may be given as the planner said them ("next Saturday", "4pm"); they are resolved for you.
- Leave the client argument empty to act on the active wedding.
- Reply in %s. Keep replies short and concrete.`

// BuildSystemPrompt assembles the system prompt from the catalog and the
// formatted conversation context.
func BuildSystemPrompt(catalog *Catalog, contextText string, lang domain.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptPreamble, lang.Name())
	b.WriteString("\n\nTools:\n")
	for _, def := range catalog.List() {
		fmt.Fprintf(&b, "- %s [%s]: %s\n", def.Name, def.Kind, def.Description)
		for _, effect := range def.CascadeEffects {
			fmt.Fprintf(&b, "    also %s\n", effect)
		}
	}
	b.WriteString("\nContext:\n")
	b.WriteString(contextText)
	return b.String()
}
