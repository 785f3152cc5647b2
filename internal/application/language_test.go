package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fallback domain.Language
		want     domain.Language
	}{
		{name: "english", text: "How much have we spent so far?", fallback: domain.LanguageEnglish, want: domain.LanguageEnglish},
		{name: "spanish", text: "¿Cuánto hemos gastado?", fallback: domain.LanguageEnglish, want: domain.LanguageSpanish},
		{name: "french", text: "Ajoute un invité pour le mariage", fallback: domain.LanguageEnglish, want: domain.LanguageFrench},
		{name: "german", text: "Füge einen Gast zur Hochzeit hinzu", fallback: domain.LanguageEnglish, want: domain.LanguageGerman},
		{name: "hindi", text: "मेहमान जोड़ें", fallback: domain.LanguageEnglish, want: domain.LanguageHindi},
		{name: "japanese", text: "ゲストを追加して", fallback: domain.LanguageEnglish, want: domain.LanguageJapanese},
		{name: "chinese", text: "添加客人", fallback: domain.LanguageEnglish, want: domain.LanguageChinese},
		{name: "neutral keeps fallback", text: "ok", fallback: domain.LanguageSpanish, want: domain.LanguageSpanish},
		{name: "names keep fallback", text: "Raj Kumar", fallback: domain.LanguageFrench, want: domain.LanguageFrench},
		{name: "unsupported fallback", text: "ok", fallback: domain.Language("xx"), want: domain.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text, tt.fallback))
		})
	}
}

func TestMessagesCoverEverySupportedLanguage(t *testing.T) {
	english := messagesFor(domain.LanguageEnglish)
	for _, lang := range domain.SupportedLanguages {
		msg := messagesFor(lang)
		assert.NotEmpty(t, msg.Confirm, lang)
		assert.NotEmpty(t, msg.Cancelled, lang)
		assert.NotEmpty(t, msg.Ambiguous, lang)
		if lang != domain.LanguageEnglish {
			assert.NotEqual(t, english.Confirm, msg.Confirm, lang)
		}
	}
	assert.Equal(t, english, messagesFor(domain.Language("xx")))
}

func TestLabelsFollowReplyLanguage(t *testing.T) {
	english := messagesFor(domain.LanguageEnglish)
	assert.Equal(t, "budget item", english.entity(domain.EntityBudgetItem))
	assert.Equal(t, "rsvp status", english.field("rsvp_status"))
	assert.Equal(t, "rsvp_status: confirmed", english.argumentLine("rsvp_status", "rsvp_status: confirmed"))
	assert.Equal(t, "guest: Raj Kumar", english.resultLine("guest: Raj Kumar"))

	german := messagesFor(domain.LanguageGerman)
	assert.Equal(t, "Gast", german.entity(domain.EntityGuest))
	assert.Equal(t, "RSVP-Status", german.field("rsvp_status"))
	assert.Equal(t, "RSVP-Status: confirmed", german.argumentLine("rsvp_status", "rsvp_status: confirmed"))
	assert.Equal(t, "Hotelbuchung: Taj Lake Palace", german.resultLine("hotel booking: Taj Lake Palace"))
	assert.Equal(t, "Ceremony: 16:00 → 16:30", german.resultLine("Ceremony: 16:00 → 16:30"))
	assert.Equal(t, "duration minutes", german.field("duration_minutes"))

	for _, lang := range domain.SupportedLanguages {
		msg := messagesFor(lang)
		for _, entityType := range []domain.EntityType{domain.EntityClient, domain.EntityGuest, domain.EntityVendor, domain.EntityTimelineItem} {
			assert.NotEmpty(t, msg.entity(entityType), lang)
		}
	}
}
