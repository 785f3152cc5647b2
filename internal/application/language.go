package application

import (
	"strings"
	"unicode"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

var latinMarkers = map[domain.Language][]string{
	domain.LanguageEnglish: {"the", "and", "is", "to", "add", "how", "much", "have", "we", "of", "for", "with", "yes", "wedding", "guest", "please", "what", "our", "my", "it", "them", "their", "update", "show", "list", "spent", "so", "far"},
	domain.LanguageSpanish: {"el", "los", "las", "que", "y", "en", "una", "por", "para", "con", "cuánto", "cuanto", "hemos", "añade", "agrega", "sí", "boda", "está", "qué", "cómo", "gastado", "invitado", "invitados", "muestra", "lista"},
	domain.LanguageFrench:  {"le", "les", "des", "du", "et", "une", "pour", "avec", "est", "nous", "avons", "ajoute", "ajouter", "oui", "mariage", "combien", "dépensé", "invité", "invités", "je", "pas", "montre", "liste", "au"},
	domain.LanguageGerman:  {"der", "die", "das", "und", "ist", "ein", "eine", "mit", "für", "wir", "haben", "hinzu", "füge", "ja", "hochzeit", "wie", "viel", "gast", "gäste", "nicht", "ich", "bitte", "zeige", "liste", "ausgegeben"},
}

var latinOrder = []domain.Language{domain.LanguageEnglish, domain.LanguageSpanish, domain.LanguageFrench, domain.LanguageGerman}

// DetectLanguage guesses the utterance language from its script and from
// common function words. Short or neutral input keeps the fallback.
func DetectLanguage(text string, fallback domain.Language) domain.Language {
	if !fallback.Supported() {
		fallback = domain.LanguageEnglish
	}

	var devanagari, kana, han int
	scores := map[domain.Language]int{}
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case strings.ContainsRune("ñ¿¡", r):
			scores[domain.LanguageSpanish] += 2
		case strings.ContainsRune("çœèêàùâîôë", r):
			scores[domain.LanguageFrench] += 2
		case strings.ContainsRune("ßäöü", r):
			scores[domain.LanguageGerman] += 2
		}
	}
	switch {
	case devanagari > 0:
		return domain.LanguageHindi
	case kana > 0:
		return domain.LanguageJapanese
	case han > 0:
		return domain.LanguageChinese
	}

	for _, token := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		for lang, markers := range latinMarkers {
			for _, marker := range markers {
				if token == marker {
					scores[lang]++
				}
			}
		}
	}

	best, bestScore, tie := fallback, 0, false
	for _, lang := range latinOrder {
		switch score := scores[lang]; {
		case score > bestScore:
			best, bestScore, tie = lang, score, false
		case score == bestScore && score > 0:
			tie = true
		}
	}
	if bestScore == 0 || (tie && scores[fallback] == bestScore) {
		return fallback
	}
	return best
}
