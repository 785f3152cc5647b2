package domain

type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHindi    Language = "hi"
	LanguageSpanish  Language = "es"
	LanguageFrench   Language = "fr"
	LanguageGerman   Language = "de"
	LanguageJapanese Language = "ja"
	LanguageChinese  Language = "zh"
)

var SupportedLanguages = []Language{
	LanguageEnglish,
	LanguageHindi,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
	LanguageJapanese,
	LanguageChinese,
}

func (l Language) Supported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

func (l Language) Name() string {
	switch l {
	case LanguageHindi:
		return "Hindi"
	case LanguageSpanish:
		return "Spanish"
	case LanguageFrench:
		return "French"
	case LanguageGerman:
		return "German"
	case LanguageJapanese:
		return "Japanese"
	case LanguageChinese:
		return "Chinese"
	default:
		return "English"
	}
}
