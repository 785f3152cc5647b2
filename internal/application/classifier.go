package application

import (
	"strings"
	"unicode"
)

type ReplyClass string

const (
	ReplyAffirmative ReplyClass = "affirmative"
	ReplyNegative    ReplyClass = "negative"
	ReplyHold        ReplyClass = "hold"
	ReplyUnclear     ReplyClass = "unclear"
)

// maxAffirmativeTokens bounds how long a reply may be and still confirm.
// Longer replies usually carry a new instruction.
const maxAffirmativeTokens = 6

var affirmativePhrases = []string{
	"yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay", "confirm", "confirmed", "go ahead", "do it",
	"please do", "sounds good", "correct", "approve", "approved", "absolutely", "of course", "proceed", "go for it",
	"no problem", "no worries", "why not",
	"sí", "si", "claro", "vale", "adelante", "confirmo", "hazlo", "de acuerdo", "no hay problema",
	"oui", "d'accord", "vas-y", "allez-y", "je confirme", "bien sûr", "parfait", "pas de problème",
	"ja", "jawohl", "genau", "bestätigt", "bestätige", "mach das", "mach es", "einverstanden", "klar", "kein problem",
	"haan", "haa", "ji haan", "theek hai", "koi baat nahi",
	"हाँ", "हां", "जी हाँ", "ठीक है", "करो", "पुष्टि", "सहमत", "सहमत हूँ",
}

// affirmativeIdioms read as agreement even though they contain a negative
// word. They are removed before negatives are looked for.
var affirmativeIdioms = []string{
	"no problem", "no worries", "why not", "no hay problema", "pas de problème", "kein problem", "koi baat nahi",
}

var negativePhrases = []string{
	"no", "n", "nope", "nah", "cancel", "stop", "don't", "dont", "do not", "never mind", "nevermind", "abort",
	"reject", "not now", "forget it", "wrong",
	"cancela", "cancelar", "mejor no",
	"non", "annule", "annuler", "pas maintenant", "laisse tomber",
	"nein", "abbrechen", "lieber nicht", "stopp", "vergiss es",
	"nahin", "nahi", "mat karo", "radd karo",
	"नहीं", "रद्द", "मत",
}

var holdPhrases = []string{
	"wait", "hold on", "hang on", "hmm", "hm", "let me think", "one sec", "one second", "one moment", "just a moment",
	"not sure", "maybe", "give me a minute",
	"espera", "un momento", "déjame pensar", "dejame pensar",
	"attends", "attendez", "un instant", "laisse-moi réfléchir",
	"warte", "moment", "einen moment", "lass mich nachdenken",
	"ruko", "ek minute",
	"रुको", "रुकिए", "सोचने दो",
}

// Qualifiers turn an otherwise affirmative reply into a new instruction:
// "yes but...", "yes, add Meera too".
var qualifierTokens = []string{
	"but", "except", "instead", "too", "also", "as well", "plus", "another", "additionally",
	"pero", "también", "además", "otro", "otra",
	"mais", "aussi", "également", "en plus", "autre",
	"aber", "sondern", "auch", "außerdem", "noch",
	"lekin", "par", "bhi", "aur",
	"लेकिन", "पर", "भी", "और",
}

// Han and kana text has no word boundaries and is matched by substring.
var (
	cjkAffirmative = []string{"はい", "お願いします", "お願い", "実行", "確定", "いいよ", "是", "是的", "好的", "好", "确认", "可以", "不错", "没问题", "就这样"}
	cjkIdioms      = []string{"不错", "没问题", "不客气"}
	cjkNegative    = []string{"いいえ", "やめて", "キャンセル", "取り消し", "否", "不要", "不用", "取消", "算了", "不"}
	cjkHold        = []string{"待って", "ちょっと待", "考えさせて", "等一下", "等等", "让我想想", "不着急"}
	cjkQualifier   = []string{"でも", "但是", "不过", "也", "还有", "还要", "另外", "それと", "それから"}
)

// ClassifyReply sorts a reply to a pending confirmation. Anything it cannot
// place is ReplyUnclear, which never confirms.
func ClassifyReply(text string) ReplyClass {
	normalized := normalizeReply(text)
	if normalized == "" {
		return ReplyUnclear
	}

	if hasNonSpacedScript(normalized) {
		return classifyBySubstring(normalized)
	}

	tokens := strings.Fields(normalized)
	padded := " " + normalized + " "
	withoutIdioms := padded
	for _, idiom := range affirmativeIdioms {
		withoutIdioms = strings.ReplaceAll(withoutIdioms, " "+idiom+" ", " ")
	}
	contains := func(text string, phrases []string) bool {
		for _, phrase := range phrases {
			if strings.Contains(text, " "+phrase+" ") {
				return true
			}
		}
		return false
	}

	if contains(withoutIdioms, negativePhrases) {
		return ReplyNegative
	}
	if contains(padded, holdPhrases) {
		return ReplyHold
	}
	if contains(padded, affirmativePhrases) && len(tokens) <= maxAffirmativeTokens && !contains(padded, qualifierTokens) {
		return ReplyAffirmative
	}
	return ReplyUnclear
}

func classifyBySubstring(text string) ReplyClass {
	containsAny := func(text string, phrases []string) bool {
		for _, phrase := range phrases {
			if strings.Contains(text, phrase) {
				return true
			}
		}
		return false
	}
	withoutIdioms := text
	for _, idiom := range cjkIdioms {
		withoutIdioms = strings.ReplaceAll(withoutIdioms, idiom, " ")
	}

	if containsAny(text, cjkHold) {
		return ReplyHold
	}
	if containsAny(withoutIdioms, cjkNegative) {
		return ReplyNegative
	}
	if containsAny(text, cjkAffirmative) && !containsAny(text, cjkQualifier) && len([]rune(text)) <= 12 {
		return ReplyAffirmative
	}
	return ReplyUnclear
}

func normalizeReply(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.ReplaceAll(text, "’", "'")) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '\'' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasNonSpacedScript(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}
