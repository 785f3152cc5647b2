package application

import "github.com/bnema/weddingflow-assistant/internal/domain"

// messages holds every user-facing sentence the controller produces. Format
// verbs are filled by the controller; data values are never translated.
type messages struct {
	PreviewIntro    string // %s: tool name
	AlsoWill        string
	Confirm         string
	Cancelled       string
	Hold            string
	Expired         string
	Superseded      string
	Ambiguous       string // %s: reference, %s: candidate list
	NoMatch         string // %s: entity label, %s: reference
	Unresolved      string // %s: entity label, %s: pronoun
	DateParse       string // %s: expression
	MissingField    string // %s: field label
	MissingEntity   string // %s: entity label
	InvalidField    string // %s: field label, %s: reason
	UnknownTool     string
	ExecutionFailed string // %s: explanation
	CompletedBefore string
	Retry           string
	Done            string
	AlsoCreated     string
	WhichClient     string // %s: client list
	NoClients       string
	NoResults       string
	Unavailable     string
	ExplainNotFound string
	ExplainScope    string
	ExplainStore    string

	entities map[domain.EntityType]string
	fields   map[string]string
}

var catalogue = map[domain.Language]messages{
	domain.LanguageEnglish: {
		PreviewIntro:    "Please review this change (%s):",
		AlsoWill:        "This will also:",
		Confirm:         "Shall I go ahead? Reply yes to confirm or no to cancel.",
		Cancelled:       "Okay, I've cancelled that. Nothing was changed.",
		Hold:            "No rush. The change above is still waiting for your answer.",
		Expired:         "That earlier request timed out, so I didn't do anything. Please tell me again what you'd like to change.",
		Superseded:      "I've set aside the earlier unconfirmed change.",
		Ambiguous:       "I found more than one match for \"%s\": %s. Which one do you mean?",
		NoMatch:         "I couldn't find any %s matching \"%s\". Could you check the name?",
		Unresolved:      "I'm not sure which %s \"%s\" refers to. Could you give me the name?",
		DateParse:       "I couldn't understand \"%s\" as a date or time. Could you write it like 2026-06-14 or 16:30?",
		MissingField:    "What should I use for %s?",
		MissingEntity:   "Which %s do you mean?",
		InvalidField:    "The value for %s doesn't look right: it %s.",
		UnknownTool:     "Sorry, I couldn't work out how to do that. Could you rephrase your request?",
		ExecutionFailed: "I couldn't finish that: %s.",
		CompletedBefore: "These steps had already been completed:",
		Retry:           "Would you like me to try again, or do something different?",
		Done:            "Done.",
		AlsoCreated:     "Also updated:",
		WhichClient:     "Which wedding do you mean? %s",
		NoClients:       "There are no weddings yet. Would you like to create one?",
		NoResults:       "I didn't find anything.",
		Unavailable:     "Something went wrong on my side. Please try again in a moment.",
		ExplainNotFound: "a record it needed no longer exists",
		ExplainScope:    "that record does not belong to this wedding",
		ExplainStore:    "the change was rejected while saving",
	},
	domain.LanguageHindi: {
		PreviewIntro:    "कृपया इस बदलाव की समीक्षा करें (%s):",
		AlsoWill:        "इसके साथ यह भी होगा:",
		Confirm:         "क्या मैं आगे बढ़ूँ? पुष्टि के लिए हाँ या रद्द करने के लिए नहीं लिखें।",
		Cancelled:       "ठीक है, मैंने इसे रद्द कर दिया। कुछ भी नहीं बदला गया।",
		Hold:            "कोई जल्दी नहीं। ऊपर वाला बदलाव अभी भी आपके जवाब का इंतज़ार कर रहा है।",
		Expired:         "पिछला अनुरोध समय सीमा पार कर गया, इसलिए मैंने कुछ नहीं किया। कृपया फिर से बताएं कि आप क्या बदलना चाहते हैं।",
		Superseded:      "मैंने पिछला अपुष्ट बदलाव छोड़ दिया है।",
		Ambiguous:       "\"%s\" के लिए एक से अधिक मिलान मिले: %s। आपका मतलब किससे है?",
		NoMatch:         "मुझे \"%[2]s\" से मेल खाता कोई %[1]s नहीं मिला। क्या आप नाम जाँच सकते हैं?",
		Unresolved:      "मुझे यकीन नहीं है कि \"%[2]s\" किस %[1]s के बारे में है। क्या आप नाम बता सकते हैं?",
		DateParse:       "मैं \"%s\" को तारीख या समय के रूप में नहीं समझ पाया। क्या आप इसे 2026-06-14 या 16:30 जैसे लिख सकते हैं?",
		MissingField:    "%s के लिए मैं क्या इस्तेमाल करूँ?",
		MissingEntity:   "आपका मतलब किस %s से है?",
		InvalidField:    "%s का मान सही नहीं लगता: यह %s।",
		UnknownTool:     "माफ़ कीजिए, मैं समझ नहीं पाया कि यह कैसे करूँ। क्या आप अनुरोध दोबारा लिख सकते हैं?",
		ExecutionFailed: "मैं इसे पूरा नहीं कर सका: %s।",
		CompletedBefore: "ये चरण पहले ही पूरे हो चुके थे:",
		Retry:           "क्या मैं फिर से कोशिश करूँ, या कुछ और करूँ?",
		Done:            "हो गया।",
		AlsoCreated:     "साथ में अपडेट किया गया:",
		WhichClient:     "आपका मतलब किस शादी से है? %s",
		NoClients:       "अभी कोई शादी नहीं है। क्या आप एक बनाना चाहेंगे?",
		NoResults:       "मुझे कुछ नहीं मिला।",
		Unavailable:     "मेरी तरफ़ से कुछ गड़बड़ हो गई। कृपया थोड़ी देर में फिर कोशिश करें।",
		ExplainNotFound: "ज़रूरी रिकॉर्ड अब मौजूद नहीं है",
		ExplainScope:    "वह रिकॉर्ड इस शादी का हिस्सा नहीं है",
		ExplainStore:    "सहेजते समय बदलाव अस्वीकार हो गया",
	},
	domain.LanguageSpanish: {
		PreviewIntro:    "Revisa este cambio (%s):",
		AlsoWill:        "Además:",
		Confirm:         "¿Continúo? Responde sí para confirmar o no para cancelar.",
		Cancelled:       "De acuerdo, lo he cancelado. No se cambió nada.",
		Hold:            "Sin prisa. El cambio de arriba sigue esperando tu respuesta.",
		Expired:         "Esa solicitud anterior caducó, así que no hice nada. Dime de nuevo qué quieres cambiar.",
		Superseded:      "He descartado el cambio anterior sin confirmar.",
		Ambiguous:       "Encontré varias coincidencias para \"%s\": %s. ¿Cuál quieres decir?",
		NoMatch:         "No encontré ningún %s que coincida con \"%s\". ¿Puedes revisar el nombre?",
		Unresolved:      "No estoy seguro de a qué %s se refiere \"%s\". ¿Me das el nombre?",
		DateParse:       "No entendí \"%s\" como fecha u hora. ¿Puedes escribirlo como 2026-06-14 o 16:30?",
		MissingField:    "¿Qué valor uso para %s?",
		MissingEntity:   "¿A qué %s te refieres?",
		InvalidField:    "El valor de %s no parece correcto: %s.",
		UnknownTool:     "Lo siento, no supe cómo hacer eso. ¿Puedes reformular tu petición?",
		ExecutionFailed: "No pude terminarlo: %s.",
		CompletedBefore: "Estos pasos ya se habían completado:",
		Retry:           "¿Quieres que lo intente de nuevo o que haga otra cosa?",
		Done:            "Hecho.",
		AlsoCreated:     "También actualizado:",
		WhichClient:     "¿A qué boda te refieres? %s",
		NoClients:       "Todavía no hay bodas. ¿Quieres crear una?",
		NoResults:       "No encontré nada.",
		Unavailable:     "Algo salió mal por mi parte. Inténtalo de nuevo en un momento.",
		ExplainNotFound: "un registro necesario ya no existe",
		ExplainScope:    "ese registro no pertenece a esta boda",
		ExplainStore:    "el cambio fue rechazado al guardarse",
	},
	domain.LanguageFrench: {
		PreviewIntro:    "Vérifiez ce changement (%s) :",
		AlsoWill:        "Cela va aussi :",
		Confirm:         "Je continue ? Répondez oui pour confirmer ou non pour annuler.",
		Cancelled:       "D'accord, c'est annulé. Rien n'a été modifié.",
		Hold:            "Prenez votre temps. Le changement ci-dessus attend toujours votre réponse.",
		Expired:         "Cette demande a expiré, je n'ai donc rien fait. Dites-moi à nouveau ce que vous souhaitez modifier.",
		Superseded:      "J'ai mis de côté le changement précédent non confirmé.",
		Ambiguous:       "J'ai trouvé plusieurs correspondances pour « %s » : %s. Laquelle voulez-vous dire ?",
		NoMatch:         "Je n'ai trouvé aucun %s correspondant à « %s ». Pouvez-vous vérifier le nom ?",
		Unresolved:      "Je ne sais pas à quel %s « %s » fait référence. Pouvez-vous me donner le nom ?",
		DateParse:       "Je n'ai pas compris « %s » comme date ou heure. Pouvez-vous l'écrire comme 2026-06-14 ou 16:30 ?",
		MissingField:    "Quelle valeur dois-je utiliser pour %s ?",
		MissingEntity:   "De quel %s parlez-vous ?",
		InvalidField:    "La valeur de %s ne semble pas correcte : %s.",
		UnknownTool:     "Désolé, je n'ai pas su comment faire cela. Pouvez-vous reformuler votre demande ?",
		ExecutionFailed: "Je n'ai pas pu terminer : %s.",
		CompletedBefore: "Ces étapes étaient déjà terminées :",
		Retry:           "Voulez-vous que je réessaie, ou que je fasse autre chose ?",
		Done:            "C'est fait.",
		AlsoCreated:     "Également mis à jour :",
		WhichClient:     "De quel mariage parlez-vous ? %s",
		NoClients:       "Il n'y a encore aucun mariage. Voulez-vous en créer un ?",
		NoResults:       "Je n'ai rien trouvé.",
		Unavailable:     "Un problème est survenu de mon côté. Veuillez réessayer dans un instant.",
		ExplainNotFound: "un enregistrement nécessaire n'existe plus",
		ExplainScope:    "cet enregistrement n'appartient pas à ce mariage",
		ExplainStore:    "la modification a été refusée lors de l'enregistrement",
	},
	domain.LanguageGerman: {
		PreviewIntro:    "Bitte prüfe diese Änderung (%s):",
		AlsoWill:        "Außerdem wird:",
		Confirm:         "Soll ich fortfahren? Antworte ja zum Bestätigen oder nein zum Abbrechen.",
		Cancelled:       "Alles klar, ich habe das abgebrochen. Es wurde nichts geändert.",
		Hold:            "Kein Problem. Die Änderung oben wartet noch auf deine Antwort.",
		Expired:         "Die frühere Anfrage ist abgelaufen, daher habe ich nichts getan. Bitte sag mir noch einmal, was du ändern möchtest.",
		Superseded:      "Ich habe die vorherige unbestätigte Änderung verworfen.",
		Ambiguous:       "Ich habe mehrere Treffer für „%s“ gefunden: %s. Welcher ist gemeint?",
		NoMatch:         "Ich habe kein %s gefunden, das zu „%s“ passt. Kannst du den Namen prüfen?",
		Unresolved:      "Ich bin nicht sicher, welches %s mit „%s“ gemeint ist. Kannst du mir den Namen nennen?",
		DateParse:       "Ich habe „%s“ nicht als Datum oder Uhrzeit verstanden. Kannst du es wie 2026-06-14 oder 16:30 schreiben?",
		MissingField:    "Welchen Wert soll ich für %s verwenden?",
		MissingEntity:   "Welches %s meinst du?",
		InvalidField:    "Der Wert für %s scheint nicht zu stimmen: %s.",
		UnknownTool:     "Entschuldigung, ich wusste nicht, wie ich das umsetzen soll. Kannst du die Anfrage anders formulieren?",
		ExecutionFailed: "Ich konnte das nicht abschließen: %s.",
		CompletedBefore: "Diese Schritte waren bereits erledigt:",
		Retry:           "Soll ich es noch einmal versuchen oder etwas anderes tun?",
		Done:            "Erledigt.",
		AlsoCreated:     "Ebenfalls aktualisiert:",
		WhichClient:     "Welche Hochzeit meinst du? %s",
		NoClients:       "Es gibt noch keine Hochzeiten. Möchtest du eine anlegen?",
		NoResults:       "Ich habe nichts gefunden.",
		Unavailable:     "Bei mir ist etwas schiefgelaufen. Bitte versuche es gleich noch einmal.",
		ExplainNotFound: "ein benötigter Datensatz existiert nicht mehr",
		ExplainScope:    "dieser Datensatz gehört nicht zu dieser Hochzeit",
		ExplainStore:    "die Änderung wurde beim Speichern abgelehnt",
	},
	domain.LanguageJapanese: {
		PreviewIntro:    "この変更を確認してください（%s）：",
		AlsoWill:        "あわせて次も行います：",
		Confirm:         "実行してもよろしいですか？確定する場合は「はい」、取り消す場合は「いいえ」と返信してください。",
		Cancelled:       "承知しました。取り消しました。何も変更していません。",
		Hold:            "急ぎません。上の変更はまだお返事をお待ちしています。",
		Expired:         "以前のリクエストは期限切れになったため、何も実行していません。変更したい内容をもう一度教えてください。",
		Superseded:      "未確定だった前の変更は保留を解除しました。",
		Ambiguous:       "「%s」に一致する候補が複数あります：%s。どれのことですか？",
		NoMatch:         "「%[2]s」に一致する%[1]sが見つかりませんでした。名前を確認していただけますか？",
		Unresolved:      "「%[2]s」がどの%[1]sを指すのか分かりません。名前を教えていただけますか？",
		DateParse:       "「%s」を日付または時刻として理解できませんでした。2026-06-14 や 16:30 のように書いていただけますか？",
		MissingField:    "%sには何を使えばよいですか？",
		MissingEntity:   "どの%sのことですか？",
		InvalidField:    "%sの値が正しくないようです：%s。",
		UnknownTool:     "申し訳ありません、その操作の方法が分かりませんでした。言い換えていただけますか？",
		ExecutionFailed: "完了できませんでした：%s。",
		CompletedBefore: "次の手順はすでに完了していました：",
		Retry:           "もう一度試しますか？それとも別の操作をしますか？",
		Done:            "完了しました。",
		AlsoCreated:     "あわせて更新しました：",
		WhichClient:     "どの結婚式のことですか？ %s",
		NoClients:       "まだ結婚式が登録されていません。作成しますか？",
		NoResults:       "何も見つかりませんでした。",
		Unavailable:     "こちら側で問題が発生しました。しばらくしてからもう一度お試しください。",
		ExplainNotFound: "必要なレコードがもう存在しません",
		ExplainScope:    "そのレコードはこの結婚式のものではありません",
		ExplainStore:    "保存時に変更が拒否されました",
	},
	domain.LanguageChinese: {
		PreviewIntro:    "请确认以下变更（%s）：",
		AlsoWill:        "同时还会：",
		Confirm:         "要继续吗？回复“是”确认，回复“否”取消。",
		Cancelled:       "好的，已取消。没有做任何更改。",
		Hold:            "不着急。上面的变更仍在等待您的答复。",
		Expired:         "之前的请求已超时，所以我没有执行任何操作。请再告诉我一次您想修改什么。",
		Superseded:      "我已放弃之前未确认的变更。",
		Ambiguous:       "“%s”匹配到多个结果：%s。您指的是哪一个？",
		NoMatch:         "没有找到与“%[2]s”匹配的%[1]s。能确认一下名字吗？",
		Unresolved:      "我不确定“%[2]s”指的是哪个%[1]s。能告诉我名字吗？",
		DateParse:       "我无法把“%s”理解为日期或时间。可以写成 2026-06-14 或 16:30 这样的格式吗？",
		MissingField:    "%s应该填什么？",
		MissingEntity:   "您指的是哪个%s？",
		InvalidField:    "%s的值似乎不正确：%s。",
		UnknownTool:     "抱歉，我不知道该如何完成这个操作。能换一种说法吗？",
		ExecutionFailed: "未能完成：%s。",
		CompletedBefore: "以下步骤已经完成：",
		Retry:           "需要我再试一次，还是换个操作？",
		Done:            "已完成。",
		AlsoCreated:     "同时更新了：",
		WhichClient:     "您指的是哪场婚礼？%s",
		NoClients:       "目前还没有婚礼。要创建一个吗？",
		NoResults:       "没有找到任何内容。",
		Unavailable:     "我这边出了点问题，请稍后再试。",
		ExplainNotFound: "所需的记录已不存在",
		ExplainScope:    "该记录不属于这场婚礼",
		ExplainStore:    "保存时变更被拒绝",
	},
}

func messagesFor(lang domain.Language) messages {
	m, ok := catalogue[lang]
	if !ok {
		return catalogue[domain.LanguageEnglish]
	}
	m.entities = entityLabels[lang]
	m.fields = fieldLabels[lang]
	return m
}
