package application

import (
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// English labels come from the identifiers themselves.
var entityLabels = map[domain.Language]map[domain.EntityType]string{
	domain.LanguageHindi: {
		domain.EntityClient:       "शादी",
		domain.EntityGuest:        "मेहमान",
		domain.EntityVendor:       "विक्रेता",
		domain.EntityEvent:        "कार्यक्रम",
		domain.EntityBudgetItem:   "बजट मद",
		domain.EntityHotelBooking: "होटल बुकिंग",
		domain.EntityGift:         "उपहार",
		domain.EntityTimelineItem: "समय-सारणी मद",
	},
	domain.LanguageSpanish: {
		domain.EntityClient:       "boda",
		domain.EntityGuest:        "invitado",
		domain.EntityVendor:       "proveedor",
		domain.EntityEvent:        "evento",
		domain.EntityBudgetItem:   "partida de presupuesto",
		domain.EntityHotelBooking: "reserva de hotel",
		domain.EntityGift:         "regalo",
		domain.EntityTimelineItem: "punto del programa",
	},
	domain.LanguageFrench: {
		domain.EntityClient:       "mariage",
		domain.EntityGuest:        "invité",
		domain.EntityVendor:       "prestataire",
		domain.EntityEvent:        "événement",
		domain.EntityBudgetItem:   "poste budgétaire",
		domain.EntityHotelBooking: "réservation d'hôtel",
		domain.EntityGift:         "cadeau",
		domain.EntityTimelineItem: "étape du programme",
	},
	domain.LanguageGerman: {
		domain.EntityClient:       "Hochzeit",
		domain.EntityGuest:        "Gast",
		domain.EntityVendor:       "Dienstleister",
		domain.EntityEvent:        "Veranstaltung",
		domain.EntityBudgetItem:   "Budgetposten",
		domain.EntityHotelBooking: "Hotelbuchung",
		domain.EntityGift:         "Geschenk",
		domain.EntityTimelineItem: "Programmpunkt",
	},
	domain.LanguageJapanese: {
		domain.EntityClient:       "結婚式",
		domain.EntityGuest:        "ゲスト",
		domain.EntityVendor:       "業者",
		domain.EntityEvent:        "イベント",
		domain.EntityBudgetItem:   "予算項目",
		domain.EntityHotelBooking: "ホテル予約",
		domain.EntityGift:         "ギフト",
		domain.EntityTimelineItem: "タイムライン項目",
	},
	domain.LanguageChinese: {
		domain.EntityClient:       "婚礼",
		domain.EntityGuest:        "宾客",
		domain.EntityVendor:       "供应商",
		domain.EntityEvent:        "活动",
		domain.EntityBudgetItem:   "预算项",
		domain.EntityHotelBooking: "酒店预订",
		domain.EntityGift:         "礼物",
		domain.EntityTimelineItem: "流程项",
	},
}

var fieldLabels = map[domain.Language]map[string]string{
	domain.LanguageHindi: {
		"name":         "नाम",
		"email":        "ईमेल",
		"phone":        "फ़ोन",
		"side":         "पक्ष",
		"rsvp_status":  "RSVP स्थिति",
		"plus_ones":    "अतिरिक्त मेहमान",
		"needs_hotel":  "होटल चाहिए",
		"dietary":      "भोजन पसंद",
		"date":         "तारीख",
		"start_time":   "शुरू होने का समय",
		"title":        "शीर्षक",
		"venue":        "स्थान",
		"wedding_date": "शादी की तारीख",
		"budget":       "बजट",
		"amount":       "राशि",
		"cost":         "लागत",
		"category":     "श्रेणी",
		"hotel_name":   "होटल",
		"check_in":     "चेक-इन",
		"check_out":    "चेक-आउट",
		"minutes":      "मिनट",
		"description":  "विवरण",
		"guest":        "मेहमान",
		"guests":       "मेहमान",
		"vendor":       "विक्रेता",
	},
	domain.LanguageSpanish: {
		"name":         "nombre",
		"email":        "correo",
		"phone":        "teléfono",
		"side":         "lado",
		"rsvp_status":  "estado RSVP",
		"plus_ones":    "acompañantes",
		"needs_hotel":  "necesita hotel",
		"dietary":      "dieta",
		"date":         "fecha",
		"start_time":   "hora de inicio",
		"title":        "título",
		"venue":        "lugar",
		"wedding_date": "fecha de la boda",
		"budget":       "presupuesto",
		"amount":       "importe",
		"cost":         "coste",
		"category":     "categoría",
		"hotel_name":   "hotel",
		"check_in":     "entrada",
		"check_out":    "salida",
		"minutes":      "minutos",
		"description":  "descripción",
		"guest":        "invitado",
		"guests":       "invitados",
		"vendor":       "proveedor",
	},
	domain.LanguageFrench: {
		"name":         "nom",
		"email":        "e-mail",
		"phone":        "téléphone",
		"side":         "côté",
		"rsvp_status":  "statut RSVP",
		"plus_ones":    "accompagnants",
		"needs_hotel":  "besoin d'hôtel",
		"dietary":      "régime",
		"date":         "date",
		"start_time":   "heure de début",
		"title":        "titre",
		"venue":        "lieu",
		"wedding_date": "date du mariage",
		"budget":       "budget",
		"amount":       "montant",
		"cost":         "coût",
		"category":     "catégorie",
		"hotel_name":   "hôtel",
		"check_in":     "arrivée",
		"check_out":    "départ",
		"minutes":      "minutes",
		"description":  "description",
		"guest":        "invité",
		"guests":       "invités",
		"vendor":       "prestataire",
	},
	domain.LanguageGerman: {
		"name":         "Name",
		"email":        "E-Mail",
		"phone":        "Telefon",
		"side":         "Seite",
		"rsvp_status":  "RSVP-Status",
		"plus_ones":    "Begleitpersonen",
		"needs_hotel":  "braucht Hotel",
		"dietary":      "Ernährung",
		"date":         "Datum",
		"start_time":   "Beginn",
		"title":        "Titel",
		"venue":        "Ort",
		"wedding_date": "Hochzeitsdatum",
		"budget":       "Budget",
		"amount":       "Betrag",
		"cost":         "Kosten",
		"category":     "Kategorie",
		"hotel_name":   "Hotel",
		"check_in":     "Anreise",
		"check_out":    "Abreise",
		"minutes":      "Minuten",
		"description":  "Beschreibung",
		"guest":        "Gast",
		"guests":       "Gäste",
		"vendor":       "Dienstleister",
	},
	domain.LanguageJapanese: {
		"name":         "名前",
		"email":        "メール",
		"phone":        "電話",
		"side":         "側",
		"rsvp_status":  "出欠",
		"plus_ones":    "同伴者",
		"needs_hotel":  "ホテル要否",
		"dietary":      "食事制限",
		"date":         "日付",
		"start_time":   "開始時刻",
		"title":        "タイトル",
		"venue":        "会場",
		"wedding_date": "挙式日",
		"budget":       "予算",
		"amount":       "金額",
		"cost":         "費用",
		"category":     "カテゴリ",
		"hotel_name":   "ホテル",
		"check_in":     "チェックイン",
		"check_out":    "チェックアウト",
		"minutes":      "分",
		"description":  "説明",
		"guest":        "ゲスト",
		"guests":       "ゲスト",
		"vendor":       "業者",
	},
	domain.LanguageChinese: {
		"name":         "姓名",
		"email":        "邮箱",
		"phone":        "电话",
		"side":         "方",
		"rsvp_status":  "回复状态",
		"plus_ones":    "随行人数",
		"needs_hotel":  "需要酒店",
		"dietary":      "饮食要求",
		"date":         "日期",
		"start_time":   "开始时间",
		"title":        "标题",
		"venue":        "场地",
		"wedding_date": "婚礼日期",
		"budget":       "预算",
		"amount":       "金额",
		"cost":         "费用",
		"category":     "类别",
		"hotel_name":   "酒店",
		"check_in":     "入住",
		"check_out":    "退房",
		"minutes":      "分钟",
		"description":  "描述",
		"guest":        "宾客",
		"guests":       "宾客",
		"vendor":       "供应商",
	},
}

// entity names an entity type in the reply language.
func (m messages) entity(t domain.EntityType) string {
	if label, ok := m.entities[t]; ok {
		return label
	}
	return t.Label()
}

// field names a parameter in a question.
func (m messages) field(name string) string {
	if label, ok := m.fields[name]; ok {
		return label
	}
	return fieldLabel(name)
}

// argumentLine relabels a "param: value" preview line. English keeps the raw
// parameter name so previews stay greppable.
func (m messages) argumentLine(name, line string) string {
	label, ok := m.fields[name]
	if !ok {
		return line
	}
	if rest, found := strings.CutPrefix(line, name+": "); found {
		return label + ": " + rest
	}
	return line
}

// resultLine relabels a leading "<entity type>: " in an execution line.
func (m messages) resultLine(line string) string {
	if len(m.entities) == 0 {
		return line
	}
	head, rest, found := strings.Cut(line, ": ")
	if !found {
		return line
	}
	for t, label := range m.entities {
		if head == t.Label() {
			return label + ": " + rest
		}
	}
	return line
}
