package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		reply string
		want  ReplyClass
	}{
		{reply: "yes", want: ReplyAffirmative},
		{reply: "Yes please!", want: ReplyAffirmative},
		{reply: "ok go ahead", want: ReplyAffirmative},
		{reply: "Sounds good.", want: ReplyAffirmative},
		{reply: "sí, adelante", want: ReplyAffirmative},
		{reply: "oui", want: ReplyAffirmative},
		{reply: "ja, mach das", want: ReplyAffirmative},
		{reply: "theek hai", want: ReplyAffirmative},
		{reply: "はい", want: ReplyAffirmative},
		{reply: "好的", want: ReplyAffirmative},
		{reply: "हाँ", want: ReplyAffirmative},
		{reply: "सहमत हूँ", want: ReplyAffirmative},
		{reply: "不错，就这样", want: ReplyAffirmative},
		{reply: "no problem, go ahead", want: ReplyAffirmative},
		{reply: "kein Problem, mach das", want: ReplyAffirmative},

		{reply: "no", want: ReplyNegative},
		{reply: "No, cancel it", want: ReplyNegative},
		{reply: "don't", want: ReplyNegative},
		{reply: "never mind", want: ReplyNegative},
		{reply: "yes no", want: ReplyNegative},
		{reply: "nein", want: ReplyNegative},
		{reply: "いいえ", want: ReplyNegative},
		{reply: "नहीं", want: ReplyNegative},
		{reply: "मत करो", want: ReplyNegative},
		{reply: "不是这个", want: ReplyNegative},

		{reply: "wait", want: ReplyHold},
		{reply: "hmm, let me think", want: ReplyHold},
		{reply: "I'm not sure", want: ReplyHold},
		{reply: "un momento", want: ReplyHold},
		{reply: "等一下", want: ReplyHold},

		{reply: "", want: ReplyUnclear},
		{reply: "yes but change the date", want: ReplyUnclear},
		{reply: "add another guest named Meera", want: ReplyUnclear},
		{reply: "yes and also add Meera to the guest list", want: ReplyUnclear},
		{reply: "好的，但是换个日期", want: ReplyUnclear},
		{reply: "yes, add Meera too", want: ReplyUnclear},
		{reply: "yes and also add Meera", want: ReplyUnclear},
		{reply: "ok, plus one more table", want: ReplyUnclear},
		{reply: "sí, y también a Meera", want: ReplyUnclear},
		{reply: "oui, ajoute aussi Meera", want: ReplyUnclear},
		{reply: "ja, auch Meera", want: ReplyUnclear},
		{reply: "haan, Meera bhi", want: ReplyUnclear},
		{reply: "好的，也加上Meera", want: ReplyUnclear},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyReply(tt.reply))
		})
	}
}
