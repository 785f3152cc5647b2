package application

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// formatAmount renders money with thousands separators and cents only when needed.
func formatAmount(v float64) string {
	negative := v < 0
	v = math.Abs(v)
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if cents > 0 {
		fmt.Fprintf(&b, ".%02d", cents)
	}
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case domain.EntityRef:
		return x.Label()
	case []domain.EntityRef:
		labels := make([]string, 0, len(x))
		for _, ref := range x {
			labels = append(labels, ref.Label())
		}
		return strings.Join(labels, ", ")
	case []string:
		return strings.Join(x, ", ")
	}
	if n, ok := domain.NumberValue(v); ok {
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', 2, 64)
	}
	return fmt.Sprint(v)
}

func fieldLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
