package pdf

import (
	"fmt"
	"strings"
	"time"
)

// Rendering uses a fixed Croatian locale: dd.mm.yyyy dates, comma decimal
// separator, dot thousands grouping.

func formatDate(t time.Time) string {
	return t.Format("02.01.2006.")
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

func formatRate(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return strings.ReplaceAll(s, ".", ",")
}
