package domain

import "fmt"

// FormatMinutes renders a duration magnitude as "X小时Y分钟". Negative
// inputs are rendered by magnitude; the sign belongs to the caller's
// 超时/节时 indicator, never to the components.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%d小时%d分钟", minutes/60, minutes%60)
}

// FormatDiffMinutes renders a signed control-vs-actual difference.
// Positive means overtime, negative means time saved.
func FormatDiffMinutes(diff int) string {
	switch {
	case diff > 0:
		return "超时" + FormatMinutes(diff)
	case diff < 0:
		return "节时" + FormatMinutes(-diff)
	default:
		return FormatMinutes(0)
	}
}

// FormatGapMinutes renders a gap as "X天Y小时Z分钟".
func FormatGapMinutes(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	days := minutes / (24 * 60)
	rest := minutes % (24 * 60)
	return fmt.Sprintf("%d天%d小时%d分钟", days, rest/60, rest%60)
}

// GapTextMissing is rendered when the inputs of a gap are absent.
const GapTextMissing = "数据缺失"
