package telegram

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/utils"
)

const maxMessageLen = 4090

var (
	markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	linkEscaper     = strings.NewReplacer(")", "%29", "\\", "%5C")
)

// FormatDashboardDigest formats a dashboard into one or more Markdown
// messages, each within Telegram's length limit.
func FormatDashboardDigest(d *entity.Dashboard, generatedAt time.Time) []string {
	if d == nil || d.Snapshot == nil {
		return []string{"目前沒有可用的儀表板資料。"}
	}
	s := d.Snapshot

	var head strings.Builder
	trendIcon := "📉"
	if s.IsUp() {
		trendIcon = "📈"
	}
	head.WriteString(fmt.Sprintf("%s *%s %s*\n", trendIcon, escape(s.Symbol), escape(s.DisplayName())))
	head.WriteString(fmt.Sprintf("💰 *股價:* %s (%s / %s)\n", escape(string(s.Price)), escape(string(s.Change)), escape(string(s.ChangePercent))))
	if s.UpdateTime != "" {
		head.WriteString(fmt.Sprintf("🕒 %s\n", escape(s.UpdateTime)))
	}
	if s.AISummary != "" {
		head.WriteString(fmt.Sprintf("\n💬 *AI 摘要:* %s\n", escape(s.AISummary)))
	}

	head.WriteString(fmt.Sprintf("\n%s *市場情緒:* %s (%.2f, %d 則)\n",
		polarityIcon(d.Polarity.Label), d.Polarity.Label, d.Polarity.Average, d.Polarity.Count))

	if days := d.Institutional.NewestFirst(); len(days) > 0 {
		latest := days[0]
		head.WriteString(fmt.Sprintf("\n🏦 *三大法人 (%s, 張)*\n", latest.Date))
		head.WriteString(fmt.Sprintf("• 外資: %s\n", signed(entity.ToLots(latest.ForeignNet))))
		head.WriteString(fmt.Sprintf("• 投信: %s\n", signed(entity.ToLots(latest.InvestmentTrustNet))))
		head.WriteString(fmt.Sprintf("• 自營商: %s\n", signed(entity.ToLots(latest.DealerNet))))
		head.WriteString(fmt.Sprintf("• 融資餘額: %d / 融券餘額: %d\n", latest.MarginBalance, latest.ShortBalance))
	} else {
		head.WriteString("\n🏦 _暫無法人籌碼資料_\n")
	}

	entries := []string{head.String()}
	for _, item := range d.Sentiment {
		entry := fmt.Sprintf("%s %s\n", polarityIcon(entity.ClassifyScore(item.Score)), escape(item.Title))
		if item.Link != "" {
			entry += fmt.Sprintf("[🔗 閱讀全文](%s)\n", linkEscaper.Replace(item.Link))
		}
		entries = append(entries, entry)
	}
	entries = append(entries, fmt.Sprintf("\n📅 _%s_\n", utils.PrettyDate(generatedAt)))

	return SplitMessages(entries, func(part int) string {
		if part == 1 {
			return "📰 *台股儀表板摘要* 📰\n\n"
		}
		return fmt.Sprintf("---*台股儀表板摘要 Part %d*---\n\n", part)
	})
}

// SplitMessages packs entries into messages no longer than the Telegram
// limit, starting each with header(part). An entry that does not fit into an
// empty message is cut across consecutive messages.
func SplitMessages(entries []string, header func(part int) string) []string {
	var messages []string
	var current strings.Builder
	part := 1
	current.WriteString(header(part))

	flush := func() {
		messages = append(messages, current.String())
		part++
		current.Reset()
		current.WriteString(header(part))
	}

	for _, entry := range entries {
		for entry != "" {
			room := maxMessageLen - current.Len()
			if len(entry) <= room {
				current.WriteString(entry)
				break
			}
			if current.Len() > len(header(part)) {
				flush()
				continue
			}
			cut := cutPoint(entry, room)
			current.WriteString(entry[:cut])
			entry = entry[cut:]
			flush()
		}
	}
	return append(messages, current.String())
}

// cutPoint returns the largest index <= n that does not split a rune or
// separate an escape backslash from the character it escapes.
func cutPoint(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	if n > 1 && s[n-1] == '\\' {
		n--
	}
	return n
}

func polarityIcon(label entity.PolarityLabel) string {
	switch label {
	case entity.PolarityPositive:
		return "😊"
	case entity.PolarityNegative:
		return "😟"
	default:
		return "😐"
	}
}

func signed(v int64) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
