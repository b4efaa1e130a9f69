// Package briefing renders indicator snapshots into the Telegram digest.
// Messages are Telegram-HTML and fixed to Korean/KST; the layout mirrors the
// briefing the recipients already know, so changes here are user-visible.
package briefing

import (
	"fmt"
	"strings"
	"time"

	"morning-macro/internal/domain"
)

var koreanWeekdays = map[time.Weekday]string{
	time.Monday:    "월",
	time.Tuesday:   "화",
	time.Wednesday: "수",
	time.Thursday:  "목",
	time.Friday:    "금",
	time.Saturday:  "토",
	time.Sunday:    "일",
}

// FormatChange renders a delta as a directional token. ok=false means the
// delta is undetermined (missing or non-numeric input) and renders as N/A.
func FormatChange(delta float64, ok bool) string {
	switch {
	case !ok:
		return "📊 N/A"
	case delta > 0:
		return fmt.Sprintf("📈 +%.2f", delta)
	case delta < 0:
		return fmt.Sprintf("📉 %.2f", delta)
	default:
		return fmt.Sprintf("➡️ %.2f", delta)
	}
}

// shortDate reformats an ISO date to MM/DD. ok=false when the input does not
// parse; callers omit the suffix silently in that case.
func shortDate(iso string) (string, bool) {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", false
	}
	return d.Format("01/02"), true
}

// Render builds the full briefing message for one cycle. Critical-tier
// indicators come first, then important-tier ones, each group in static
// definition order. Series whose latest value is the missing token get no
// line at all.
func Render(snapshots map[string]domain.IndicatorSnapshot, now time.Time) string {
	kst := now.In(domain.KST)

	var b strings.Builder
	fmt.Fprintf(&b, "🇺🇸 <b>미국 경제지표 브리핑</b>\n")
	fmt.Fprintf(&b, "📅 %d년 %02d월 %02d일 발송\n", kst.Year(), int(kst.Month()), kst.Day())
	b.WriteString("\n<b>📊 주요 지표:</b>")

	for _, def := range domain.Indicators {
		if def.Importance != domain.TierCritical {
			continue
		}
		snap, ok := snapshots[def.SeriesID]
		if !ok || snap.Latest.Value.Missing() {
			continue
		}

		change := FormatChange(deltaOf(snap))
		fmt.Fprintf(&b, "\n- <b>%s</b>: %s%s %s", def.Name, snap.Latest.Value, def.Unit, change)
		if suffix, ok := shortDate(snap.Latest.Date); ok {
			fmt.Fprintf(&b, " (%s)", suffix)
		}
	}

	if hasRenderable(snapshots, domain.TierImportant) {
		b.WriteString("\n\n<b>📈 기타 지표:</b>")
		for _, def := range domain.Indicators {
			if def.Importance != domain.TierImportant {
				continue
			}
			snap, ok := snapshots[def.SeriesID]
			if !ok || snap.Latest.Value.Missing() {
				continue
			}

			change := FormatChange(deltaOf(snap))
			fmt.Fprintf(&b, "\n- %s: %s%s %s", def.Name, snap.Latest.Value, def.Unit, change)
		}
	}

	b.WriteString("\n\n<b>📊 브리핑 요약:</b>\n")
	b.WriteString("최신 미국 경제지표를 확인하세요.\n")
	fmt.Fprintf(&b, "\n⏰ %02d:%02d (KST) 발송\n", kst.Hour(), kst.Minute())
	b.WriteString("🔄 다음 브리핑: 내일 오전 7:30")

	return b.String()
}

// StartupMessage is the one-time notice sent when the process boots with a
// complete configuration.
func StartupMessage(now time.Time) string {
	kst := now.In(domain.KST)

	var b strings.Builder
	b.WriteString("🇺🇸 <b>미국 경제지표 브리핑 봇 시작!</b>\n\n")
	fmt.Fprintf(&b, "📅 %s (%s요일)\n", kst.Format("2006-01-02"), koreanWeekdays[kst.Weekday()])
	fmt.Fprintf(&b, "⏰ %s (KST)\n\n", kst.Format("15:04:05"))
	b.WriteString("<b>📊 브리핑 스케줄:</b>\n")
	b.WriteString("- 매일 오전 7:30 정기 발송\n")
	b.WriteString("- 주요 경제지표 자동 수집\n")
	b.WriteString("- 평일만 운영 (주말 휴무)\n\n")
	b.WriteString("<b>📈 포함 지표:</b>\n")
	b.WriteString("- 실업률, CPI, 비농업취업자수\n")
	b.WriteString("- GDP, 소매판매 등\n\n")
	b.WriteString("다음 브리핑: 내일 오전 7:30 📅")

	return b.String()
}

func deltaOf(snap domain.IndicatorSnapshot) (float64, bool) {
	var prev *domain.Value
	if snap.Previous != nil {
		prev = &snap.Previous.Value
	}
	return domain.ComputeDelta(snap.Latest.Value, prev)
}

func hasRenderable(snapshots map[string]domain.IndicatorSnapshot, tier domain.ImportanceTier) bool {
	for _, def := range domain.Indicators {
		if def.Importance != tier {
			continue
		}
		if snap, ok := snapshots[def.SeriesID]; ok && !snap.Latest.Value.Missing() {
			return true
		}
	}
	return false
}
