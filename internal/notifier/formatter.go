package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/Taitony19930316/Medalion/internal/engine"
	"github.com/Taitony19930316/Medalion/internal/portfolio"
)

// FormatEvaluation formats one instrument's evaluation into a Telegram message.
func FormatEvaluation(res *engine.Result, granted float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Medalion 信号</b> | %s | %s\n\n",
		res.Symbol, time.Now().Format("2006-01-02")))

	// Structural summary
	b.WriteString("🧭 <b>结构状态:</b>\n")
	b.WriteString(fmt.Sprintf("  分型 %d | 笔 %d | 线段 %d | 中枢 %d\n",
		len(res.Structure.Fractals), len(res.Structure.Strokes),
		len(res.Structure.Segments), len(res.Structure.Pivots)))
	if seg, ok := res.Structure.LastSegment(); ok {
		b.WriteString(fmt.Sprintf("  当前线段: %s (共%d笔)\n", seg.Direction, seg.StrokeCount()))
	}
	if piv, ok := res.Structure.LastPivot(); ok {
		state := "已离开"
		if piv.Open {
			state = "延伸中"
		}
		b.WriteString(fmt.Sprintf("  最近中枢: [%.2f, %.2f] %s\n", piv.Lower, piv.Upper, state))
	}
	if len(res.Divergences) > 0 {
		last := res.Divergences[len(res.Divergences)-1]
		b.WriteString(fmt.Sprintf("  ⚡ %s，力度衰减 %.0f%%\n", last.Kind, last.Magnitude*100))
	}
	b.WriteString("\n")

	// Per-unit signals
	b.WriteString("📈 <b>策略单元明细:</b>\n")
	for _, sig := range res.Signals {
		b.WriteString(fmt.Sprintf("  %s: %s 强度%.2f 置信%.2f | %s\n",
			sig.Unit, sig.Direction, sig.Strength, sig.Confidence, sig.Rationale))
	}
	for name := range res.Failed {
		b.WriteString(fmt.Sprintf("  %s: ❌ 评估失败，已剔除\n", name))
	}
	b.WriteString("  ─────────────────\n")

	// Composite decision
	c := res.Composite
	b.WriteString(fmt.Sprintf("💰 <b>综合决策:</b> %s | 强度 %.3f | 置信 %.3f\n",
		c.Direction, c.Strength, c.Confidence))
	b.WriteString(fmt.Sprintf("   建议仓位: %.1f%%", c.Fraction*100))
	if granted != c.Fraction {
		b.WriteString(fmt.Sprintf(" (组合限额后 %.1f%%)", granted*100))
	}
	b.WriteString("\n")

	return b.String()
}

// FormatPortfolioStatus formats the current portfolio allocations.
func FormatPortfolioStatus(state *portfolio.State) string {
	var b strings.Builder
	b.WriteString("📦 <b>组合仓位状态</b>\n\n")
	if len(state.Positions) == 0 {
		b.WriteString("当前无持仓\n")
	}
	total := 0.0
	for symbol, f := range state.Positions {
		b.WriteString(fmt.Sprintf("%s: %.1f%%\n", symbol, f*100))
		total += f
	}
	b.WriteString(fmt.Sprintf("合计: %.1f%%\n", total*100))
	b.WriteString(fmt.Sprintf("更新时间: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}
