package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockPulse/internal/model"
	"StockPulse/internal/recorder"
)

var actionIcons = map[model.Action]string{
	model.ActionStrongBuy:  "🟢🟢",
	model.ActionBuy:        "🟢",
	model.ActionHold:       "🟡",
	model.ActionSell:       "🔴",
	model.ActionStrongSell: "🔴🔴",
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func levelList(levels []float64) string {
	if len(levels) == 0 {
		return "-"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = humanize.CommafWithDigits(l, 2)
	}
	return strings.Join(parts, " / ")
}

// FormatRecommendation formats a single recommendation into a Telegram message.
func FormatRecommendation(rec *model.Recommendation) string {
	var b strings.Builder
	ind := rec.Indicators

	b.WriteString(fmt.Sprintf("%s <b>%s</b> %s | score %d/100\n\n", actionIcons[rec.Action], rec.Symbol, rec.Action, rec.Score))
	b.WriteString(fmt.Sprintf("Price: %s\n", money(rec.Price)))
	b.WriteString(fmt.Sprintf("Trend: %s (confidence %.0f%%)\n", ind.Trend, ind.Confidence))
	b.WriteString(fmt.Sprintf("RSI(14): %.1f | Momentum(10): %+.2f%%\n", ind.RSI, ind.Momentum))
	b.WriteString(fmt.Sprintf("MACD: %.3f | Signal: %.3f | Hist: %+.3f\n", ind.MACD.MACD, ind.MACD.Signal, ind.MACD.Histogram))

	if sr := ind.SupportResistance; sr != nil {
		b.WriteString(fmt.Sprintf("Support: %s\n", levelList(sr.Support)))
		b.WriteString(fmt.Sprintf("Resistance: %s\n", levelList(sr.Resistance)))
		if sr.PivotPoint != nil {
			b.WriteString(fmt.Sprintf("Pivot: %s\n", humanize.CommafWithDigits(*sr.PivotPoint, 2)))
		}
	}

	if len(rec.Factors) > 0 {
		b.WriteString("\n<b>Score breakdown:</b>\n")
		for _, f := range rec.Factors {
			b.WriteString(fmt.Sprintf("  %s %+d (%s)\n", f.Name, f.Delta, f.Commentary))
		}
	}

	b.WriteString(fmt.Sprintf("\nBased on %d sessions.\n", rec.DataPoints))
	if rec.Warning != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", rec.Warning))
	}
	return b.String()
}

// FormatDigest formats the scheduled summary of all watched symbols.
func FormatDigest(recs []*model.Recommendation, failed []string, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>StockPulse digest</b> | %s\n\n", now.Format("2006-01-02")))
	if len(recs) == 0 && len(failed) == 0 {
		b.WriteString("Portfolio is empty. Use /add SYMBOL SHARES PRICE.\n")
		return b.String()
	}
	for _, rec := range recs {
		b.WriteString(fmt.Sprintf("%s %-6s %-11s %3d  %s  RSI %.0f\n",
			actionIcons[rec.Action], rec.Symbol, rec.Action, rec.Score, money(rec.Price), rec.Indicators.RSI))
	}
	if len(failed) > 0 {
		b.WriteString(fmt.Sprintf("\n❌ No data: %s\n", strings.Join(failed, ", ")))
	}
	return b.String()
}

// FormatPortfolio formats a portfolio valuation.
func FormatPortfolio(v model.Valuation) string {
	var b strings.Builder
	b.WriteString("📦 <b>Portfolio</b>\n\n")
	if len(v.Holdings) == 0 {
		b.WriteString("No holdings.\n")
		return b.String()
	}
	for _, h := range v.Holdings {
		value, _ := h.MarketValue.Float64()
		pnl, _ := h.UnrealizedPnL.Float64()
		b.WriteString(fmt.Sprintf("%s: %s sh @ %s = %s (%s, %s%%)\n",
			h.Symbol, h.Shares.String(), h.CostBasis.StringFixed(2), money(value), signedMoney(pnl), h.PnLPercent.StringFixed(2)))
	}
	total, _ := v.TotalValue.Float64()
	pnl, _ := v.TotalPnL.Float64()
	b.WriteString(fmt.Sprintf("\nTotal: %s (%s)\n", money(total), signedMoney(pnl)))
	return b.String()
}

func signedMoney(v float64) string {
	if v < 0 {
		return "-" + money(-v)
	}
	return "+" + money(v)
}

// FormatHistory formats recent analyses of one symbol.
func FormatHistory(symbol string, snaps []recorder.AnalysisSnapshot, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕑 <b>%s history</b>\n\n", symbol))
	if len(snaps) == 0 {
		b.WriteString("No analyses recorded yet.\n")
		return b.String()
	}
	for _, s := range snaps {
		b.WriteString(fmt.Sprintf("%s: %s %d (%s, RSI %.0f)\n",
			humanize.RelTime(s.GeneratedAt, now, "ago", "from now"), s.Action, s.Score, s.Trend, s.RSI))
	}
	return b.String()
}
