package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/flowrank/internal/contracts"
	"github.com/wonny/flowrank/internal/report"
)

// ═══════════════════════════════════════════════════════════
// Console rendering for ranking results
// ═══════════════════════════════════════════════════════════

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

var rankingColumns = []string{"TICKER", "BULLISH", "BEARISH", "NET FLOW", "VOLUME", "MARKET CAP", "REL FLOW", "SCORE"}
var rankingWidths = []int{8, 18, 18, 18, 12, 20, 12, 12}

// RenderRankings prints both ranked tables
func RenderRankings(r *contracts.Rankings, topN int) {
	fmt.Println()
	fmt.Printf("TOP %d BULLISH FLOW STOCKS (%s)\n", topN, r.Date)
	PrintDoubleSeparator()
	renderSide(r.Bullish, "No bullish flows found")

	fmt.Println()
	fmt.Printf("TOP %d BEARISH FLOW STOCKS (%s)\n", topN, r.Date)
	PrintDoubleSeparator()
	renderSide(r.Bearish, "No bearish flows found")
}

func renderSide(entries []contracts.RankedEntry, emptyMsg string) {
	if len(entries) == 0 {
		fmt.Println(emptyMsg)
		return
	}

	printTableHeader(rankingColumns, rankingWidths)
	for _, e := range entries {
		printTableRow([]string{
			e.Ticker,
			formatThousands(e.BullishFlow, 2),
			formatThousands(e.BearishFlow, 2),
			formatThousands(e.NetFlow, 2),
			formatThousands(float64(e.TotalVolume), 0),
			formatThousands(e.MarketCap, 2),
			strconv.FormatFloat(e.RelativeFlow, 'f', 6, 64),
			strconv.FormatFloat(e.StandardizedScore, 'f', 2, 64),
		}, rankingWidths)
	}
}

// RenderBreakdown prints the market cap category breakdown
func RenderBreakdown(breakdown []report.CategoryBreakdown, profiles map[string]contracts.CompanyProfile) {
	fmt.Println()
	fmt.Println("MARKET CAP BREAKDOWN")
	PrintDoubleSeparator()

	for _, cat := range breakdown {
		fmt.Printf("\n%s: %d bullish, %d bearish (universe %d)\n",
			cat.Category.DisplayName(), cat.BullishCount, cat.BearishCount, cat.Universe)

		for _, e := range cat.TopBullish {
			fmt.Printf("   ▲ %-8s net flow %s%s\n", e.Ticker, formatThousands(e.NetFlow, 2), profileLabel(profiles, e.Ticker))
		}
		for _, e := range cat.TopBearish {
			fmt.Printf("   ▼ %-8s net flow %s%s\n", e.Ticker, formatThousands(e.NetFlow, 2), profileLabel(profiles, e.Ticker))
		}
	}
}

// profileLabel returns a " (Company Name)" suffix when a profile is known
func profileLabel(profiles map[string]contracts.CompanyProfile, ticker string) string {
	p, ok := profiles[ticker]
	if !ok || p.CompanyName == "" {
		return ""
	}
	return " (" + p.CompanyName + ")"
}

func printTableHeader(columns []string, widths []int) {
	printTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2
		}
	}
	fmt.Println(strings.Repeat("─", totalWidth))
}

func printTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// formatThousands formats a number with comma separators and a fixed
// number of decimals: 1234567.8 -> "1,234,567.80"
func formatThousands(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
