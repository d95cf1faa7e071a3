package formatting

import (
	"fmt"
	"strconv"
	"strings"

	domain "github.com/inference-gateway/costgate/internal/domain"
	wordwrap "github.com/muesli/reflow/wordwrap"
)

// ============================================================================
// Text Utilities
// ============================================================================

// WrapText wraps text to fit within the specified width using wordwrap
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// GetResponsiveWidth calculates appropriate width based on terminal size
func GetResponsiveWidth(terminalWidth int) int {
	const (
		minWidth    = 40
		maxWidth    = 120
		leftPadding = 2
		rightBuffer = 6
		margin      = leftPadding + rightBuffer
	)

	availableWidth := terminalWidth - margin

	if availableWidth < minWidth {
		return minWidth
	}

	if availableWidth > maxWidth {
		return maxWidth
	}

	return availableWidth
}

// FormatResponsiveMessage wraps each line to width and strips trailing spaces
func FormatResponsiveMessage(content string, width int) string {
	if width <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		if len(line) <= width {
			result = append(result, line)
			continue
		}
		wrappedLines := strings.Split(WrapText(line, width), "\n")
		for i, wl := range wrappedLines {
			wrappedLines[i] = strings.TrimRight(wl, " ")
		}
		result = append(result, strings.Join(wrappedLines, "\n"))
	}

	return strings.Join(result, "\n")
}

// ============================================================================
// Number Formatting
// ============================================================================

// FormatTokens renders a token count with thousands separators
func FormatTokens(tokens int) string {
	sign := ""
	if tokens < 0 {
		sign = "-"
		tokens = -tokens
	}

	digits := strconv.Itoa(tokens)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCost formats cost with adaptive precision based on magnitude
// Returns "-" for zero cost, and uses 2-4 decimal places based on the amount
func FormatCost(cost float64) string {
	if cost == 0 {
		return "-"
	} else if cost < 0.01 {
		return fmt.Sprintf("$%.4f", cost)
	} else if cost < 1.0 {
		return fmt.Sprintf("$%.3f", cost)
	} else {
		return fmt.Sprintf("$%.2f", cost)
	}
}

// FormatUSD renders a dollar amount rounded to cents
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatMultiplier renders a multiplier without trailing zeros, e.g. "x1.4" or "x3"
func FormatMultiplier(m float64) string {
	return "x" + strconv.FormatFloat(m, 'f', -1, 64)
}

// ============================================================================
// Breakdown Formatting
// ============================================================================

const labelWidth = 24

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-*s %s\n", labelWidth, label+":", value)
}

// FormatScanResult summarizes a scan on one line
func FormatScanResult(r domain.ScanResult) string {
	return fmt.Sprintf("%s tokens in %d files (%d skipped)",
		FormatTokens(r.Tokens), r.FilesCounted, r.FilesSkipped)
}

// FormatExactEstimate renders an exact-measurement estimate for display
func FormatExactEstimate(e domain.ExactEstimate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cost estimate (%s, %s)\n", e.Complexity, e.Model)
	writeRow(&b, "Files", fmt.Sprintf("%d counted, %d skipped", e.Scan.FilesCounted, e.Scan.FilesSkipped))
	writeRow(&b, "Measured file tokens", FormatTokens(e.MeasuredTokens))
	writeRow(&b, "Search overhead", FormatTokens(e.SearchOverhead))
	writeRow(&b, "IDE overhead", FormatTokens(e.IDEOverhead))
	writeRow(&b, "Base context per turn", FormatTokens(e.BaseContext))

	iterations := strconv.Itoa(e.EffectiveIterations)
	if e.EffectiveIterations != e.RequestedIterations {
		iterations += fmt.Sprintf(" (requested %d, tier minimum applied)", e.RequestedIterations)
	}
	writeRow(&b, "Iterations", iterations)
	writeRow(&b, "Total processed input", fmt.Sprintf("%s (+%s history per turn)",
		FormatTokens(e.TotalProcessedInput), FormatTokens(e.HistoryGrowth)))
	writeRow(&b, "New input", fmt.Sprintf("%s tokens  %s", FormatTokens(e.NewInputTokens), FormatCost(e.NewInputCost)))
	writeRow(&b, "Cache read", fmt.Sprintf("%s tokens  %s", FormatTokens(e.CacheReadTokens), FormatCost(e.CacheReadCost)))
	writeRow(&b, "Output", fmt.Sprintf("%s tokens  %s", FormatTokens(e.OutputTokens), FormatCost(e.OutputCost)))
	if e.Rates != "" {
		writeRow(&b, "Model rates", e.Rates)
	}
	writeRow(&b, "Estimated cost", FormatUSD(e.TotalCost))

	if e.ContextWarning != "" {
		fmt.Fprintf(&b, "WARNING: %s\n", e.ContextWarning)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatBudgetBreakdown renders a heuristic budget for verbatim display
func FormatBudgetBreakdown(bd domain.BudgetBreakdown, taskName string) string {
	var b strings.Builder

	if taskName != "" {
		fmt.Fprintf(&b, "Token budget: %s\n", taskName)
	} else {
		b.WriteString("Token budget\n")
	}

	cacheRead := FormatTokens(bd.DeclaredCacheRead)
	if bd.RiskMultiplier != 1 {
		cacheRead += fmt.Sprintf(" %s risk", FormatMultiplier(bd.RiskMultiplier))
	}
	if bd.Iterations != 1 {
		cacheRead += fmt.Sprintf(" x %d iterations", bd.Iterations)
	}
	if cacheRead != FormatTokens(bd.DeclaredCacheRead) {
		cacheRead += " = " + FormatTokens(bd.CacheReadTotal)
	}
	writeRow(&b, "Cache read", cacheRead)
	writeRow(&b, "IDE overhead", FormatTokens(bd.IDEOverhead))
	writeRow(&b, "Cache write", FormatTokens(bd.CacheWrite))
	writeRow(&b, "Input", FormatTokens(bd.Input))
	writeRow(&b, "Output", FormatTokens(bd.Output))

	tools := FormatTokens(bd.ToolCallOverhead)
	if bd.ToolCalls > 0 {
		tools = fmt.Sprintf("%d calls = %s", bd.ToolCalls, tools)
	}
	writeRow(&b, "Tool call overhead", tools)
	writeRow(&b, "Context accumulation", FormatTokens(bd.ContextAccumulation))
	writeRow(&b, "Subtotal", FormatTokens(bd.PreMultiplierTotal))
	safety := FormatMultiplier(bd.SafetyMultiplier)
	if bd.SafetyRequested > 0 {
		safety += fmt.Sprintf(" (raised from %s)", FormatMultiplier(bd.SafetyRequested))
	}
	writeRow(&b, "Safety multiplier", safety)

	total := bd.DisplayTotal + " tokens"
	if bd.TotalOverrideApplied {
		total = fmt.Sprintf("%s (computed %s tokens)", bd.DisplayTotal, FormatTokens(bd.FinalTotal))
	}
	writeRow(&b, "Estimated total", total)

	if bd.Warning != "" {
		fmt.Fprintf(&b, "WARNING: %s\n", bd.Warning)
	}

	return strings.TrimRight(b.String(), "\n")
}

// ============================================================================
// CLI Message Formatting
// ============================================================================

// FormatSuccess creates a properly formatted success message
func FormatSuccess(message string) string {
	return fmt.Sprintf("\033[32m%s\033[0m", message)
}

// FormatWarning creates a properly formatted warning message
func FormatWarning(message string) string {
	return fmt.Sprintf("\033[33m%s\033[0m", message)
}

// FormatErrorCLI creates an error message with red color for CLI output
func FormatErrorCLI(message string) string {
	return fmt.Sprintf("\033[31m%s\033[0m", message)
}
