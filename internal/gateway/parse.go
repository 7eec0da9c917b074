package gateway

import (
	"strings"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// Reply coercion. Provider replies are free text; these helpers extract the
// structured pieces each result type needs. They always succeed; callers
// substitute defaults when nothing usable is found.

const (
	defaultMaxTokens = 1000
	maxTokensCeiling = 4096
)

// clampMaxTokens bounds the caller-supplied token budget to keep provider
// cost and latency predictable.
func clampMaxTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	if n > maxTokensCeiling {
		return maxTokensCeiling
	}
	return n
}

func normalizeLanguage(language string) string {
	if strings.TrimSpace(language) == "" {
		return domain.LanguageAuto
	}
	return strings.ToLower(strings.TrimSpace(language))
}

// extractCodeBlock returns the contents of the first fenced code block and
// the text preceding it. ok is false when the reply has no complete fence.
func extractCodeBlock(content string) (code, preamble string, ok bool) {
	start := strings.Index(content, "```")
	end := strings.LastIndex(content, "```")
	if start == -1 || end <= start {
		return "", "", false
	}

	block := content[start+3 : end]
	// Drop the info string (e.g. "python") on the fence line.
	if i := strings.Index(block, "\n"); i != -1 {
		block = block[i+1:]
	} else {
		block = ""
	}
	return strings.TrimSpace(block), strings.TrimSpace(content[:start]), true
}

// extractCodeExamples returns every fenced block with its info-string language.
func extractCodeExamples(content string) []domain.CodeExample {
	examples := []domain.CodeExample{}
	parts := strings.Split(content, "```")
	for i := 1; i < len(parts); i += 2 {
		block := parts[i]
		language := ""
		code := strings.TrimSpace(block)
		if j := strings.Index(block, "\n"); j != -1 {
			language = strings.TrimSpace(block[:j])
			code = strings.TrimSpace(block[j+1:])
		}
		if code != "" {
			examples = append(examples, domain.CodeExample{Language: language, Code: code})
		}
	}
	return examples
}

const bulletCutset = "-•*0123456789.): "

// extractBullets collects bullet-point and numbered-list lines.
func extractBullets(content string, limit int) []string {
	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullet := strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "• ")
		numbered := line[0] >= '0' && line[0] <= '9' && strings.ContainsAny(line[:min(3, len(line))], ".)")
		if !bullet && !numbered {
			continue
		}
		item := strings.TrimLeft(line, bulletCutset)
		if len(item) > 10 {
			items = append(items, item)
		}
		if len(items) == limit {
			break
		}
	}
	return items
}

// extractKeywordLines collects list-style lines containing any of the given
// keywords (case-insensitive).
func extractKeywordLines(content string, limit int, keywords ...string) []string {
	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		matched := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		item := strings.TrimLeft(strings.TrimSpace(line), bulletCutset)
		if len(item) > 10 {
			items = append(items, item)
		}
		if len(items) == limit {
			break
		}
	}
	return items
}

// debugSeverity derives a severity for a debug result from the presence and
// wording of the reported error message.
func debugSeverity(errorMessage string) string {
	if errorMessage == "" {
		return domain.RiskLow
	}
	lower := strings.ToLower(errorMessage)
	for _, kw := range []string{"critical", "fatal", "exception", "error"} {
		if strings.Contains(lower, kw) {
			return domain.RiskHigh
		}
	}
	return domain.RiskMedium
}

// countSeverityMentions tallies severity keywords in an analysis reply. Each
// line counts once, at its highest-ranked keyword.
func countSeverityMentions(content string) map[string]int {
	counts := map[string]int{}
	for _, line := range strings.Split(strings.ToLower(content), "\n") {
		switch {
		case strings.Contains(line, domain.RiskCritical):
			counts[domain.RiskCritical]++
		case strings.Contains(line, domain.RiskHigh):
			counts[domain.RiskHigh]++
		case strings.Contains(line, domain.RiskMedium):
			counts[domain.RiskMedium]++
		case strings.Contains(line, domain.RiskLow):
			counts[domain.RiskLow]++
		}
	}
	return counts
}

// overallRisk folds severity counts into the fixed risk enumeration.
func overallRisk(counts map[string]int) string {
	switch {
	case counts[domain.RiskCritical] > 0:
		return domain.RiskCritical
	case counts[domain.RiskHigh] > 0:
		return domain.RiskHigh
	case counts[domain.RiskMedium] > 0:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// findLine returns the 1-based line of the first occurrence of pattern.
func findLine(code, pattern string) int {
	for i, line := range strings.Split(code, "\n") {
		if strings.Contains(line, pattern) {
			return i + 1
		}
	}
	return 0
}

// extractComplexityLine returns the first line mentioning Big O or complexity.
func extractComplexityLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "O(") || strings.Contains(strings.ToLower(line), "complexity") {
			return strings.TrimSpace(line)
		}
	}
	return "Complexity analysis not available"
}
