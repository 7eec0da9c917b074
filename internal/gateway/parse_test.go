package gateway

import (
	"testing"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

func TestClampMaxTokens(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, defaultMaxTokens},
		{-5, defaultMaxTokens},
		{1, 1},
		{4096, 4096},
		{9000, maxTokensCeiling},
	}
	for _, tc := range cases {
		if got := clampMaxTokens(tc.in); got != tc.want {
			t.Fatalf("clampMaxTokens(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	if got := normalizeLanguage(""); got != domain.LanguageAuto {
		t.Fatalf("empty language: got %q", got)
	}
	if got := normalizeLanguage("  Python "); got != "python" {
		t.Fatalf("expected python, got %q", got)
	}
}

func TestExtractCodeBlock(t *testing.T) {
	content := "Here is the fix:\n```python\nprint('hi')\n```\nDone."
	code, preamble, ok := extractCodeBlock(content)
	if !ok {
		t.Fatalf("expected a code block")
	}
	if code != "print('hi')" {
		t.Fatalf("unexpected code: %q", code)
	}
	if preamble != "Here is the fix:" {
		t.Fatalf("unexpected preamble: %q", preamble)
	}
}

func TestExtractCodeBlock_NoFence(t *testing.T) {
	if _, _, ok := extractCodeBlock("no code here"); ok {
		t.Fatalf("expected ok=false without a fence")
	}
}

func TestExtractCodeBlock_UnterminatedFence(t *testing.T) {
	if _, _, ok := extractCodeBlock("```python\nprint('hi')"); ok {
		t.Fatalf("expected ok=false for an unterminated fence")
	}
}

func TestExtractCodeExamples(t *testing.T) {
	content := "First:\n```go\nfmt.Println(1)\n```\nSecond:\n```\nplain\n```"
	examples := extractCodeExamples(content)
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	if examples[0].Language != "go" || examples[0].Code != "fmt.Println(1)" {
		t.Fatalf("unexpected first example: %+v", examples[0])
	}
	if examples[1].Language != "" || examples[1].Code != "plain" {
		t.Fatalf("unexpected second example: %+v", examples[1])
	}
}

func TestExtractBullets(t *testing.T) {
	content := "Intro line\n- check the loop bounds first\n* validate the input values\n1. handle the empty slice case\n- tiny\nplain text"
	items := extractBullets(content, 5)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %v", len(items), items)
	}
	if items[0] != "check the loop bounds first" {
		t.Fatalf("unexpected first item: %q", items[0])
	}
}

func TestExtractBullets_Limit(t *testing.T) {
	content := "- first suggestion here\n- second suggestion here\n- third suggestion here"
	items := extractBullets(content, 2)
	if len(items) != 2 {
		t.Fatalf("expected limit to cap items, got %d", len(items))
	}
}

func TestDebugSeverity(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"", domain.RiskLow},
		{"TypeError: unsupported operand", domain.RiskHigh},
		{"FATAL: out of memory", domain.RiskHigh},
		{"unexpected output", domain.RiskMedium},
	}
	for _, tc := range cases {
		if got := debugSeverity(tc.msg); got != tc.want {
			t.Fatalf("debugSeverity(%q) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}

func TestCountSeverityMentions_HighestPerLine(t *testing.T) {
	content := "critical flaw with high impact\nhigh severity issue\nlow priority note"
	counts := countSeverityMentions(content)
	if counts[domain.RiskCritical] != 1 || counts[domain.RiskHigh] != 1 || counts[domain.RiskLow] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestOverallRisk(t *testing.T) {
	cases := []struct {
		counts map[string]int
		want   string
	}{
		{map[string]int{}, domain.RiskLow},
		{map[string]int{domain.RiskMedium: 2}, domain.RiskMedium},
		{map[string]int{domain.RiskMedium: 1, domain.RiskHigh: 1}, domain.RiskHigh},
		{map[string]int{domain.RiskCritical: 1, domain.RiskHigh: 3}, domain.RiskCritical},
	}
	for _, tc := range cases {
		if got := overallRisk(tc.counts); got != tc.want {
			t.Fatalf("overallRisk(%v) = %q, want %q", tc.counts, got, tc.want)
		}
	}
}

func TestFindLine(t *testing.T) {
	code := "import os\nvalue = eval(user_input)\n"
	if got := findLine(code, "eval("); got != 2 {
		t.Fatalf("expected line 2, got %d", got)
	}
	if got := findLine(code, "exec("); got != 0 {
		t.Fatalf("expected 0 for a missing pattern, got %d", got)
	}
}
